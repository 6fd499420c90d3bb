package bot

import "sync"

// State is a chat's position in the conversation machine. Idle is both the
// initial and the terminal state; nothing persists across restarts beyond the
// workspace naming convention.
type State string

const (
	StateIdle          State = "idle"
	StateAwaitingImage State = "awaiting_image"
)

// sessions tracks conversation state per chat.
type sessions struct {
	mu     sync.Mutex
	states map[int64]State
}

func newSessions() *sessions {
	return &sessions{states: make(map[int64]State)}
}

func (s *sessions) Get(chatID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[chatID]; ok {
		return state
	}
	return StateIdle
}

func (s *sessions) Set(chatID int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == StateIdle {
		delete(s.states, chatID)
		return
	}
	s.states[chatID] = state
}
