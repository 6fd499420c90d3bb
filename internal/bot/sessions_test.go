package bot

import "testing"

func TestSessionsDefaultToIdle(t *testing.T) {
	t.Parallel()

	s := newSessions()
	if got := s.Get(1); got != StateIdle {
		t.Fatalf("fresh chat state = %q, want idle", got)
	}
}

func TestSessionsSetAndReset(t *testing.T) {
	t.Parallel()

	s := newSessions()
	s.Set(1, StateAwaitingImage)
	if got := s.Get(1); got != StateAwaitingImage {
		t.Fatalf("state = %q, want awaiting_image", got)
	}
	if got := s.Get(2); got != StateIdle {
		t.Fatalf("unrelated chat state = %q, want idle", got)
	}

	s.Set(1, StateIdle)
	if got := s.Get(1); got != StateIdle {
		t.Fatalf("state after reset = %q, want idle", got)
	}
	if len(s.states) != 0 {
		t.Fatalf("idle chats retained in the map: %v", s.states)
	}
}
