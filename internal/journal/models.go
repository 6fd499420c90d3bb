package journal

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a packaging attempt.
type Status string

const (
	// StatusReceived marks an accepted upload before processing starts.
	StatusReceived Status = "received"
	// StatusPackaging marks an attempt whose pipeline is running.
	StatusPackaging Status = "packaging"
	// StatusDelivered marks a successfully delivered package.
	StatusDelivered Status = "delivered"
	// StatusRejected marks an attempt denied by the gate or the validator.
	StatusRejected Status = "rejected"
	// StatusFailed marks an attempt that died in synthesis, archiving, or delivery.
	StatusFailed Status = "failed"
)

var allStatuses = []Status{
	StatusReceived,
	StatusPackaging,
	StatusDelivered,
	StatusRejected,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// Entry represents one packaging attempt persisted in SQLite.
type Entry struct {
	ID           int64
	UserID       int64
	ChatID       int64
	Status       Status
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary describes aggregated attempt counts per terminal state.
type Summary struct {
	Total     int
	Delivered int
	Rejected  int
	Failed    int
	InFlight  int
}
