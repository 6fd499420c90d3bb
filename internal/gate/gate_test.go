package gate_test

import (
	"context"
	"errors"
	"testing"

	"lskinbot/internal/gate"
	"lskinbot/internal/logging"
)

type stubLookup struct {
	status string
	err    error

	calls   int
	lastUID int64
}

func (s *stubLookup) MemberStatus(_ context.Context, userID int64) (string, error) {
	s.calls++
	s.lastUID = userID
	return s.status, s.err
}

func TestAuthorizedStatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status string
		want   bool
	}{
		{"member", true},
		{"administrator", true},
		{"creator", true},
		{"left", false},
		{"kicked", false},
		{"restricted", false},
		{"", false},
		{"Member", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run("status "+tc.status, func(t *testing.T) {
			t.Parallel()

			lookup := &stubLookup{status: tc.status}
			checker := gate.NewChecker(lookup, logging.NewNop())
			if got := checker.Authorized(context.Background(), 42); got != tc.want {
				t.Fatalf("Authorized with status %q = %v, want %v", tc.status, got, tc.want)
			}
			if lookup.lastUID != 42 {
				t.Fatalf("lookup saw user %d, want 42", lookup.lastUID)
			}
		})
	}
}

func TestAuthorizedDeniesOnLookupFailure(t *testing.T) {
	t.Parallel()

	lookup := &stubLookup{err: errors.New("chat not found")}
	checker := gate.NewChecker(lookup, logging.NewNop())
	if checker.Authorized(context.Background(), 7) {
		t.Fatal("lookup failure must deny access")
	}
	if lookup.calls != 1 {
		t.Fatalf("lookup called %d times, want 1", lookup.calls)
	}
}
