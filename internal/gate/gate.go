// Package gate answers whether a requester may use the bot, based on their
// membership in the configured channel.
package gate

import (
	"context"
	"log/slog"

	"lskinbot/internal/logging"
)

// MembershipLookup resolves a user's membership status in the gating channel.
// The production implementation is telegram.Client.
type MembershipLookup interface {
	MemberStatus(ctx context.Context, userID int64) (string, error)
}

// Statuses that grant access. Everything else, including lookup failure,
// denies.
var authorizedStatuses = map[string]struct{}{
	"member":        {},
	"administrator": {},
	"creator":       {},
}

// Checker decides access from channel membership.
type Checker struct {
	lookup MembershipLookup
	logger *slog.Logger
}

// NewChecker builds a gate backed by the given membership lookup.
func NewChecker(lookup MembershipLookup, logger *slog.Logger) *Checker {
	return &Checker{
		lookup: lookup,
		logger: logging.NewComponentLogger(logger, "gate"),
	}
}

// Authorized reports whether the user may proceed. Lookup failures are logged
// and treated as a denial; they never propagate.
func (c *Checker) Authorized(ctx context.Context, userID int64) bool {
	status, err := c.lookup.MemberStatus(ctx, userID)
	if err != nil {
		c.logger.Warn("membership lookup failed, denying access",
			logging.Int64(logging.FieldUserID, userID),
			logging.Error(err),
			logging.String(logging.FieldEventType, "gate_lookup_failed"),
			logging.String(logging.FieldErrorHint, "verify bot is an admin of the channel"),
		)
		return false
	}
	_, ok := authorizedStatuses[status]
	if !ok {
		c.logger.Info("access denied",
			logging.Int64(logging.FieldUserID, userID),
			logging.String("member_status", status),
			logging.String(logging.FieldEventType, "gate_denied"),
		)
	}
	return ok
}
