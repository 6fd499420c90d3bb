package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers classify pipeline failures for reply selection and journal
// bookkeeping. Wrap tags errors with one of these.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")
	ErrPackaging    = errors.New("packaging error")
	ErrDelivery     = errors.New("delivery error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrPackaging
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}

// User-facing replies per failure kind. Internal detail never leaks to chat.
const (
	msgUnauthorized = "Subscribe to the channel first, then send /start to begin."
	msgValidation   = "Please send the skin image as a .png file."
	msgRetry        = "Something went wrong while building your pack. Send /start to try again."
	msgDelivery     = "Your pack was built but could not be sent. Send /start to try again."
)

// UserMessage maps any pipeline error to the reply shown to the requester.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return msgUnauthorized
	case errors.Is(err, ErrValidation):
		return msgValidation
	case errors.Is(err, ErrDelivery):
		return msgDelivery
	default:
		return msgRetry
	}
}
