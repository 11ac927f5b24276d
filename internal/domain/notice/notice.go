package notice

import (
	"errors"
	"strings"

	"github.com/kailas-cloud/lingodesk/internal/domain"
)

// Level is the notice severity.
type Level string

// Notice levels.
const (
	Info    Level = "info"
	Success Level = "success"
	Warning Level = "warning"
	Danger  Level = "danger"
)

// Notice is a transient user-visible message.
type Notice struct {
	Level   Level
	Message string
}

// New creates a notice.
func New(level Level, message string) Notice {
	return Notice{Level: level, Message: message}
}

// UserMessager is implemented by errors that carry a message meant for the user
// (for example the backend's "detail" field).
type UserMessager interface {
	UserMessage() string
}

// FromError maps an error to a notice. Validation errors become warnings with
// their own message. Everything else becomes a danger notice showing the user
// message carried by the error when present, otherwise fallback.
func FromError(err error, fallback string) Notice {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return New(Warning, ve.Message)
	}

	msg := fallback
	var um UserMessager
	if errors.As(err, &um) {
		if m := strings.TrimSpace(um.UserMessage()); m != "" {
			msg = m
		}
	}
	return New(Danger, "Error: "+msg)
}
