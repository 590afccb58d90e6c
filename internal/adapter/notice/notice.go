package notice

import (
	"log/slog"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.Notifier = (*LogNotifier)(nil)

// A LogNotifier is the required notifier implementation: user-facing
// status text goes to the structured log instead of a conditionally
// present toast system.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier() LogNotifier {
	return LogNotifier{slog.Default().With("channel", "notice")}
}

func (n LogNotifier) Success(msg string) {
	n.log.Info(msg)
}

func (n LogNotifier) Error(msg string) {
	n.log.Warn(msg)
}
