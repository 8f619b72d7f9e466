package platform

import (
	"context"
	"os"
	"os/signal"
)

// NewShutdownContext creates a context that is canceled on Ctrl+C. Windows
// does not reliably deliver SIGTERM to console apps, so only os.Interrupt is
// watched.
func NewShutdownContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
