// Package notify carries transient user-visible messages (the snackbar/toast
// surface of the client). The session manager and route guard emit through a
// Notifier; the UI layer decides how to render it.
package notify

import "github.com/rs/zerolog"

// Notifier receives short user-facing messages.
type Notifier interface {
	Info(message string)
	Error(message string)
}

// LogNotifier writes notifications to a zerolog logger. It is the default
// sink for headless use and for the demo CLI.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Info(message string) {
	n.log.Info().Str("toast", message).Msg("notification")
}

func (n *LogNotifier) Error(message string) {
	n.log.Error().Str("toast", message).Msg("notification")
}

// Discard drops all notifications.
type Discard struct{}

func (Discard) Info(string)  {}
func (Discard) Error(string) {}
