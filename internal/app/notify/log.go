package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogDispatcher only writes events to the log, used in development
type LogDispatcher struct {
	logger zerolog.Logger
}

func NewLogDispatcher(l zerolog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: l.With().Str("component", "Notify.Log").Logger()}
}

func (d *LogDispatcher) Send(_ context.Context, e Event) error {
	d.logger.Info().
		Str("event_id", e.ID).
		Str("type", string(e.Type)).
		Str("platform", e.Platform).
		Str("user_id", e.ExternalUserID).
		Interface("payload", e.Payload).
		Msg("Notification")
	return nil
}
