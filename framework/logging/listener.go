package logging

import (
	"log/slog"

	"github.com/km-arc/go-validation/framework/validation"
)

// Subscribe logs validation outcomes: failures at debug with the failing
// fields, configuration errors at error.
func Subscribe(events *validation.Dispatcher, log *slog.Logger) {
	events.AddListener(validation.EventFailed, func(ev *validation.Event) {
		attrs := []any{
			slog.String("context", ev.Context),
			slog.String("strategy", ev.Strategy),
			slog.Duration("duration", ev.Duration),
		}
		if ev.Err != nil {
			log.Error("validation aborted", append(attrs, slog.Any("error", ev.Err))...)
			return
		}
		log.Debug("validation failed", append(attrs,
			slog.Int("errors", ev.Result.ErrorCount()),
			slog.Any("fields", ev.Result.FirstErrors()))...)
	}, 0)

	events.AddListener(validation.EventPassed, func(ev *validation.Event) {
		log.Debug("validation passed",
			slog.String("context", ev.Context),
			slog.Int("fields", len(ev.Result.ValidatedFields())),
			slog.Duration("duration", ev.Duration))
	}, 0)
}
