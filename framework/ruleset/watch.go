package ruleset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is how long Watch waits after the last file event
// before reloading.
const DebounceInterval = 100 * time.Millisecond

// Watch reloads the store whenever a rule set file in the directory changes.
// It blocks until ctx is cancelled. Failed reloads are logged and the
// previous rule sets stay active.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("ruleset: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("ruleset: watch %s: %w", s.dir, err)
	}
	s.logger.Info("watching rule sets", slog.String("dir", s.dir))

	reload := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("ruleset: watcher events channel closed")
			}
			if !isRuleSetFile(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			s.logger.Debug("rule set file changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(DebounceInterval, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := s.Load(); err != nil {
				s.logger.Error("rule set reload failed", slog.Any("error", err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("ruleset: watcher errors channel closed")
			}
			s.logger.Error("rule set watcher error", slog.Any("error", err))
		}
	}
}
