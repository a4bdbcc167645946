package cmd

import (
	"log/slog"

	"github.com/atikulmunna/logscan/internal/model"
	"github.com/atikulmunna/logscan/internal/watcher"
)

// follow re-runs analysis for every change event until events is closed.
// A failed pass is logged and skipped: a log caught mid-write can be
// transiently invalid, and the next write triggers a fresh attempt.
// Errors from handle stop the loop.
func follow(events <-chan watcher.Event, run func() (model.Analysis, error), handle func(model.Analysis) error) error {
	for ev := range events {
		slog.Debug("log changed", "path", ev.Path, "op", ev.Op.String())

		result, err := run()
		if err != nil {
			slog.Error("analysis failed", "path", ev.Path, "err", err)
			continue
		}
		if err := handle(result); err != nil {
			return err
		}
	}
	return nil
}
