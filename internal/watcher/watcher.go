package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Event reports that a log in the watched directory changed.
// Path is the last matching file seen in the debounce window.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher monitors a log directory for new or growing log files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	Events   chan Event
	dir      string
	pattern  string
	debounce time.Duration
}

// New creates a Watcher on dir that reports files whose base name matches pattern.
// Bursts of events within debounce are coalesced into one Event.
func New(dir, pattern string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(abs); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("cannot watch %s: %w", abs, err)
	}

	return &Watcher{
		fsw:      fsw,
		Events:   make(chan Event, 16),
		dir:      abs,
		pattern:  pattern,
		debounce: debounce,
	}, nil
}

// Dir returns the absolute path being watched.
func (w *Watcher) Dir() string {
	return w.dir
}

// Start begins listening for file events. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.Events)

	var (
		pending *Event
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			pending = &Event{Path: ev.Name, Op: ev.Op}
			if w.debounce <= 0 {
				w.emit(ctx, *pending)
				pending = nil
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if pending != nil {
				w.emit(ctx, *pending)
				pending = nil
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher error", "dir", w.dir, "err", err)
		}
	}
}

func (w *Watcher) emit(ctx context.Context, ev Event) {
	select {
	case w.Events <- ev:
	case <-ctx.Done():
	}
}

// relevant keeps create and write events for matching file names.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}
	ok, err := doublestar.Match(w.pattern, filepath.Base(ev.Name))
	return err == nil && ok
}
