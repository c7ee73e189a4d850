// Package watch re-runs the audit when documentation changes on disk,
// and optionally on a fixed interval.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docaudit/internal/logfields"
)

// Options configures a Watcher.
type Options struct {
	// Roots are the directories to watch recursively.
	Roots []string
	// Debounce collapses rapid change bursts into one re-audit.
	Debounce time.Duration
	// Interval, when non-zero, additionally triggers a periodic full
	// re-audit regardless of filesystem events.
	Interval time.Duration
}

// Watcher triggers a callback on relevant documentation changes. At most
// one run of the callback is in flight at a time; triggers arriving while
// it runs coalesce into one follow-up run.
type Watcher struct {
	opts    Options
	onAudit func(context.Context)
}

// New creates a watcher invoking onAudit on changes.
func New(opts Options, onAudit func(context.Context)) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = 2 * time.Second
	}
	return &Watcher{opts: opts, onAudit: onAudit}
}

// Run blocks until ctx is canceled, re-running the audit on markdown,
// nav, stylesheet, or image changes under the watched roots.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	for _, root := range w.opts.Roots {
		if err := addRecursive(fsw, root); err != nil {
			return err
		}
		slog.Info("watching documentation root", logfields.Root(root))
	}

	trigger := make(chan struct{}, 1)
	notify := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}

	var scheduler gocron.Scheduler
	if w.opts.Interval > 0 {
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			return err
		}
		if _, err := scheduler.NewJob(
			gocron.DurationJob(w.opts.Interval),
			gocron.NewTask(notify),
			gocron.WithName("periodic-audit"),
		); err != nil {
			return err
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
	}

	var debounce *time.Timer
	debounceC := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) && isDirPath(event.Name) {
				// New directories must be picked up to keep the watch recursive.
				_ = addRecursive(fsw, event.Name)
			}
			if !relevant(event.Name) {
				continue
			}
			slog.Debug("documentation changed", logfields.Path(event.Name))
			if debounce == nil {
				debounce = time.AfterFunc(w.opts.Debounce, func() { debounceC <- struct{}{} })
			} else {
				debounce.Reset(w.opts.Debounce)
			}

		case <-debounceC:
			debounce = nil
			notify()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", logfields.Error(err))

		case <-trigger:
			w.onAudit(ctx)
		}
	}
}

// relevant reports whether a changed path can affect the audit result.
func relevant(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".yml", ".yaml", ".css", ".scss",
		".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico", ".bmp", ".h":
		return true
	}
	return false
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return fs.SkipDir
			}
			return fsw.Add(path)
		}
		return nil
	})
}

func isDirPath(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
