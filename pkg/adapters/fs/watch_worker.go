package fs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/errdocs/pkg/core"
)

// Watch implements core.Watchable. It reports changes to files matching the
// pattern until ctx is done, then closes the returned channel.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := r.recursiveAdd(watcher, r.Path); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	events := make(chan core.Event, r.config.EventBuffer)
	w := &watchWorker{
		repo:      r,
		watcher:   watcher,
		events:    events,
		debouncer: newDebouncer(r.config.Debounce),
	}
	r.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		r.reportError(fmt.Errorf("watcher failed: %w", err))
	}))
	return events, nil
}

type watchWorker struct {
	repo      *Repository
	watcher   *fsnotify.Watcher
	events    chan core.Event
	debouncer *debouncer
}

// recursiveAdd watches dir and every non-hidden directory below it.
func (r *Repository) recursiveAdd(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (r *Repository) reportError(err error) {
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
		return
	}
	r.config.Logger.Error("watch error", "error", err)
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}

// run is the main event loop. It owns the events channel.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if w.repo.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.repo.config.Logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			}
		}
	}()
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.loop(ctx)

	// No timer may send once the channel is closed.
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *watchWorker) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(ctx, event)

		case werr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.repo.reportError(werr)
		}
	}
}

// handle filters, maps and debounces a filesystem event.
func (w *watchWorker) handle(ctx context.Context, event fsnotify.Event) {
	logger := w.repo.config.Logger
	logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.watchNewDir(ctx, event.Name)
			return
		}
	}

	if !w.repo.matches(event.Name) {
		return
	}
	eType := mapEventType(event)
	if eType == "" {
		return
	}
	w.send(ctx, core.Event{
		Type:      eType,
		Path:      event.Name,
		Timestamp: time.Now().Unix(),
	})
}

// watchNewDir starts watching a directory created while the watcher runs and
// reports the matching files it already holds, since their own create
// events happened before the directory was watched.
func (w *watchWorker) watchNewDir(ctx context.Context, dir string) {
	if strings.HasPrefix(filepath.Base(dir), ".") {
		return
	}
	lifecycle.Go(ctx, func(ctx context.Context) error {
		if err := w.repo.recursiveAdd(w.watcher, dir); err != nil {
			return err
		}
		return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !w.repo.matches(path) {
				return err
			}
			w.send(ctx, core.Event{Type: core.EventCreate, Path: path, Timestamp: time.Now().Unix()})
			return nil
		})
	}, lifecycle.WithErrorHandler(func(err error) {
		w.repo.reportError(fmt.Errorf("failed to watch new directory %s: %w", dir, err))
	}))
}

func (w *watchWorker) send(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		defer func() {
			// The channel may be closed if stopAndWait timed out.
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// debouncer coalesces bursts of events for the same path. A create followed
// by writes is still reported as a create.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingEvent
	stopped bool
	wg      sync.WaitGroup
}

type pendingEvent struct {
	event core.Event
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*pendingEvent),
	}
}

func (d *debouncer) add(event core.Event, deliver func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if prev, ok := d.pending[event.Path]; ok && prev.timer.Stop() {
		d.wg.Done()
		if prev.event.Type == core.EventCreate && event.Type == core.EventModify {
			event.Type = core.EventCreate
		}
	}

	p := &pendingEvent{event: event}
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		if d.pending[event.Path] == p {
			delete(d.pending, event.Path)
		}
		d.mu.Unlock()
		deliver(p.event)
	})
	d.pending[event.Path] = p
}

// stopAndWait drops pending events and waits for in-flight deliveries.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for path, p := range d.pending {
		if p.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, path)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
