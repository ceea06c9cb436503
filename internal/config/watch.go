package config

import (
	"context"
	"os"
	"time"
)

// Watcher polls modification times and reports every path that changed during
// one poll in a single callback. A file that appears, or reappears after being
// removed, counts as changed.
type Watcher struct {
	paths    []string
	interval time.Duration
	onChange func(changed []string)
	seen     map[string]time.Time
}

// NewWatcher creates a watcher for paths; onChange runs on the polling goroutine.
func NewWatcher(paths []string, interval time.Duration, onChange func(changed []string)) *Watcher {
	return &Watcher{
		paths:    paths,
		interval: interval,
		onChange: onChange,
		seen:     make(map[string]time.Time, len(paths)),
	}
}

// Start records the current modification times, then polls in a goroutine
// until ctx is done.
func (w *Watcher) Start(ctx context.Context) {
	w.scan()
	go func() {
		t := time.NewTicker(w.interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if changed := w.scan(); len(changed) > 0 && w.onChange != nil {
					w.onChange(changed)
				}
			}
		}
	}()
}

func (w *Watcher) scan() []string {
	var changed []string
	for _, p := range w.paths {
		fi, err := os.Stat(p)
		if err != nil {
			delete(w.seen, p)
			continue
		}
		mt := fi.ModTime()
		if last, ok := w.seen[p]; !ok || mt.After(last) {
			changed = append(changed, p)
		}
		w.seen[p] = mt
	}
	return changed
}
