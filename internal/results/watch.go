package results

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 150 * time.Millisecond

// Watch calls fn once for each report created or rewritten in the store
// directory until ctx is done. Bursts of events for one file are coalesced.
func (s *Store) Watch(ctx context.Context, fn func(ReportFile)) error {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, dir, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	ready := make(chan string, 16)
	done := make(chan struct{})
	defer close(done)
	timers := map[string]*time.Timer{}
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			name := filepath.Base(ev.Name)
			if !strings.HasSuffix(name, reportExt) {
				continue
			}
			if t, ok := timers[name]; ok {
				t.Reset(watchDebounce)
				continue
			}
			timers[name] = time.AfterFunc(watchDebounce, func() {
				select {
				case ready <- name:
				case <-done:
				}
			})
		case name := <-ready:
			delete(timers, name)
			rf, err := s.describe(name)
			if err != nil {
				continue
			}
			fn(rf)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
}
