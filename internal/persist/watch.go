// pattern: Imperative Shell

package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"dockrow/internal/logging"
)

// Watcher reports writes to a single file. The parent directory is watched
// so atomic renames over the file are seen.
type Watcher struct {
	path    string
	onWrite func(content string)
	logger  *logging.ScopedLogger

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// Watch starts watching path and calls onWrite with the file's content
// after each write or rename onto it. onWrite runs on the watcher goroutine.
func Watch(path string, onWrite func(content string), logger *logging.ScopedLogger) (*Watcher, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		path:    filepath.Clean(path),
		onWrite: onWrite,
		logger:  logger,
		watcher: fw,
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			data, err := os.ReadFile(w.path)
			if err != nil {
				// A rename away from the path leaves nothing to read.
				if !os.IsNotExist(err) {
					w.logger.Warn("read watched file failed", "path", w.path, "error", err)
				}
				continue
			}
			w.onWrite(string(data))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "path", w.path, "error", err)
		}
	}
}

// Close stops the watcher and waits for the goroutine to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
