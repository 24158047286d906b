// Package watcher reloads hot-swappable configuration when the env file
// changes on disk.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/ajjs1ajjs/Monitoring/pkg/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher monitors one configuration file and invokes a reload callback
// after changes settle. The parent directory is watched rather than the
// file itself because editors and provisioning tools typically replace the
// file via rename.
type Watcher struct {
	filePath      string
	reload        func() error
	fsWatcher     *fsnotify.Watcher
	debounceMu    sync.Mutex
	debounceTimer *time.Timer
	debounceDelay time.Duration
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func New(filePath string, reload func() error, parentCtx context.Context) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(filePath)
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}
	ctx, cancel := context.WithCancel(parentCtx)
	return &Watcher{
		filePath:      abs,
		reload:        reload,
		fsWatcher:     fsWatcher,
		debounceDelay: 500 * time.Millisecond, // settle rapid write bursts
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// Start begins watching the file's directory.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.filePath)); err != nil {
		return err
	}
	logger.Log.Info("config watcher started", "file", w.filePath)
	w.wg.Add(1)
	go w.eventLoop()
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.cancel()
	w.fsWatcher.Close()
	w.wg.Wait()
	w.debounceMu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceMu.Unlock()
	logger.Log.Info("config watcher stopped")
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Log.Error("config watcher error", "err", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.filePath {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case <-w.ctx.Done():
			return
		default:
		}
		if err := w.reload(); err != nil {
			logger.Log.Warn("config reload failed", "file", w.filePath, "err", err)
			return
		}
		logger.Log.Info("config reloaded", "file", w.filePath)
	})
}
