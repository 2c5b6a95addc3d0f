package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// RuntimeConfig is the subset of settings that can change without a
// restart, read from a watched JSON file.
type RuntimeConfig struct {
	CORSAllowedOrigins []string `json:"corsAllowedOrigins"`
	LogLevel           string   `json:"logLevel"`
}

// Watcher watches the runtime config file and notifies subscribers on
// change. Reload errors keep the previous configuration.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	mu       sync.RWMutex
	current  *RuntimeConfig
	onChange []func(*RuntimeConfig)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewWatcher loads the file and starts watching it. Watching the parent
// directory as well catches editors that rename over the file.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	current, err := loadRuntimeConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load runtime config: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch runtime config: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		logger.Warn("could not watch config directory", zap.Error(err))
	}

	w := &Watcher{
		path:    path,
		watcher: fw,
		current: current,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Current returns the latest runtime configuration.
func (w *Watcher) Current() *RuntimeConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers a callback invoked after each successful reload.
func (w *Watcher) OnChange(fn func(*RuntimeConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Stop ends the watch loop.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	updated, err := loadRuntimeConfig(w.path)
	if err != nil {
		w.logger.Warn("runtime config reload failed, keeping previous",
			zap.String("path", w.path),
			zap.Error(err),
		)
		return
	}

	w.mu.Lock()
	w.current = updated
	callbacks := make([]func(*RuntimeConfig), len(w.onChange))
	copy(callbacks, w.onChange)
	w.mu.Unlock()

	w.logger.Info("runtime config reloaded", zap.String("path", w.path))
	for _, fn := range callbacks {
		fn(updated)
	}
}

func loadRuntimeConfig(path string) (*RuntimeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg RuntimeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
