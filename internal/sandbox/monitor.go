package sandbox

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow suppresses duplicate reloads for the same path. Editors and
// the agent itself tend to fire several write events per save.
const debounceWindow = time.Second

// Monitor watches the sandbox tool dir and reloads tools on changes, so
// user edits to tool scripts are picked up mid session.
type Monitor struct {
	loader *Loader

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

func NewMonitor(loader *Loader) *Monitor {
	return &Monitor{
		loader:   loader,
		lastSeen: make(map[string]time.Time),
	}
}

// Start watches until ctx is done. It blocks, run it in a goroutine.
func (m *Monitor) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	srcDir := filepath.Join(m.loader.sandbox.Dir, SrcDir)
	if err := watcher.Add(srcDir); err != nil {
		return fmt.Errorf("failed to watch '%v': %w", srcDir, err)
	}
	slog.Info("monitoring sandbox", "dir", srcDir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			m.handleEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

func (m *Monitor) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	fileName := filepath.Base(event.Name)
	if !strings.HasSuffix(fileName, ".py") ||
		strings.HasPrefix(fileName, "_") ||
		strings.HasPrefix(fileName, ".") {
		return
	}
	if m.debounced(event.Name) {
		return
	}
	name := strings.TrimSuffix(fileName, ".py")
	slog.Info("tool changed, reloading", "name", name)
	if err := m.loader.LoadOne(name); err != nil {
		m.loader.registry.SetBad(name, err.Error())
	}
}

func (m *Monitor) debounced(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if last, ok := m.lastSeen[path]; ok && now.Sub(last) < debounceWindow {
		return true
	}
	m.lastSeen[path] = now
	return false
}
