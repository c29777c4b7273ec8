// Package watch recompiles a dungeon source file whenever it changes on
// disk and drives a small terminal status display while doing so.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dungeonc/dungeonc/internal/compiler/driver"
)

// Event reports the outcome of one recompilation.
type Event struct {
	Err      []string
	HTML     string
	Duration time.Duration
}

// SourceWatcher recompiles a single dungeon file on every write, debouncing
// bursts of filesystem events (editors often emit several per save) into a
// single recompile.
type SourceWatcher struct {
	sourcePath string
	outputPath string
	watcher    *fsnotify.Watcher
	debounce   time.Duration
	onEvent    func(Event)
	stopChan   chan struct{}
	wg         sync.WaitGroup
}

// New creates a SourceWatcher for sourcePath, writing compiled output to
// outputPath on every successful recompile.
func New(sourcePath, outputPath string, onEvent func(Event)) (*SourceWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(sourcePath)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	return &SourceWatcher{
		sourcePath: sourcePath,
		outputPath: outputPath,
		watcher:    w,
		debounce:   150 * time.Millisecond,
		onEvent:    onEvent,
		stopChan:   make(chan struct{}),
	}, nil
}

// Start compiles once immediately, then begins watching for changes in the
// background.
func (w *SourceWatcher) Start() {
	w.compile()
	w.wg.Add(1)
	go w.loop()
}

// Stop halts the watch loop and releases the underlying fsnotify watcher.
func (w *SourceWatcher) Stop() {
	select {
	case <-w.stopChan:
	default:
		close(w.stopChan)
	}
	w.wg.Wait()
	w.watcher.Close()
}

func (w *SourceWatcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.sourcePath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.compile)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *SourceWatcher) compile() {
	start := time.Now()
	_, errs := driver.CompileToFile(w.sourcePath, w.outputPath)
	if len(errs) > 0 {
		messages := make([]string, len(errs))
		for i, e := range errs {
			messages[i] = e.Message
		}
		w.onEvent(Event{Err: messages, Duration: time.Since(start)})
		return
	}
	w.onEvent(Event{HTML: w.outputPath, Duration: time.Since(start)})
}
