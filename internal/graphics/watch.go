package graphics

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher reports changes to shader files in a directory. It never
// touches GL; the render thread polls Pending once per frame.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	changed chan string
	done    chan struct{}
}

// WatchShaders starts watching dir for .vert and .frag changes.
func WatchShaders(dir string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	sw := &ShaderWatcher{
		watcher: w,
		changed: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go sw.loop()
	return sw, nil
}

func (sw *ShaderWatcher) loop() {
	defer close(sw.done)
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !isShaderFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// one pending reload covers any number of writes
			select {
			case sw.changed <- event.Name:
			default:
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("shader watcher: %v", err)
		}
	}
}

// Pending returns the last changed file, if any, without blocking.
func (sw *ShaderWatcher) Pending() (string, bool) {
	select {
	case name := <-sw.changed:
		return name, true
	default:
		return "", false
	}
}

// Close stops the watcher and waits for its goroutine.
func (sw *ShaderWatcher) Close() error {
	err := sw.watcher.Close()
	<-sw.done
	return err
}

func isShaderFile(name string) bool {
	switch filepath.Ext(name) {
	case ".vert", ".frag":
		return true
	}
	return false
}
