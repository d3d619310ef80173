package scene

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a single file using OS-native notifications.
// Bursts of events collapse into one pending signal.
type Watcher struct {
	w    *fsnotify.Watcher
	path string
	chC  chan struct{}
	erC  chan error
	done chan struct{}
}

// NewWatcher watches the file at path. The parent directory is watched so
// editors that replace the file on save are still seen.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	fw := &Watcher{
		w:    w,
		path: abs,
		chC:  make(chan struct{}, 1),
		erC:  make(chan error, 1),
		done: make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

func (fw *Watcher) loop() {
	defer close(fw.done)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			select {
			case fw.chC <- struct{}{}:
			default: // already pending
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.erC <- err:
			default:
			}
		}
	}
}

// Changes delivers one value per burst of writes to the file.
func (fw *Watcher) Changes() <-chan struct{} { return fw.chC }

// Errors delivers watcher failures. Only the oldest unread error is kept.
func (fw *Watcher) Errors() <-chan error { return fw.erC }

// Path returns the absolute path being watched.
func (fw *Watcher) Path() string { return fw.path }

// Close stops watching and waits for the event pump to exit.
func (fw *Watcher) Close() error {
	err := fw.w.Close()
	<-fw.done
	return err
}
