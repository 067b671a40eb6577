package theme

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// debounceDelay collapses bursts of writes from editors into one refresh.
const debounceDelay = 150 * time.Millisecond

// Watcher refreshes the theme when terminal config files change
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func(Palette)

	mu       sync.Mutex
	debounce *time.Timer
	done     chan struct{}
	once     sync.Once
}

// NewWatcher watches the terminal config directories under the user's home
// plus any extra directories. Missing directories are skipped.
func NewWatcher(onChange func(Palette), extra ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	dirs := append([]string{}, extra...)
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".config", "alacritty"),
			filepath.Join(home, ".config", "foot"),
		)
	}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			log.WithFields(log.Fields{"dir": dir}).Debugf("Could not watch theme dir: %v", err)
		}
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.schedule()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Debugf("Theme watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, func() {
		p := Refresh()
		if w.onChange != nil {
			w.onChange(p)
		}
	})
}

// Stop closes the watcher
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
		_ = w.fsw.Close()

		w.mu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
	})
}
