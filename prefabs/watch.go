package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rotisserie/eris"
)

const defaultDebounce = 100 * time.Millisecond

type ChangeKind int

const (
	ChangePrefab ChangeKind = iota
	ChangeScript
)

func (k ChangeKind) String() string {
	if k == ChangeScript {
		return "script"
	}
	return "prefab"
}

// Change is a debounced edit to a prefab or script file. Path is relative to
// the watched directory, e.g. "player.yaml" or "scripts/regen.tengo".
type Change struct {
	Path string
	Kind ChangeKind
}

type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	debounce time.Duration
	Events   chan Change
	Errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// NewWatcher watches root and its scripts/ subdirectory when present.
func NewWatcher(root string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, eris.Wrap(err, "prefabs: create watcher")
	}

	if err := w.Add(root); err != nil {
		_ = w.Close()
		return nil, eris.Wrapf(err, "prefabs: watch %s", root)
	}
	// scripts/ is optional on disk.
	_ = w.Add(filepath.Join(root, "scripts"))

	watcher := &Watcher{
		watcher:  w,
		root:     root,
		debounce: defaultDebounce,
		Events:   make(chan Change, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			change, ok := w.classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[change.Path]; ok && now.Sub(t) < w.debounce {
				continue
			}
			last[change.Path] = now
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) classify(name string) (Change, bool) {
	rel, err := filepath.Rel(w.root, name)
	if err != nil {
		rel = filepath.Base(name)
	}
	rel = filepath.ToSlash(rel)
	switch {
	case isSpecFile(rel):
		return Change{Path: rel, Kind: ChangePrefab}, true
	case isScriptFile(rel):
		return Change{Path: rel, Kind: ChangeScript}, true
	}
	return Change{}, false
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
