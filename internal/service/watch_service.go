package service

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

func watchLog() commonlog.Logger { return commonlog.GetLogger("firesale.watch") }

// WatchService reports writes to the currently open file. The parent
// directory is watched so editors that save by rename are still seen.
type WatchService struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	dir      string
	onChange func(path string)
	done     chan struct{}
}

func NewWatchService(onChange func(path string)) (*WatchService, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	s := &WatchService{
		watcher:  w,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go s.loop()
	return s, nil
}

// Watch replaces the current watch with path.
func (s *WatchService) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	s.mu.Lock()
	defer s.mu.Unlock()

	if abs == s.path {
		return nil
	}
	if s.dir != "" && s.dir != dir {
		_ = s.watcher.Remove(s.dir)
	}
	if dir != s.dir {
		if err := s.watcher.Add(dir); err != nil {
			s.path, s.dir = "", ""
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	s.path, s.dir = abs, dir
	watchLog().Debugf("watching %s", abs)
	return nil
}

func (s *WatchService) Close() error {
	err := s.watcher.Close()
	<-s.done
	return err
}

func (s *WatchService) loop() {
	defer close(s.done)
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			s.mu.Lock()
			current := s.path
			s.mu.Unlock()
			if current != "" && filepath.Clean(ev.Name) == current {
				s.onChange(current)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			watchLog().Warningf("watcher error: %v", err)
		}
	}
}
