package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow 同一文件的连续事件在此窗口内只上报一次
const debounceWindow = 100 * time.Millisecond

// Watcher 监听配置文件变化
//
// 监听的是文件所在目录而不是文件本身：很多编辑器保存时会先写临时文件再改名，
// 直接监听文件会在第一次保存后丢失。Events 只上报目标文件的变化。
type Watcher struct {
	watcher *fsnotify.Watcher
	target  string
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher 开始监听 path
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
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		target:  abs,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close 停止监听
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll 非阻塞地取出一次变化通知，适合在渲染循环中每帧调用
func (w *Watcher) Poll() (string, bool) {
	select {
	case path := <-w.Events:
		return path, true
	default:
		return "", false
	}
}

func (w *Watcher) run() {
	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			now := time.Now()
			if now.Sub(last) < debounceWindow {
				continue
			}
			last = now
			select {
			case w.Events <- w.target:
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
