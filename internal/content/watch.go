package content

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultReloadDebounce = 300 * time.Millisecond

// Watcher 在内容目录变更时重新加载目录。
// 加载或校验失败的目录只记录日志并丢弃，调用方继续使用旧目录。
type Watcher struct {
	dir      string
	logger   *zap.Logger
	debounce time.Duration
	onReload func(*Catalog) error
	watcher  *fsnotify.Watcher
}

// NewWatcher 将 dir 及其全部子目录注册到 fsnotify。
func NewWatcher(dir string, logger *zap.Logger, onReload func(*Catalog) error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		dir:      dir,
		logger:   logger,
		debounce: defaultReloadDebounce,
		onReload: onReload,
		watcher:  fw,
	}

	if err := w.addTree(dir); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(p)
		}
		return nil
	})
}

// Run 阻塞直到 ctx 取消，每批变更合并后重新加载一次。
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("watch new content directory", zap.String("path", event.Name), zap.Error(err))
					}
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("content watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	catalog, err := LoadCatalog(os.DirFS(w.dir))
	if err != nil {
		w.logger.Error("content reload failed, keeping previous catalog", zap.Error(err))
		return
	}

	if issues := Validate(catalog); len(issues) > 0 {
		for _, issue := range issues {
			w.logger.Warn("content issue", zap.String("issue", issue.String()))
		}
		w.logger.Error("content reload rejected, keeping previous catalog", zap.Int("issues", len(issues)))
		return
	}

	if err := w.onReload(catalog); err != nil {
		w.logger.Error("apply reloaded content", zap.Error(err))
		return
	}
	w.logger.Info("content reloaded", zap.Int("pages", len(catalog.Pages)))
}
