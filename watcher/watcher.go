package watcher

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"EchoMeta/logger"
	"EchoMeta/model"
	"EchoMeta/storage"

	"github.com/fsnotify/fsnotify"
)

// 纳入监听的音频扩展名
var audioExts = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
}

// settleDelay 新文件创建后等待写入完成的时间
const settleDelay = 500 * time.Millisecond

// runner 是监听模式需要的管道入口
type runner interface {
	ProcessSource(ctx context.Context, src model.SourceObject) error
}

// Watcher 监听本地收件目录，把新音频文件上传进存储桶并直接触发
// 管道处理。这是开发与回填场景的事件入口，补充 webhook 投递。
type Watcher struct {
	store  storage.Store
	pipe   runner
	bucket string
	prefix string // 上传到桶内的键前缀，可为空
}

// New 创建本地目录监听器
func New(store storage.Store, pipe runner, bucket, prefix string) *Watcher {
	return &Watcher{store: store, pipe: pipe, bucket: bucket, prefix: prefix}
}

// Run 阻塞监听目录直到 ctx 取消。
// 单个文件失败只记录日志，监听继续。
func (w *Watcher) Run(ctx context.Context, dir string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听器失败: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("监听目录 %s 失败: %w", dir, err)
	}
	logger.Info("开始监听本地目录",
		logger.String("dir", dir),
		logger.String("bucket", w.bucket))

	for {
		select {
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !audioExts[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			if err := w.ingest(ctx, event.Name); err != nil {
				logger.Error("本地文件处理失败",
					logger.String("file", event.Name),
					logger.ErrorField(err))
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("文件监听错误", logger.ErrorField(err))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ingest 上传单个本地文件并运行管道
func (w *Watcher) ingest(ctx context.Context, file string) error {
	// 等待写入方完成；Create 事件到达时文件往往还在写
	time.Sleep(settleDelay)

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("读取本地文件失败: %w", err)
	}

	key := path.Join(w.prefix, filepath.Base(file))
	if err := w.store.Put(ctx, w.bucket, key, data, "audio/mpeg"); err != nil {
		return fmt.Errorf("上传源文件失败: %w", err)
	}
	logger.Info("本地文件已上传",
		logger.String("file", file),
		logger.String("key", key))

	return w.pipe.ProcessSource(ctx, model.SourceObject{Bucket: w.bucket, Key: key})
}
