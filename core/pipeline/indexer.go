package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"EchoMeta/logger"
	"EchoMeta/storage"
)

// indexFileName 目录索引对象的文件名
const indexFileName = "index.json"

// Indexer 在每次写入后全量重建元数据目录的索引。
// 不做增量合并：索引永远由当前目录列表整体推导，避免索引与
// 实际内容漂移。并发重建之间没有协调，两个事件同时落在同一目录
// 时后写者的列表胜出，索引可能暂时缺少并发写入的记录；
// 下一次该目录的任何写入会收敛。
type Indexer struct {
	store storage.Store
}

// NewIndexer 创建索引器
func NewIndexer(store storage.Store) *Indexer {
	return &Indexer{store: store}
}

// Rebuild 列出 metaFolder 下的全部对象，把相对文件名集合
// 无条件覆盖写入 index.json。索引对象自身不计入列表。
func (ix *Indexer) Rebuild(ctx context.Context, bucket, metaFolder string) error {
	prefix := metaFolder + "/"
	keys, err := ix.store.List(ctx, bucket, prefix)
	if err != nil {
		return fmt.Errorf("列出元数据目录 %s 失败: %w", metaFolder, err)
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, prefix)
		if name == "" || name == indexFileName {
			continue
		}
		names = append(names, name)
	}

	body, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("序列化索引失败: %w", err)
	}

	indexKey := path.Join(metaFolder, indexFileName)
	if err := ix.store.Put(ctx, bucket, indexKey, body, "application/json"); err != nil {
		return fmt.Errorf("写入索引 %s 失败: %w", indexKey, err)
	}

	logger.Debug("索引已更新",
		logger.String("key", indexKey),
		logger.Int("entries", len(names)))
	return nil
}
