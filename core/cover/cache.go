package cover

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"strings"

	"EchoMeta/logger"
	"EchoMeta/model"
	"EchoMeta/storage"
)

// hashLen 内容哈希取前 16 位十六进制作为路径分量
const hashLen = 16

// MIME 类型到扩展名的固定映射。内容寻址路径必须是确定性的，
// 所以不用 mime.ExtensionsByType（其返回顺序与平台相关）。
var extByMime = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
	"image/bmp":  "bmp",
}

// Cache 按内容哈希去重封面图片：
// 字节相同的封面永远落在同一个存储路径上，至多保存一份物理拷贝。
type Cache struct {
	store           storage.Store
	generatedFolder string
}

// NewCache 创建封面缓存
func NewCache(store storage.Store, generatedFolder string) *Cache {
	return &Cache{store: store, generatedFolder: generatedFolder}
}

// Ensure 保证封面在内容寻址路径上可用，返回该路径。
// 已存在 → 直接返回，不写入；确认不存在 → 上传；
// 存在性检查失败 → 原样返回错误，绝不当作未命中。
func (c *Cache) Ensure(ctx context.Context, bucket, folder string, pic model.Picture) (string, error) {
	sum := sha256.Sum256(pic.Data)
	hash := hex.EncodeToString(sum[:])[:hashLen]
	key := path.Join(folder, c.generatedFolder, "img", hash+"."+extension(pic.MimeType))

	exists, err := c.store.Exists(ctx, bucket, key)
	if err != nil {
		return "", fmt.Errorf("检查封面 %s 失败: %w", key, err)
	}
	if exists {
		return key, nil
	}

	if err := c.store.Put(ctx, bucket, key, pic.Data, pic.MimeType); err != nil {
		return "", fmt.Errorf("上传封面 %s 失败: %w", key, err)
	}
	logger.Info("上传了新封面",
		logger.String("key", key),
		logger.Int("bytes", len(pic.Data)))
	return key, nil
}

// extension 从 MIME 类型推导扩展名。无法识别的类型回落到 jpg；
// 不含 "/" 的值按历史数据直接当作扩展名使用。
func extension(mimeType string) string {
	if mimeType == "" {
		return "jpg"
	}
	if !strings.Contains(mimeType, "/") {
		return mimeType
	}
	if ext, ok := extByMime[strings.ToLower(mimeType)]; ok {
		return ext
	}
	return "jpg"
}
