package storage

import (
	"context"
	"errors"
)

// ErrNotFound 表示对象不存在。调用方必须通过 errors.Is 区分
// “对象不存在”与其它存储故障，禁止根据错误文本判断。
var ErrNotFound = errors.New("storage: object not found")

// Store 定义对象存储的访问契约。
// 生产环境由 MinioStore 实现，测试与本地模式由 MemoryStore 实现。
type Store interface {
	// Get 读取对象的全部字节。对象不存在时返回 ErrNotFound。
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	// Put 写入（或覆盖）对象。
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
	// Exists 检查对象是否存在。返回 (false, nil) 表示确认不存在；
	// 返回 err != nil 表示检查本身失败，不得当作不存在处理。
	Exists(ctx context.Context, bucket, key string) (bool, error)
	// List 列出指定前缀下的所有对象键。
	List(ctx context.Context, bucket, prefix string) ([]string, error)
}
