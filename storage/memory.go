package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore 内存实现的 Store，用于测试与本地试运行。
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    []string // 按顺序记录所有写入的键，便于测试断言
}

// NewMemoryStore 创建空的内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

// Get 读取对象内容
func (s *MemoryStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[objectKey(bucket, key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put 写入对象
func (s *MemoryStore) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[objectKey(bucket, key)] = stored
	s.puts = append(s.puts, key)
	return nil
}

// Exists 检查对象是否存在
func (s *MemoryStore) Exists(ctx context.Context, bucket, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.objects[objectKey(bucket, key)]
	return ok, nil
}

// List 列出前缀下的所有对象键，按字典序返回
func (s *MemoryStore) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	full := objectKey(bucket, prefix)
	for k := range s.objects {
		if strings.HasPrefix(k, full) {
			keys = append(keys, strings.TrimPrefix(k, bucket+"/"))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Puts 返回写入过的键（按写入顺序）
func (s *MemoryStore) Puts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.puts))
	copy(out, s.puts)
	return out
}

// PutCount 返回指定键被写入的次数
func (s *MemoryStore) PutCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, k := range s.puts {
		if k == key {
			n++
		}
	}
	return n
}
