package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"EchoMeta/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore 基于 MinIO 客户端实现 Store 契约。
type MinioStore struct {
	client *minio.Client
}

// NewMinioStore 创建 MinIO 存储客户端
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 MinIO 客户端失败: %w", err)
	}

	return &MinioStore{client: client}, nil
}

// EnsureBucket 检查存储桶是否存在，不存在则创建
func (s *MinioStore) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("检查存储桶失败: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("创建存储桶失败: %w", err)
	}
	return nil
}

// Get 读取对象内容
func (s *MinioStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return data, nil
}

// Put 写入对象
func (s *MinioStore) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("写入对象 %s 失败: %w", key, err)
	}
	return nil
}

// Exists 检查对象是否存在；仅在确认不存在时返回 (false, nil)
func (s *MinioStore) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if errors.Is(mapMinioErr(err), ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("检查对象 %s 失败: %w", key, err)
}

// List 列出前缀下的所有对象键
func (s *MinioStore) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	objectCh := s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("列出对象失败: %w", object.Err)
		}
		keys = append(keys, object.Key)
	}
	return keys, nil
}

// mapMinioErr 将 MinIO 的 NoSuchKey/NotFound 映射为 ErrNotFound
func mapMinioErr(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NotFound" || resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Key)
	}
	return err
}
