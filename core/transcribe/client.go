package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"EchoMeta/logger"
)

// Client 通过 HTTP 向转写服务提交任务
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient 创建转写服务客户端
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Submit 提交转写任务。任何传输或服务失败都包装为 ErrSubmit 返回。
func (c *Client) Submit(ctx context.Context, req Request) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: 序列化请求失败: %v", ErrSubmit, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jobs", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: 创建请求失败: %v", ErrSubmit, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: 请求失败: %v", ErrSubmit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: 服务返回状态码 %d: %s", ErrSubmit, resp.StatusCode, bytes.TrimSpace(payload))
	}

	logger.Info("转写任务已提交",
		logger.String("jobName", req.JobName),
		logger.String("outputKey", req.OutputKey))
	return nil
}
