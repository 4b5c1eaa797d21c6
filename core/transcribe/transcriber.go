package transcribe

import (
	"context"
	"errors"
)

// ErrSubmit 表示转写服务拒绝任务或不可达。
// 提交失败对当前文件是致命的，管道内部不重试，由事件投递方负责重投。
var ErrSubmit = errors.New("transcribe: job submission failed")

// Request 描述一个转写任务：源与目标位置、语言与媒体格式。
// 任务是异步的，结果由转写服务自行写到输出位置。
type Request struct {
	LanguageCode string `json:"languageCode"`
	MediaURI     string `json:"mediaUri"`
	MediaFormat  string `json:"mediaFormat"`
	JobName      string `json:"jobName"`
	OutputBucket string `json:"outputBucket"`
	OutputKey    string `json:"outputKey"`
}

// Transcriber 是转写服务的提交契约，对管道而言即提即忘
type Transcriber interface {
	Submit(ctx context.Context, req Request) error
}
