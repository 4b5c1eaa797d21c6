package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"EchoMeta/config"
	"EchoMeta/core/cover"
	"EchoMeta/core/tagging"
	"EchoMeta/core/transcribe"
	"EchoMeta/logger"
	"EchoMeta/model"
	"EchoMeta/storage"

	"go.uber.org/multierr"
)

// JobRecorder 记录已提交的转写任务（审计用途）。
// 记录失败不阻断文件处理：任务此时已经提交出去了。
type JobRecorder interface {
	RecordSubmission(job *model.TranscriptionJob) error
}

// EventGuard 判断事件是否首次投递。返回 false 表示同一对象的
// 同一版本已经处理过，可以跳过；实现必须在任何不确定时返回 true。
type EventGuard interface {
	FirstDelivery(ctx context.Context, bucket, key, etag string) bool
}

// Pipeline 是按事件驱动的元数据处理管道：
// 取源对象 → 解码标签 → 解析注释 → 封面去重 → 转写判定 →
// 组装记录 → 持久化 → 重建目录索引。
// 不同文件的事件相互独立，单个文件内部严格串行。
type Pipeline struct {
	store       storage.Store
	transcriber transcribe.Transcriber
	comments    *tagging.CommentParser
	deriver     *tagging.Deriver
	covers      *cover.Cache
	indexer     *Indexer

	generatedFolder string
	languageCode    string
	mediaFormat     string

	jobs  JobRecorder // 可为 nil
	guard EventGuard  // 可为 nil

	now func() time.Time
}

// New 创建管道，按配置装配各个处理环节
func New(cfg *config.Config, store storage.Store, transcriber transcribe.Transcriber) (*Pipeline, error) {
	comments, err := tagging.NewCommentParser(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		store:           store,
		transcriber:     transcriber,
		comments:        comments,
		deriver:         tagging.NewDeriver(cfg.SeasonTable(), cfg.EpisodeShowToken),
		covers:          cover.NewCache(store, cfg.GeneratedFolder),
		indexer:         NewIndexer(store),
		generatedFolder: cfg.GeneratedFolder,
		languageCode:    cfg.LanguageCode,
		mediaFormat:     cfg.MediaFormat,
		now:             time.Now,
	}, nil
}

// WithJobRecorder 启用转写任务审计
func (p *Pipeline) WithJobRecorder(jobs JobRecorder) *Pipeline {
	p.jobs = jobs
	return p
}

// WithEventGuard 启用重复投递抑制
func (p *Pipeline) WithEventGuard(guard EventGuard) *Pipeline {
	p.guard = guard
	return p
}

// Indexer 暴露索引器，供 reindex 命令复用
func (p *Pipeline) Indexer() *Indexer {
	return p.indexer
}

// ProcessEvent 处理一批对象创建事件。
// 单个文件失败只中止该文件，不影响同批其它文件；
// 所有失败合并后返回，由投递方决定是否重投整批。
func (p *Pipeline) ProcessEvent(ctx context.Context, event model.ObjectEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("非法事件: %w", err)
	}

	var errs error
	for _, record := range event.Records {
		src, err := record.Source()
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		if p.guard != nil && !p.guard.FirstDelivery(ctx, src.Bucket, src.Key, src.ETag) {
			logger.Info("跳过重复投递的事件",
				logger.String("key", src.Key),
				logger.String("etag", src.ETag))
			continue
		}

		if err := p.ProcessSource(ctx, src); err != nil {
			logger.Error("文件处理失败",
				logger.String("bucket", src.Bucket),
				logger.String("key", src.Key),
				logger.ErrorField(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", src.Key, err))
		}
	}
	return errs
}

// ProcessSource 处理单个源对象：组装要么完整成功要么整体失败，
// 绝不持久化部分记录。
func (p *Pipeline) ProcessSource(ctx context.Context, src model.SourceObject) error {
	data, err := p.store.Get(ctx, src.Bucket, src.Key)
	if err != nil {
		return fmt.Errorf("读取源对象失败: %w", err)
	}

	tag, err := tagging.ParseTag(data)
	if err != nil {
		return err
	}

	comment, err := p.comments.Parse(tag.Comment)
	if err != nil {
		return err
	}

	derived := p.deriver.Derive(src.Key, tag.Title)

	record := model.MetadataRecord{
		Title:    tag.Title,
		Length:   tag.Length,
		File:     src.Key,
		Duration: tagging.FormatDuration(tag.Length),
		Season:   derived.Season,
		Episode:  derived.Episode,
		Text:     comment.Text,
		Tags:     comment.Tags,
		Date:     comment.Date,
		Extra:    comment.Extra,
	}

	if tag.Picture != nil {
		imageKey, err := p.covers.Ensure(ctx, src.Bucket, src.Folder(), *tag.Picture)
		if err != nil {
			return err
		}
		record.Image = imageKey
	}

	metaFolder := path.Join(src.Folder(), p.generatedFolder, "meta")
	metaKey := path.Join(metaFolder, src.BaseName()+".json")

	if err := p.resolveTranscription(ctx, src, metaKey, &record); err != nil {
		return err
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("序列化元数据记录失败: %w", err)
	}
	if err := p.store.Put(ctx, src.Bucket, metaKey, body, "application/json"); err != nil {
		return fmt.Errorf("写入元数据记录失败: %w", err)
	}
	logger.Info("元数据已提取",
		logger.String("key", src.Key),
		logger.String("metaKey", metaKey),
		logger.Int64("length", record.Length))

	return p.indexer.Rebuild(ctx, src.Bucket, metaFolder)
}

// resolveTranscription 复用有效的先前转写引用，否则提交新任务并把
// 引用立即指向任务的预期输出路径（任务异步完成）。
func (p *Pipeline) resolveTranscription(ctx context.Context, src model.SourceObject, metaKey string, record *model.MetadataRecord) error {
	prior, err := p.loadPrior(ctx, src.Bucket, metaKey)
	if err != nil {
		return err
	}

	if transcribe.Evaluate(prior, record.Length) == transcribe.PriorRecordValid {
		record.Transcription = prior.Transcription
		logger.Debug("复用已有转写引用",
			logger.String("key", src.Key),
			logger.String("transcription", prior.Transcription))
		return nil
	}

	transcriptKey := transcribe.TranscriptKey(src.Folder(), p.generatedFolder, src.BaseName())
	jobName := transcribe.JobName(src.BaseName(), p.now())

	req := transcribe.Request{
		LanguageCode: p.languageCode,
		MediaURI:     fmt.Sprintf("s3://%s/%s", src.Bucket, src.Key),
		MediaFormat:  p.mediaFormat,
		JobName:      jobName,
		OutputBucket: src.Bucket,
		OutputKey:    transcriptKey,
	}
	if err := p.transcriber.Submit(ctx, req); err != nil {
		return err
	}

	if p.jobs != nil {
		job := &model.TranscriptionJob{
			JobName:       jobName,
			SourceKey:     src.Key,
			TranscriptKey: transcriptKey,
			Language:      p.languageCode,
			SubmittedAt:   p.now(),
		}
		if err := p.jobs.RecordSubmission(job); err != nil {
			logger.Warn("转写任务审计记录失败",
				logger.String("jobName", jobName),
				logger.ErrorField(err))
		}
	}

	record.Transcription = transcriptKey
	return nil
}

// loadPrior 读取先前的元数据记录。
// 记录不存在或无法解析 → (nil, nil)；其它存储故障原样上抛，
// 不得与“记录缺失”混淆。
func (p *Pipeline) loadPrior(ctx context.Context, bucket, metaKey string) (*model.MetadataRecord, error) {
	data, err := p.store.Get(ctx, bucket, metaKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("读取先前记录失败: %w", err)
	}

	var prior model.MetadataRecord
	if err := json.Unmarshal(data, &prior); err != nil {
		logger.Warn("先前记录无法解析，按缺失处理",
			logger.String("metaKey", metaKey),
			logger.ErrorField(err))
		return nil, nil
	}
	return &prior, nil
}
