package repository

import (
	"fmt"
	"time"

	"EchoMeta/model"

	"gorm.io/gorm"
)

// TranscriptionJobRepository defines the interface for job audit operations.
type TranscriptionJobRepository interface {
	RecordSubmission(job *model.TranscriptionJob) error
	GetByJobName(jobName string) (*model.TranscriptionJob, error)
	ListSince(since time.Time) ([]*model.TranscriptionJob, error)
}

// mysqlTranscriptionJobRepository implements TranscriptionJobRepository for MySQL.
type mysqlTranscriptionJobRepository struct {
	db *gorm.DB
}

// NewMySQLTranscriptionJobRepository creates a new instance backed by the given connection.
func NewMySQLTranscriptionJobRepository(db *gorm.DB) TranscriptionJobRepository {
	return &mysqlTranscriptionJobRepository{db: db}
}

// RecordSubmission stores the audit row for a submitted job.
func (r *mysqlTranscriptionJobRepository) RecordSubmission(job *model.TranscriptionJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to record transcription job %s: %w", job.JobName, err)
	}
	return nil
}

// GetByJobName retrieves one job by its unique name.
func (r *mysqlTranscriptionJobRepository) GetByJobName(jobName string) (*model.TranscriptionJob, error) {
	var job model.TranscriptionJob
	err := r.db.Where("job_name = ?", jobName).First(&job).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query transcription job %s: %w", jobName, err)
	}
	return &job, nil
}

// ListSince returns all jobs submitted at or after the given time.
func (r *mysqlTranscriptionJobRepository) ListSince(since time.Time) ([]*model.TranscriptionJob, error) {
	var jobs []*model.TranscriptionJob
	err := r.db.Where("submitted_at >= ?", since).Order("submitted_at").Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transcription jobs: %w", err)
	}
	return jobs, nil
}
