package model

import "time"

// TranscriptionJob is the audit row written for every transcription job the
// pipeline submits. The metadata record in the bucket stays authoritative;
// this table only exists for spend visibility.
type TranscriptionJob struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	JobName       string    `gorm:"uniqueIndex;size:128" json:"jobName"`
	SourceKey     string    `gorm:"size:512" json:"sourceKey"`
	TranscriptKey string    `gorm:"size:512" json:"transcriptKey"`
	Language      string    `gorm:"size:16" json:"language"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// TableName specifies the table name for TranscriptionJob
func (TranscriptionJob) TableName() string {
	return "transcription_jobs"
}
