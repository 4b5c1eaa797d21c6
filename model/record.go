package model

import "time"

// TagBlock holds the raw fields decoded from an audio file's embedded tag.
// A file without any tag decodes to the zero value, not an error.
type TagBlock struct {
	Title   string
	Length  int64 // milliseconds, 0 when the length frame is absent or invalid
	Comment string
	Picture *Picture
}

// Picture is an image embedded in a tag.
type Picture struct {
	MimeType string
	Data     []byte
}

// CommentData is the parsed form of a tag comment: human free text plus the
// optional structured block after the "--" delimiter line.
type CommentData struct {
	Text  string         `json:"text"`
	Tags  []string       `json:"tags,omitempty"`
	Date  *time.Time     `json:"date,omitempty"`
	Extra map[string]any `json:"extra"`
}

// MetadataRecord is the sidecar record persisted next to each processed
// audio file at <folder>/<generated>/meta/<basename>.json.
//
// Length is the authoritative staleness key: when a new upload's length
// differs from the stored record's, the prior transcript is invalid.
type MetadataRecord struct {
	Title         string         `json:"title"`
	Length        int64          `json:"length"`
	File          string         `json:"file"`
	Duration      string         `json:"duration"`
	Season        int            `json:"season,omitempty"`
	Episode       int            `json:"episode,omitempty"`
	Text          string         `json:"text"`
	Tags          []string       `json:"tags,omitempty"`
	Date          *time.Time     `json:"date,omitempty"`
	Extra         map[string]any `json:"extra"`
	Image         string         `json:"image,omitempty"`
	Transcription string         `json:"transcription,omitempty"`
}
