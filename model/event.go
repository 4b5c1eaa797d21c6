package model

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ObjectEvent is a bucket notification describing one or more created
// objects (S3/MinIO event shape). Payloads are validated explicitly at the
// boundary instead of trusting their structural shape.
type ObjectEvent struct {
	Records []EventRecord `json:"Records"`
}

// EventRecord describes a single created object.
type EventRecord struct {
	EventName string `json:"eventName"`
	S3        struct {
		Bucket struct {
			Name string `json:"name"`
		} `json:"bucket"`
		Object struct {
			Key  string `json:"key"`
			Size int64  `json:"size"`
			ETag string `json:"eTag"`
		} `json:"object"`
	} `json:"s3"`
}

// Validate checks the event for the fields the pipeline depends on.
func (e *ObjectEvent) Validate() error {
	if len(e.Records) == 0 {
		return fmt.Errorf("event has no records")
	}
	for i, r := range e.Records {
		if r.S3.Bucket.Name == "" {
			return fmt.Errorf("record %d: missing bucket name", i)
		}
		if r.S3.Object.Key == "" {
			return fmt.Errorf("record %d: missing object key", i)
		}
		if _, err := decodeKey(r.S3.Object.Key); err != nil {
			return fmt.Errorf("record %d: undecodable object key %q: %w", i, r.S3.Object.Key, err)
		}
	}
	return nil
}

// Source converts the record into a SourceObject with a decoded key.
func (r *EventRecord) Source() (SourceObject, error) {
	key, err := decodeKey(r.S3.Object.Key)
	if err != nil {
		return SourceObject{}, fmt.Errorf("undecodable object key %q: %w", r.S3.Object.Key, err)
	}
	return SourceObject{Bucket: r.S3.Bucket.Name, Key: key, ETag: r.S3.Object.ETag}, nil
}

// decodeKey resolves percent- and plus-encoding in object keys; notification
// payloads encode spaces as "+".
func decodeKey(raw string) (string, error) {
	return url.QueryUnescape(raw)
}

// SourceObject identifies one uploaded object with its key already decoded.
type SourceObject struct {
	Bucket string
	Key    string
	ETag   string
}

// Folder returns the directory portion of the object key.
func (s SourceObject) Folder() string {
	return path.Dir(s.Key)
}

// BaseName returns the file name without its extension.
func (s SourceObject) BaseName() string {
	base := path.Base(s.Key)
	return strings.TrimSuffix(base, path.Ext(base))
}
