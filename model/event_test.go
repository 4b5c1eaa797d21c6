package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(bucket, key string) EventRecord {
	var r EventRecord
	r.S3.Bucket.Name = bucket
	r.S3.Object.Key = key
	return r
}

func TestSourceDecodesKey(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"show/My+File.mp3", "show/My File.mp3"},
		{"show/f%C3%BCnf.mp3", "show/fünf.mp3"},
		{"show/plain.mp3", "show/plain.mp3"},
	}
	for _, c := range cases {
		r := record("media", c.raw)
		src, err := r.Source()
		require.NoError(t, err, c.raw)
		assert.Equal(t, c.want, src.Key)
		assert.Equal(t, "media", src.Bucket)
	}
}

func TestSourceFolderAndBaseName(t *testing.T) {
	src := SourceObject{Bucket: "media", Key: "show/sub/folge 8.mp3"}
	assert.Equal(t, "show/sub", src.Folder())
	assert.Equal(t, "folge 8", src.BaseName())

	root := SourceObject{Key: "folge.mp3"}
	assert.Equal(t, ".", root.Folder())
	assert.Equal(t, "folge", root.BaseName())
}

func TestValidate(t *testing.T) {
	valid := ObjectEvent{Records: []EventRecord{record("media", "show/a.mp3")}}
	assert.NoError(t, valid.Validate())

	empty := ObjectEvent{}
	assert.Error(t, empty.Validate())

	noBucket := ObjectEvent{Records: []EventRecord{record("", "show/a.mp3")}}
	assert.Error(t, noBucket.Validate())

	noKey := ObjectEvent{Records: []EventRecord{record("media", "")}}
	assert.Error(t, noKey.Validate())

	badEncoding := ObjectEvent{Records: []EventRecord{record("media", "show/bad%zz.mp3")}}
	assert.Error(t, badEncoding.Validate())
}
