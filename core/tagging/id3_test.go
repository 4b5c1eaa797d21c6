package tagging

import (
	"bytes"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTagged(t *testing.T, title, length, comment string, pic []byte) []byte {
	t.Helper()

	tag := id3v2.NewEmptyTag()
	if title != "" {
		tag.SetTitle(title)
	}
	if length != "" {
		tag.AddTextFrame(tag.CommonID("Length"), id3v2.EncodingUTF8, length)
	}
	if comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "deu",
			Description: "",
			Text:        comment,
		})
	}
	if pic != nil {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/png",
			PictureType: id3v2.PTFrontCover,
			Picture:     pic,
		})
	}

	var buf bytes.Buffer
	_, err := tag.WriteTo(&buf)
	require.NoError(t, err)
	buf.WriteString("fake-audio-payload")
	return buf.Bytes()
}

func TestParseTag(t *testing.T) {
	data := buildTagged(t, "Tagesform 3", "18484832", "notes\n--\ntags: a", []byte{0x89, 0x50, 0x4e, 0x47})

	block, err := ParseTag(data)
	require.NoError(t, err)

	assert.Equal(t, "Tagesform 3", block.Title)
	assert.Equal(t, int64(18484832), block.Length)
	assert.Equal(t, "notes\n--\ntags: a", block.Comment)
	require.NotNil(t, block.Picture)
	assert.Equal(t, "image/png", block.Picture.MimeType)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, block.Picture.Data)
}

func TestParseTagWithoutTagBlock(t *testing.T) {
	// 没有标签头的文件解码为空 TagBlock，而不是错误
	block, err := ParseTag([]byte("no id3 header here, just bytes"))
	require.NoError(t, err)

	assert.Empty(t, block.Title)
	assert.Zero(t, block.Length)
	assert.Empty(t, block.Comment)
	assert.Nil(t, block.Picture)
}

func TestParseTagInvalidLength(t *testing.T) {
	data := buildTagged(t, "t", "not-a-number", "", nil)

	block, err := ParseTag(data)
	require.NoError(t, err)
	assert.Zero(t, block.Length)
}
