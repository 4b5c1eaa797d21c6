package tagging

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"EchoMeta/model"

	"github.com/bogem/id3v2"
)

// ErrTagRead 表示字节流不是可解析的音频标签容器。
// 文件没有标签块不算错误，会得到空的 TagBlock。
var ErrTagRead = errors.New("tagging: malformed audio tag container")

// ParseTag 从原始文件字节中解码 ID3 标签块。纯解码，无副作用。
func ParseTag(data []byte) (model.TagBlock, error) {
	tag, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
	if err != nil {
		return model.TagBlock{}, fmt.Errorf("%w: %v", ErrTagRead, err)
	}
	defer tag.Close()

	block := model.TagBlock{
		Title:   tag.Title(),
		Length:  parseLength(tag.GetTextFrame(tag.CommonID("Length")).Text),
		Comment: firstComment(tag),
		Picture: firstPicture(tag),
	}
	return block, nil
}

// parseLength 解析 TLEN 帧的毫秒数；缺失或非法时返回 0
func parseLength(text string) int64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// firstComment 取第一个 COMM 帧的正文
func firstComment(tag *id3v2.Tag) string {
	for _, f := range tag.GetFrames(tag.CommonID("Comments")) {
		if comment, ok := f.(id3v2.CommentFrame); ok {
			return comment.Text
		}
	}
	return ""
}

// firstPicture 取第一个 APIC 帧的图片数据
func firstPicture(tag *id3v2.Tag) *model.Picture {
	for _, f := range tag.GetFrames(tag.CommonID("Attached picture")) {
		if pic, ok := f.(id3v2.PictureFrame); ok && len(pic.Picture) > 0 {
			return &model.Picture{MimeType: pic.MimeType, Data: pic.Picture}
		}
	}
	return nil
}
