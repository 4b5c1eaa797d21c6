package tagging

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"EchoMeta/model"

	"gopkg.in/yaml.v3"
)

// ErrCommentGrammar 表示注释中的结构化段存在但无法解析，
// 或解析结果不是键值映射。这是硬错误，不做静默降级。
var ErrCommentGrammar = errors.New("tagging: malformed structured comment block")

// CommentParser 把标签注释拆分为自由文本和可选的结构化数据块。
// 结构化块由整行 "--" 分隔符引入，按 YAML 映射解析；
// 识别 tags 与 date 两个键，其余键原样透传到 extra。
type CommentParser struct {
	loc *time.Location
}

// NewCommentParser 创建注释解析器，timezone 为解释裸日期所用的固定时区
func NewCommentParser(timezone string) (*CommentParser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("加载时区 %s 失败: %w", timezone, err)
	}
	return &CommentParser{loc: loc}, nil
}

// Parse 解析注释文本。无网络与存储访问。
func (p *CommentParser) Parse(comment string) (model.CommentData, error) {
	text, structured := splitComment(comment)
	data := model.CommentData{
		Text:  strings.TrimSpace(text),
		Extra: map[string]any{},
	}

	if strings.TrimSpace(structured) == "" {
		return data, nil
	}

	var block map[string]any
	if err := yaml.Unmarshal([]byte(structured), &block); err != nil {
		return model.CommentData{}, fmt.Errorf("%w: %v", ErrCommentGrammar, err)
	}
	if block == nil {
		return data, nil
	}

	for key, value := range block {
		switch key {
		case "tags":
			data.Tags = parseTags(value)
		case "date":
			date, err := p.parseDate(value)
			if err != nil {
				return model.CommentData{}, err
			}
			data.Date = date
		default:
			data.Extra[key] = value
		}
	}
	return data, nil
}

// splitComment 在第一个去除空白后恰为 "--" 的行上切分注释。
// 分隔符之前是自由文本，之后是结构化段；没有分隔符时整段都是文本。
func splitComment(comment string) (text, structured string) {
	lines := strings.Split(comment, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "--" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return comment, ""
}

// parseTags 把 tags 键归一化为字符串序列：
// 已是序列则逐项转换，是字符串则按逗号拆分并去除空白，否则视为未定义
func parseTags(value any) []string {
	switch v := value.(type) {
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			tags = append(tags, fmt.Sprintf("%v", item))
		}
		return tags
	case string:
		parts := strings.Split(v, ",")
		tags := make([]string, 0, len(parts))
		for _, part := range parts {
			tags = append(tags, strings.TrimSpace(part))
		}
		return tags
	default:
		return nil
	}
}

// 裸日期字符串可接受的格式，均按固定时区解释
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate 把 date 键解析为 UTC 绝对时刻。
// yaml.v3 会把 ISO 形式的标量直接解析成 time.Time（UTC 锚定），
// 这里统一重新锚定到配置的时区再转 UTC。
func (p *CommentParser) parseDate(value any) (*time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		anchored := time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), p.loc)
		utc := anchored.UTC()
		return &utc, nil
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			utc := t.UTC()
			return &utc, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, v, p.loc); err == nil {
				utc := t.UTC()
				return &utc, nil
			}
		}
		return nil, fmt.Errorf("%w: unparseable date %q", ErrCommentGrammar, v)
	default:
		return nil, nil
	}
}
