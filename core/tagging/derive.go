package tagging

import (
	"regexp"
	"strconv"
	"strings"
)

// Derived 是从文件键与标题推导出的附加字段，0 表示未推导出
type Derived struct {
	Season  int
	Episode int
}

// Deriver 按模式匹配从 (文件键, 标题) 推导季/集编号。
// 这是尽力而为的启发式提取，匹配失败时静默省略，绝不报错。
type Deriver struct {
	seasons   map[string]int
	episodeRe *regexp.Regexp
}

// NewDeriver 创建推导器。seasons 是键前缀到季号的映射表；
// showToken 是标题中集号所跟随的节目名。
func NewDeriver(seasons map[string]int, showToken string) *Deriver {
	return &Deriver{
		seasons:   seasons,
		episodeRe: regexp.MustCompile(regexp.QuoteMeta(showToken) + `\s*([0-9,.]+)`),
	}
}

// Derive 推导季/集编号
func (d *Deriver) Derive(key, title string) Derived {
	var out Derived
	for prefix, season := range d.seasons {
		if strings.HasPrefix(key, prefix) {
			out.Season = season
			break
		}
	}

	if m := d.episodeRe.FindStringSubmatch(title); m != nil {
		out.Episode = leadingInt(m[1])
	}
	return out
}

// leadingInt 取匹配串的前导整数部分："8.5" 与 "8,5" 都得到 8
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
