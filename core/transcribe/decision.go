package transcribe

import (
	"path"
	"regexp"
	"strconv"
	"time"

	"EchoMeta/model"
)

// State 是先前元数据记录相对当前文件的有效性判定
type State int

const (
	// NoPriorRecord 没有可用的先前记录（不存在或无法解析）
	NoPriorRecord State = iota
	// PriorRecordStale 先前记录存在但已失效：缺少转写引用，或
	// 存储的时长与当前文件不一致
	PriorRecordStale
	// PriorRecordValid 先前记录有效，其转写引用可以原样复用
	PriorRecordValid
)

// Evaluate 判定先前记录的状态。prior 为 nil 表示读取失败或记录缺失。
// 时长是唯一的失效判据：完全相等才算有效。
func Evaluate(prior *model.MetadataRecord, length int64) State {
	if prior == nil {
		return NoPriorRecord
	}
	if prior.Transcription == "" || prior.Length != length {
		return PriorRecordStale
	}
	return PriorRecordValid
}

var (
	transcriptNameRe = regexp.MustCompile(`[^a-zA-Z0-9\-_.!*'()/]`)
	jobNameRe        = regexp.MustCompile(`[^0-9a-zA-Z._\-]`)
	dashRunRe        = regexp.MustCompile(`-+`)
)

// maxJobNameLen 任务名中文件名部分的长度上限
const maxJobNameLen = 100

// TranscriptKey 计算确定性的转写结果路径：
// 文件名收敛到受限字符集并折叠连续的连接符。
func TranscriptKey(folder, generatedFolder, baseName string) string {
	name := transcriptNameRe.ReplaceAllString(baseName, "-")
	name = dashRunRe.ReplaceAllString(name, "-")
	return path.Join(folder, generatedFolder, "transcript", name+".json")
}

// JobName 生成转写任务名：清洗后的文件名截断到上限，
// 再追加毫秒时间戳保证重试之间不冲突。
func JobName(baseName string, now time.Time) string {
	name := jobNameRe.ReplaceAllString(baseName, "-")
	name = dashRunRe.ReplaceAllString(name, "-")
	if len(name) > maxJobNameLen {
		name = name[:maxJobNameLen]
	}
	return name + "--" + strconv.FormatInt(now.UnixMilli(), 10)
}
