package tagging

import "fmt"

// FormatDuration 把毫秒时长渲染为 HH:MM:SS。
// 各分量整数截断（不四舍五入），补零到两位；小时超过两位时不截断。
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	ms -= hours * 3_600_000
	minutes := ms / 60_000
	ms -= minutes * 60_000
	seconds := ms / 1_000

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
