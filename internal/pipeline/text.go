package pipeline

import (
	"fmt"
	"unicode/utf8"

	"github.com/sant0-9/mindppt/internal/apierr"
)

// Input bounds, counted in characters (runes).
const (
	MinTextRunes    = 50
	MaxTextRunes    = 5000
	MaxAnalyzeRunes = 5000
	MaxOutlineRunes = 50000
)

// User-facing validation messages.
const (
	MsgTextEmpty     = "请提供有效的文本内容"
	MsgOutlineAbsent = "请提供有效的大纲数据"
)

var (
	MsgTextTooShort = fmt.Sprintf("文本内容太少，请至少输入 %d 个字符", MinTextRunes)
	MsgTextTooLong  = fmt.Sprintf("文本内容太多，最多支持 %d 个字符", MaxTextRunes)
)

// ValidateText enforces the analysis input bounds.
func ValidateText(text string) error {
	n := RuneLen(text)
	if n < MinTextRunes {
		return apierr.Validation(MsgTextTooShort)
	}
	if n > MaxTextRunes {
		return apierr.Validation(MsgTextTooLong)
	}
	return nil
}

// RuneLen counts characters, not bytes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// TruncateRunes cuts s to at most n characters.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
