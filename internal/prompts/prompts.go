package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/sant0-9/mindppt/internal/style"
)

//go:embed analysis.md
var Analysis string

//go:embed outline.md
var Outline string

// AnalysisContext is the part of an earlier analysis that is fed back into
// outline generation.
type AnalysisContext struct {
	CoreTopic string
	KeyPoints []string
	Sections  []string
}

// AnalysisSystem returns the system prompt for text analysis.
func AnalysisSystem() string {
	return strings.TrimSpace(Analysis)
}

// OutlineSystem returns the system prompt for outline generation.
func OutlineSystem() string {
	return strings.TrimSpace(Outline)
}

func AnalysisUser(text string) string {
	return "请分析以下文本内容：\n\n" + text
}

func OutlineUser(text string) string {
	return "待分析的文本：\n" + text
}

// BuildOutlineInput augments the source text with the analysis, when there
// is one, and the style requirements.
func BuildOutlineInput(text string, analysis *AnalysisContext, st style.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "请根据以下文本内容生成演示文稿大纲：\n\n%s\n\n", text)

	if analysis != nil {
		b.WriteString("\n【参考分析结果】\n")
		fmt.Fprintf(&b, "核心主题：%s\n", analysis.CoreTopic)
		b.WriteString("关键要点：\n")
		for i, p := range analysis.KeyPoints {
			fmt.Fprintf(&b, "%d. %s\n", i+1, p)
		}
		fmt.Fprintf(&b, "建议章节：%s\n", strings.Join(analysis.Sections, "、"))
	}

	b.WriteString(st.PromptSection())
	return b.String()
}
