// Package recommend classifies slide text into icons, layouts and visual
// suggestions with ordered, first-match rules.
package recommend

import (
	"regexp"
	"strings"
)

// Layout is a slide layout tag.
type Layout string

const (
	LayoutTitle     Layout = "title"
	LayoutContent   Layout = "content"
	LayoutTwoColumn Layout = "twoColumn"
	LayoutSection   Layout = "section"
)

// Valid reports whether l is one of the known layouts.
func (l Layout) Valid() bool {
	switch l {
	case LayoutTitle, LayoutContent, LayoutTwoColumn, LayoutSection:
		return true
	}
	return false
}

// DefaultIcon is returned when nothing in the text matches.
const DefaultIcon = "circle"

// Result bundles every recommendation for one piece of text.
type Result struct {
	Icon            string
	VisualCue       string
	Layout          Layout
	SuggestedImages []string
}

// Recommend runs every classifier over title and content.
func Recommend(title string, content []string) Result {
	return Result{
		Icon:            Icon(combine(title, content)),
		VisualCue:       VisualCue(title, content),
		Layout:          SuggestLayout(title, content),
		SuggestedImages: Images(title, content),
	}
}

func combine(title string, content []string) string {
	return strings.ToLower(title + " " + strings.Join(content, " "))
}

type patternRule struct {
	re    *regexp.Regexp
	value string
}

var fallbackIcons = []patternRule{
	{regexp.MustCompile(`增长|提升|增加|上涨`), "trending-up"},
	{regexp.MustCompile(`下降|减少|降低|下跌`), "trending-down"},
	{regexp.MustCompile(`目标|目的|预期`), "target"},
	{regexp.MustCompile(`完成|成功|结束`), "check-circle"},
	{regexp.MustCompile(`开始|启动|第一步`), "play"},
	{regexp.MustCompile(`团队|人员|大家`), "users"},
	{regexp.MustCompile(`时间|日期|日程`), "calendar"},
	{regexp.MustCompile(`设置|配置|选项`), "settings"},
	{regexp.MustCompile(`文档|文件|资料`), "file-text"},
	{regexp.MustCompile(`问题|错误|警告`), "alert-triangle"},
	{regexp.MustCompile(`建议|推荐|提示`), "lightbulb"},
}

// Icon picks an icon for free text. The keyword table is consulted first in
// declaration order, then the fallback pattern classes, then DefaultIcon.
func Icon(text string) string {
	lower := strings.ToLower(text)
	for _, k := range keywordTable {
		if strings.Contains(lower, k.keyword) {
			return k.icons[0]
		}
	}
	for _, r := range fallbackIcons {
		if r.re.MatchString(lower) {
			return r.value
		}
	}
	return DefaultIcon
}

// IconCategory returns the taxonomy category an icon belongs to, or "".
func IconCategory(icon string) string {
	for _, c := range iconCategories {
		for _, i := range c.icons {
			if i == icon {
				return c.name
			}
		}
	}
	return ""
}

const defaultCue = "建议使用简洁的图标和清晰的层次结构"

var cueRules = []patternRule{
	{regexp.MustCompile(`数据|统计|图表|分析|增长|趋势`), "建议使用数据可视化图表展示"},
	{regexp.MustCompile(`对比|比较|差异|优缺点`), "建议使用左右对比布局突出差异"},
	{regexp.MustCompile(`流程|步骤|阶段|顺序`), "建议使用流程图或时间轴展示"},
	{regexp.MustCompile(`团队|人员|协作|合作`), "建议添加团队协作相关插图"},
	{regexp.MustCompile(`目标|成果|成就|完成`), "建议使用靶心图或进度条展示"},
	{regexp.MustCompile(`技术|ai|智能|创新|科技`), "建议使用科技感元素和渐变色"},
	{regexp.MustCompile(`计划|时间|日程|未来`), "建议使用时间轴或日历视图"},
}

// VisualCue suggests how a slide should be illustrated.
func VisualCue(title string, content []string) string {
	text := combine(title, content)
	for _, r := range cueRules {
		if r.re.MatchString(text) {
			return r.value
		}
	}
	return defaultCue
}

var (
	titlePageRe  = regexp.MustCompile(`封面|介绍|概述|开始|目录`)
	comparisonRe = regexp.MustCompile(`对比|比较|差异|优缺点|前后`)
	sectionRe    = regexp.MustCompile(`(?i)第.+章|第.+节|part|chapter|章节`)
)

// SuggestLayout picks a layout. Title-page and chapter patterns look at the
// title only; comparison looks at the whole text.
func SuggestLayout(title string, content []string) Layout {
	switch {
	case titlePageRe.MatchString(title):
		return LayoutTitle
	case comparisonRe.MatchString(combine(title, content)):
		return LayoutTwoColumn
	case sectionRe.MatchString(title):
		return LayoutSection
	default:
		return LayoutContent
	}
}

var imageRules = []patternRule{
	{regexp.MustCompile(`团队|人员`), "团队协作场景"},
	{regexp.MustCompile(`数据|图表`), "数据可视化图表"},
	{regexp.MustCompile(`科技|ai|创新`), "科技感背景"},
	{regexp.MustCompile(`办公|工作`), "办公环境"},
	{regexp.MustCompile(`客户|用户`), "用户场景"},
}

var defaultImages = []string{"商务插图", "抽象图形"}

// Images lists every matching image theme. Unlike icons and layouts, all
// matching categories are returned.
func Images(title string, content []string) []string {
	text := combine(title, content)
	var out []string
	for _, r := range imageRules {
		if r.re.MatchString(text) {
			out = append(out, r.value)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultImages...)
	}
	return out
}
