package pipeline

import (
	"strings"

	"github.com/sant0-9/mindppt/internal/prompts"
)

// Complexity is the model's estimate of how dense the source text is.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// AnalysisResult is the structured reading of the input text.
type AnalysisResult struct {
	CoreTopic         string        `json:"coreTopic"`
	KeyPoints         []string      `json:"keyPoints"`
	MainStructure     MainStructure `json:"mainStructure"`
	Summary           string        `json:"summary"`
	ExtractedKeywords []string      `json:"extractedKeywords"`
	Suggestions       Suggestions   `json:"suggestions"`
}

type MainStructure struct {
	SuggestedSections []string   `json:"suggestedSections"`
	EstimatedSlides   int        `json:"estimatedSlides"`
	Complexity        Complexity `json:"complexity"`
}

type Suggestions struct {
	RecommendedStyle string   `json:"recommendedStyle"`
	FocusAreas       []string `json:"focusAreas"`
	VisualApproach   string   `json:"visualApproach"`
}

// rawAnalysis is what the model returns; every field may be missing.
type rawAnalysis struct {
	CoreTopic     string   `json:"coreTopic"`
	KeyPoints     []string `json:"keyPoints"`
	MainStructure *struct {
		SuggestedSections []string   `json:"suggestedSections"`
		EstimatedSlides   int        `json:"estimatedSlides"`
		Complexity        Complexity `json:"complexity"`
	} `json:"mainStructure"`
	Summary           string   `json:"summary"`
	ExtractedKeywords []string `json:"extractedKeywords"`
}

const defaultEstimatedSlides = 15

// result fills the gaps in a model answer and attaches suggestions for
// styleID.
func (r *rawAnalysis) result(styleID string) *AnalysisResult {
	res := &AnalysisResult{
		CoreTopic:         strings.TrimSpace(r.CoreTopic),
		KeyPoints:         dedupe(r.KeyPoints),
		Summary:           strings.TrimSpace(r.Summary),
		ExtractedKeywords: dedupe(r.ExtractedKeywords),
		MainStructure: MainStructure{
			SuggestedSections: []string{},
			EstimatedSlides:   defaultEstimatedSlides,
			Complexity:        ComplexityMedium,
		},
	}
	if ms := r.MainStructure; ms != nil {
		res.MainStructure.SuggestedSections = dedupe(ms.SuggestedSections)
		if ms.EstimatedSlides > 0 {
			res.MainStructure.EstimatedSlides = ms.EstimatedSlides
		}
		switch ms.Complexity {
		case ComplexitySimple, ComplexityMedium, ComplexityComplex:
			res.MainStructure.Complexity = ms.Complexity
		}
	}
	res.Suggestions = suggest(res, styleID)
	return res
}

// dedupe trims items, drops blanks and repeats (case-insensitively) and
// never returns nil.
func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool)
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || seen[strings.ToLower(it)] {
			continue
		}
		seen[strings.ToLower(it)] = true
		out = append(out, it)
	}
	return out
}

const focusAreaCount = 3

func suggest(res *AnalysisResult, styleID string) Suggestions {
	focus := res.KeyPoints
	if len(focus) > focusAreaCount {
		focus = focus[:focusAreaCount]
	}
	return Suggestions{
		RecommendedStyle: styleID,
		FocusAreas:       append([]string{}, focus...),
		VisualApproach:   VisualApproach(res.MainStructure),
	}
}

// VisualApproach describes how to present content of the given shape.
func VisualApproach(ms MainStructure) string {
	var s string
	switch ms.Complexity {
	case ComplexitySimple:
		s = "内容较为简单，建议使用简洁的布局和清晰的图标展示"
	case ComplexityMedium:
		s = "内容适中，建议使用数据对比和流程图展示重点"
	default:
		s = "内容较为复杂，建议使用分层结构和多种可视化方式"
	}
	if len(ms.SuggestedSections) >= 5 {
		s += "，适合使用目录页和章节分隔页"
	}
	return s
}

// Context returns the part of the analysis fed back into outline generation.
func (a *AnalysisResult) Context() *prompts.AnalysisContext {
	if a == nil {
		return nil
	}
	return &prompts.AnalysisContext{
		CoreTopic: a.CoreTopic,
		KeyPoints: a.KeyPoints,
		Sections:  a.MainStructure.SuggestedSections,
	}
}
