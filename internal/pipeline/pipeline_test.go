package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/mindppt/internal/apierr"
	"github.com/sant0-9/mindppt/internal/llm"
	"github.com/sant0-9/mindppt/internal/outline"
)

type fakeProvider struct {
	mu      sync.Mutex
	content string
	err     error
	calls   int
	last    *llm.CompletionRequest
}

func (f *fakeProvider) Name() string                   { return "fake" }
func (f *fakeProvider) Ping(ctx context.Context) error { return nil }

func (f *fakeProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.content, FinishReason: "stop"}, nil
}

func (f *fakeProvider) userMessage() string {
	for _, m := range f.last.Messages {
		if m.Role == "user" {
			return m.Content
		}
	}
	return ""
}

func newTestPipeline(fp *fakeProvider, opts ...Option) *Pipeline {
	return New(func() (llm.Provider, error) { return fp, nil }, opts...)
}

var sampleText = strings.Repeat("本季度销售数据同比增长，团队完成了三个核心项目。", 4)

const analysisJSON = "```json\n" + `{
  "coreTopic": "季度经营回顾",
  "keyPoints": ["销售增长", "项目交付", "团队扩张", "成本控制", "销售增长"],
  "mainStructure": {
    "suggestedSections": ["概览", "销售", "项目", "团队", "成本"],
    "estimatedSlides": 12,
    "complexity": "simple"
  },
  "summary": "本季度整体向好。",
  "extractedKeywords": ["销售", "项目"]
}` + "\n```"

const outlineJSON = `好的，以下是大纲：
{
  "title": "年度总结",
  "items": [
    {"id": "1", "title": "市场数据分析", "level": 1, "content": ["增长", " "], "children": [
      {"title": "团队分工", "content": ["研发", "运营"]}
    ]},
    {"id": "2", "title": "下一步计划", "level": 1, "content": []}
  ]
}`

func kindOf(t *testing.T, err error) apierr.Kind {
	t.Helper()
	var ae *apierr.Error
	require.True(t, errors.As(err, &ae), "error %v is not an *apierr.Error", err)
	return ae.Kind
}

func TestAnalyze(t *testing.T) {
	fp := &fakeProvider{content: analysisJSON}
	p := newTestPipeline(fp)

	res, err := p.Analyze(context.Background(), AnalyzeRequest{Text: sampleText, Style: "product-launch"})
	require.NoError(t, err)

	assert.Equal(t, "季度经营回顾", res.CoreTopic)
	assert.Equal(t, []string{"销售增长", "项目交付", "团队扩张", "成本控制"}, res.KeyPoints)
	assert.Equal(t, 12, res.MainStructure.EstimatedSlides)
	assert.Equal(t, ComplexitySimple, res.MainStructure.Complexity)

	assert.Equal(t, "product-launch", res.Suggestions.RecommendedStyle)
	assert.Equal(t, []string{"销售增长", "项目交付", "团队扩张"}, res.Suggestions.FocusAreas)
	assert.Equal(t, "内容较为简单，建议使用简洁的布局和清晰的图标展示，适合使用目录页和章节分隔页", res.Suggestions.VisualApproach)

	require.Equal(t, 1, fp.calls)
	assert.Equal(t, 2048, fp.last.MaxTokens)
	assert.InDelta(t, 0.7, fp.last.Temperature, 1e-9)
	assert.Contains(t, fp.userMessage(), "请分析以下文本内容")
}

func TestAnalyzeDefaults(t *testing.T) {
	fp := &fakeProvider{content: `{"coreTopic": "主题"}`}
	res, err := newTestPipeline(fp).Analyze(context.Background(), AnalyzeRequest{Text: sampleText})
	require.NoError(t, err)

	assert.Equal(t, []string{}, res.KeyPoints)
	assert.Equal(t, []string{}, res.MainStructure.SuggestedSections)
	assert.Equal(t, 15, res.MainStructure.EstimatedSlides)
	assert.Equal(t, ComplexityMedium, res.MainStructure.Complexity)
	assert.Equal(t, "executive-report", res.Suggestions.RecommendedStyle)
	assert.Empty(t, res.Suggestions.FocusAreas)
	assert.Equal(t, "内容适中，建议使用数据对比和流程图展示重点", res.Suggestions.VisualApproach)
}

func TestAnalyzeRejectsBeforeCallingModel(t *testing.T) {
	tests := []struct {
		name  string
		req   AnalyzeRequest
		wantM string
	}{
		{name: "too short", req: AnalyzeRequest{Text: "太短了"}, wantM: "文本内容太少，请至少输入 50 个字符"},
		{name: "too long", req: AnalyzeRequest{Text: strings.Repeat("字", 6000)}, wantM: "文本内容太多，最多支持 5000 个字符"},
		{name: "unknown style", req: AnalyzeRequest{Text: sampleText, Style: "nope"}, wantM: "不支持的演示风格: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakeProvider{content: analysisJSON}
			_, err := newTestPipeline(fp).Analyze(context.Background(), tt.req)
			require.Error(t, err)

			var ae *apierr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, apierr.KindValidation, ae.Kind)
			assert.Equal(t, tt.wantM, ae.Message)
			assert.Zero(t, fp.calls)
		})
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name    string
		factory ProviderFactory
		want    apierr.Kind
		wantMsg string
	}{
		{
			name: "missing credential",
			factory: func() (llm.Provider, error) {
				return nil, fmt.Errorf("zhipu: %w", llm.ErrMissingCredential)
			},
			want:    apierr.KindCredential,
			wantMsg: apierr.MsgCredential,
		},
		{
			name: "rejected key",
			factory: func() (llm.Provider, error) {
				return &fakeProvider{err: &llm.StatusError{Provider: "zhipu", Status: 401}}, nil
			},
			want:    apierr.KindCredential,
			wantMsg: apierr.MsgCredential,
		},
		{
			name: "rate limited",
			factory: func() (llm.Provider, error) {
				return &fakeProvider{err: &llm.StatusError{Provider: "zhipu", Status: 429}}, nil
			},
			want:    apierr.KindQuota,
			wantMsg: apierr.MsgQuota,
		},
		{
			name: "unparseable answer",
			factory: func() (llm.Provider, error) {
				return &fakeProvider{content: "抱歉，我无法完成。"}, nil
			},
			want:    apierr.KindParse,
			wantMsg: apierr.MsgParse,
		},
		{
			name: "unexpected failure",
			factory: func() (llm.Provider, error) {
				return &fakeProvider{err: errors.New("boom")}, nil
			},
			want:    apierr.KindInternal,
			wantMsg: FallbackAnalyze,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.factory).Analyze(context.Background(), AnalyzeRequest{Text: sampleText})
			require.Error(t, err)

			var ae *apierr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.want, ae.Kind)
			assert.Equal(t, tt.wantMsg, ae.Message)
		})
	}
}

func TestGenerateOutline(t *testing.T) {
	fp := &fakeProvider{content: outlineJSON}
	created := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	p := newTestPipeline(fp, WithClock(func() time.Time { return created }))

	analysis := &AnalysisResult{
		CoreTopic: "年度回顾",
		KeyPoints: []string{"增长", "团队"},
		MainStructure: MainStructure{
			SuggestedSections: []string{"市场", "计划"},
		},
	}
	out, err := p.GenerateOutline(context.Background(), OutlineRequest{
		Text:     sampleText,
		Style:    "executive-report",
		Analysis: analysis,
	})
	require.NoError(t, err)

	o := out.Outline
	assert.Equal(t, "年度总结", o.Title)
	require.Len(t, o.Items, 2)
	assert.Equal(t, []string{"增长"}, o.Items[0].Content)

	child := o.Items[0].Children[0]
	assert.Equal(t, "1-1", child.ID)
	assert.Equal(t, 2, child.Level)
	assert.NotEmpty(t, child.SuggestedIcon)
	assert.NotEmpty(t, child.VisualCue)
	assert.NotEmpty(t, child.Layout)

	assert.Equal(t, created, o.Metadata.CreatedAt)
	assert.Equal(t, RuneLen(sampleText), o.Metadata.SourceTextLength)

	assert.True(t, strings.HasPrefix(out.MindmapMarkdown, "# 年度总结\n## 市场数据分析\n- 增长\n### 团队分工"))

	require.Equal(t, 1, fp.calls)
	assert.Equal(t, 4096, fp.last.MaxTokens)
	assert.InDelta(t, 0.9, fp.last.TopP, 1e-9)
	user := fp.userMessage()
	assert.Contains(t, user, "请根据以下文本内容生成演示文稿大纲")
	assert.Contains(t, user, "【参考分析结果】")
	assert.Contains(t, user, "建议章节：市场、计划")
}

func TestGenerateOutlineErrors(t *testing.T) {
	t.Run("blank text", func(t *testing.T) {
		fp := &fakeProvider{content: outlineJSON}
		_, err := newTestPipeline(fp).GenerateOutline(context.Background(), OutlineRequest{Text: "  \n "})

		var ae *apierr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, apierr.KindValidation, ae.Kind)
		assert.Equal(t, "请提供有效的文本内容", ae.Message)
		assert.Zero(t, fp.calls)
	})

	t.Run("outline without items", func(t *testing.T) {
		fp := &fakeProvider{content: `{"title": "空", "items": []}`}
		_, err := newTestPipeline(fp).GenerateOutline(context.Background(), OutlineRequest{Text: "一些文本"})
		assert.Equal(t, apierr.KindParse, kindOf(t, err))
	})

	t.Run("upstream outage", func(t *testing.T) {
		fp := &fakeProvider{err: &llm.StatusError{Provider: "zhipu", Status: 503}}
		_, err := newTestPipeline(fp).GenerateOutline(context.Background(), OutlineRequest{Text: "一些文本"})
		assert.Equal(t, apierr.KindUpstream, kindOf(t, err))
	})
}

func TestGenerateDocument(t *testing.T) {
	fp := &fakeProvider{content: outlineJSON}
	p := newTestPipeline(fp)

	out, err := p.GenerateOutline(context.Background(), OutlineRequest{Text: sampleText})
	require.NoError(t, err)

	art, err := p.GenerateDocument(context.Background(), DocumentRequest{Outline: out.Outline, Style: "executive-report"})
	require.NoError(t, err)

	assert.Equal(t, "年度总结_高管汇报.pptx", art.Filename)
	// title, two sections, one content slide
	assert.Equal(t, 4, art.SlideCount)
	assert.True(t, strings.HasPrefix(string(art.Data), "PK"))
	assert.Equal(t, 1, fp.calls, "rendering never calls the model")
}

func TestGenerateDocumentErrors(t *testing.T) {
	p := newTestPipeline(&fakeProvider{})

	_, err := p.GenerateDocument(context.Background(), DocumentRequest{})
	var ae *apierr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apierr.KindValidation, ae.Kind)
	assert.Equal(t, "请提供有效的大纲数据", ae.Message)

	_, err = p.GenerateDocument(context.Background(), DocumentRequest{Outline: &outline.Outline{Title: "无内容"}})
	assert.Equal(t, apierr.KindValidation, kindOf(t, err))

	o := &outline.Outline{Title: "标题", Items: []*outline.Node{{Title: "一"}}}
	_, err = p.GenerateDocument(context.Background(), DocumentRequest{Outline: o, Style: "missing"})
	assert.Equal(t, apierr.KindValidation, kindOf(t, err))

	flat := &outline.Outline{Title: "x", Items: []*outline.Node{
		{Title: "a", Level: 1, Children: []*outline.Node{{Title: "b", Level: 1}}},
	}}
	_, err = p.GenerateDocument(context.Background(), DocumentRequest{Outline: flat})
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apierr.KindValidation, ae.Kind)
	assert.Contains(t, ae.Err.Error(), "invalid outline structure")
}

func TestGenerateDocumentLeavesOutlineUntouched(t *testing.T) {
	p := newTestPipeline(&fakeProvider{})

	o := &outline.Outline{Title: " 标题 ", Items: []*outline.Node{
		{Title: " 一 ", Content: []string{" 要点 ", ""}},
	}}
	art, err := p.GenerateDocument(context.Background(), DocumentRequest{Outline: o})
	require.NoError(t, err)
	assert.Equal(t, "标题_高管汇报.pptx", art.Filename)

	assert.Equal(t, " 标题 ", o.Title)
	assert.Empty(t, o.Items[0].ID)
	assert.Zero(t, o.Items[0].Level)
	assert.Equal(t, []string{" 要点 ", ""}, o.Items[0].Content)
}

func TestProgressAndObserver(t *testing.T) {
	fp := &fakeProvider{content: outlineJSON}

	var ops []string
	p := newTestPipeline(fp, WithObserver(func(op string, _ time.Duration, err error) {
		assert.NoError(t, err)
		ops = append(ops, op)
	}))

	var stages []Stage
	runIDs := make(map[string]bool)
	p.SetProgressCallback(func(pr Progress) {
		stages = append(stages, pr.Stage)
		runIDs[pr.RunID] = true
	})

	out, err := p.GenerateOutline(context.Background(), OutlineRequest{Text: sampleText})
	require.NoError(t, err)
	_, err = p.GenerateDocument(context.Background(), DocumentRequest{Outline: out.Outline})
	require.NoError(t, err)

	assert.Equal(t, []Stage{StageOutlining, StageEnriching, StageDone, StageRendering, StageDone}, stages)
	assert.Len(t, runIDs, 2)
	assert.Equal(t, []string{"outline"}, ops)
}

func TestGuardedPipeline(t *testing.T) {
	fp := &fakeProvider{err: &llm.StatusError{Provider: "zhipu", Status: 500}}
	cfg := llm.DefaultGuardConfig()
	cfg.MinRequests = 2
	cfg.FailureThreshold = 0.5
	p := newTestPipeline(fp, WithGuard(llm.NewGuard(cfg, nil)))

	for i := 0; i < 2; i++ {
		_, err := p.Analyze(context.Background(), AnalyzeRequest{Text: sampleText})
		assert.Equal(t, apierr.KindUpstream, kindOf(t, err))
	}
	_, err := p.Analyze(context.Background(), AnalyzeRequest{Text: sampleText})
	assert.Equal(t, apierr.KindUpstream, kindOf(t, err))
	assert.Equal(t, 2, fp.calls, "open breaker short-circuits the third call")
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "Analyzing", StageAnalyzing.String())
	assert.Equal(t, "Done", StageDone.String())
	assert.Equal(t, "Unknown", Stage(42).String())
}
