package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/mindppt/internal/apierr"
	"github.com/sant0-9/mindppt/internal/config"
	"github.com/sant0-9/mindppt/internal/document"
	"github.com/sant0-9/mindppt/internal/outline"
	"github.com/sant0-9/mindppt/internal/pipeline"
	"github.com/sant0-9/mindppt/internal/workflow"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a := NewApp(Options{Config: config.DefaultConfig(), OutputDir: t.TempDir()})
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return a
}

func sampleText() string {
	return strings.Repeat("本季度销售额同比增长百分之二十，新市场拓展顺利。", 4)
}

func sampleOutline() *outline.WithMindmap {
	o := &outline.Outline{
		Title: "季度汇报",
		Items: []*outline.Node{
			{Title: "市场数据分析", Content: []string{"销售增长"}},
			{Title: "下季度计划", Content: []string{"拓展新市场"}},
		},
	}
	o.Normalize()
	o = o.Enriched()
	return &outline.WithMindmap{Outline: o, MindmapMarkdown: outline.Markdown(o)}
}

func press(a *App, k tea.KeyMsg) tea.Cmd {
	_, cmd := a.Update(k)
	return cmd
}

func TestFullFlow(t *testing.T) {
	a := newTestApp(t)
	m := a.state.machine

	a.state.text.SetValue(sampleText())
	require.NotNil(t, press(a, tea.KeyMsg{Type: tea.KeyCtrlS}))
	assert.Equal(t, workflow.StepAnalyzing, m.Step())
	assert.True(t, m.Busy())
	assert.Contains(t, a.View(), "分析文本结构")

	a.Update(analysisDoneMsg{res: &pipeline.AnalysisResult{
		CoreTopic: "季度销售汇报",
		KeyPoints: []string{"销售增长"},
		MainStructure: pipeline.MainStructure{
			SuggestedSections: []string{"市场数据分析"},
			EstimatedSlides:   6,
			Complexity:        pipeline.ComplexityMedium,
		},
	}})
	assert.Equal(t, workflow.StepAnalysisReview, m.Step())
	view := a.View()
	assert.Contains(t, view, "季度销售汇报")
	assert.Contains(t, view, "中等")

	require.NotNil(t, press(a, tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, workflow.StepGenerating, m.Step())

	a.Update(outlineDoneMsg{out: sampleOutline()})
	assert.Equal(t, workflow.StepReview, m.Step())
	assert.Contains(t, a.View(), "市场数据分析")

	require.NotNil(t, press(a, tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, workflow.StepPPTGenerating, m.Step())
	assert.True(t, m.Busy())

	art := &document.Artifact{Filename: "季度汇报_商务简约.pptx", Data: []byte("deck"), SlideCount: 3}
	_, save := a.Update(renderDoneMsg{art: art})
	require.NotNil(t, save)
	a.Update(save())

	require.NotEmpty(t, a.state.savedPath)
	data, err := os.ReadFile(a.state.savedPath)
	require.NoError(t, err)
	assert.Equal(t, "deck", string(data))
	assert.Contains(t, a.View(), "演示文稿已生成")

	// Mindmap export
	mindmap := press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	require.NotNil(t, mindmap)
	a.Update(mindmap())
	require.NotEmpty(t, a.state.mindmapPath)
	assert.Equal(t, ".md", filepath.Ext(a.state.mindmapPath))

	// Start over keeps the style
	press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Equal(t, workflow.StepInput, m.Step())
	assert.Empty(t, a.state.text.Value())
	assert.Empty(t, a.state.savedPath)
}

func TestSubmitRejectsShortText(t *testing.T) {
	a := newTestApp(t)

	a.state.text.SetValue("太短")
	assert.Nil(t, press(a, tea.KeyMsg{Type: tea.KeyCtrlS}))
	assert.Equal(t, workflow.StepInput, a.state.machine.Step())
	assert.Contains(t, a.View(), "文本内容太少")
}

func TestAnalysisFailureReturnsToInput(t *testing.T) {
	a := newTestApp(t)
	a.state.text.SetValue(sampleText())
	press(a, tea.KeyMsg{Type: tea.KeyCtrlS})

	a.Update(analysisDoneMsg{err: apierr.New(apierr.KindQuota, apierr.MsgQuota, errors.New("429"))})
	assert.Equal(t, workflow.StepInput, a.state.machine.Step())
	assert.Equal(t, sampleText(), a.state.text.Value())
	assert.Contains(t, a.View(), apierr.MsgQuota)
}

func TestRenderFailureRetry(t *testing.T) {
	a := newTestApp(t)
	m := a.state.machine
	a.state.text.SetValue(sampleText())
	press(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	a.Update(analysisDoneMsg{res: &pipeline.AnalysisResult{CoreTopic: "季度汇报"}})
	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(outlineDoneMsg{out: sampleOutline()})
	press(a, tea.KeyMsg{Type: tea.KeyEnter})

	a.Update(renderDoneMsg{err: apierr.Validation(pipeline.MsgOutlineAbsent)})
	assert.Equal(t, workflow.StepPPTGenerating, m.Step())
	assert.False(t, m.Busy())
	assert.Contains(t, a.View(), pipeline.MsgOutlineAbsent)

	require.NotNil(t, press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}))
	assert.True(t, m.Busy())
	assert.NoError(t, m.Err())
}

func TestStylePicker(t *testing.T) {
	a := newTestApp(t)

	press(a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, viewStyles, a.view)
	assert.Contains(t, a.View(), "选择演示风格")

	press(a, tea.KeyMsg{Type: tea.KeyDown})
	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewMain, a.view)
	assert.NotEqual(t, "", a.state.styleID)
	assert.Equal(t, a.state.styleID, a.currentStyle().ID)
}

func TestProgressUpdatesProcessingView(t *testing.T) {
	a := newTestApp(t)
	a.state.text.SetValue(sampleText())
	press(a, tea.KeyMsg{Type: tea.KeyCtrlS})

	_, cmd := a.Update(progressMsg(pipeline.Progress{Stage: pipeline.StageAnalyzing, Message: "正在分析文本"}))
	assert.NotNil(t, cmd)
	assert.Contains(t, a.View(), "正在分析文本")
}
