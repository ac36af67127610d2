package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/mindppt/internal/document"
	"github.com/sant0-9/mindppt/internal/llm"
	"github.com/sant0-9/mindppt/internal/outline"
	"github.com/sant0-9/mindppt/internal/pipeline"
)

const (
	pingTimeout = 5 * time.Second
	callTimeout = 5 * time.Minute
)

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type configSavedMsg struct{ error }
type providerReadyMsg struct{}
type providerErrorMsg struct{ error }

type progressMsg pipeline.Progress

type analysisDoneMsg struct {
	res *pipeline.AnalysisResult
	err error
}

type outlineDoneMsg struct {
	out *outline.WithMindmap
	err error
}

type renderDoneMsg struct {
	art *document.Artifact
	err error
}

type saveKind string

const (
	saveDeck    saveKind = "deck"
	saveMindmap saveKind = "mindmap"
)

type savedMsg struct {
	kind saveKind
	path string
	err  error
}

func (a *App) testProvider() tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		provider, err := llm.NewProvider(cfg)
		if err != nil {
			return providerErrorMsg{err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}

		return providerReadyMsg{}
	}
}

// waitForProgress delivers the next pipeline progress update. Exactly one
// waiter is outstanding at a time; each progressMsg re-arms it.
func (a *App) waitForProgress() tea.Cmd {
	ch := a.state.progressCh
	return func() tea.Msg {
		return progressMsg(<-ch)
	}
}

func (a *App) analyzeCmd() tea.Cmd {
	p := a.state.pipeline
	req := a.state.machine.AnalyzeRequest()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		res, err := p.Analyze(ctx, req)
		return analysisDoneMsg{res: res, err: err}
	}
}

func (a *App) outlineCmd() tea.Cmd {
	p := a.state.pipeline
	req := a.state.machine.OutlineRequest()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		out, err := p.GenerateOutline(ctx, req)
		return outlineDoneMsg{out: out, err: err}
	}
}

func (a *App) renderCmd() tea.Cmd {
	p := a.state.pipeline
	req := a.state.machine.DocumentRequest()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		art, err := p.GenerateDocument(ctx, req)
		return renderDoneMsg{art: art, err: err}
	}
}

func (a *App) saveArtifactCmd(art *document.Artifact) tea.Cmd {
	w := a.state.writer
	return func() tea.Msg {
		path, err := w.WriteArtifact(art)
		return savedMsg{kind: saveDeck, path: path, err: err}
	}
}

func (a *App) saveMindmapCmd() tea.Cmd {
	w := a.state.writer
	o := a.state.machine.Outline()
	styleName := a.currentStyle().Name
	return func() tea.Msg {
		path, err := w.WriteMindmap(o, styleName)
		return savedMsg{kind: saveMindmap, path: path, err: err}
	}
}
