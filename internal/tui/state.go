package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sant0-9/mindppt/internal/config"
	"github.com/sant0-9/mindppt/internal/document"
	"github.com/sant0-9/mindppt/internal/pipeline"
	"github.com/sant0-9/mindppt/internal/style"
	"github.com/sant0-9/mindppt/internal/workflow"
	"github.com/sant0-9/mindppt/internal/writer"
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Settings
	settingsMode     string
	settingsSelected int

	// Workflow
	machine  *workflow.Machine
	pipeline *pipeline.Pipeline
	writer   *writer.Writer

	// Input step
	text      textarea.Model
	styleID   string
	source    *document.Source

	// Style picker
	styleCursor int
	pickerFrom  view

	// Processing
	spinner    spinner.Model
	progress   *pipeline.Progress
	progressCh chan pipeline.Progress

	// Review
	outlineView viewport.Model

	// Output
	savedPath   string
	mindmapPath string
	saveErr     error

	// Provider
	providerReady bool
	providerError error
}

func newState() *state {
	text := textarea.New()
	text.Placeholder = "粘贴或输入要生成演示文稿的文本（50-5000字）..."
	text.CharLimit = pipeline.MaxTextRunes + 1000
	text.ShowLineNumbers = false
	text.SetWidth(70)
	text.SetHeight(12)

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styleLogo),
	)

	return &state{
		machine:     workflow.New(),
		text:        text,
		styleID:     style.Default,
		apiKeyInput: apiKey,
		spinner:     spin,
		progressCh:  make(chan pipeline.Progress, 16),
		outlineView: viewport.New(70, 16),
	}
}
