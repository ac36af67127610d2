package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/mindppt/internal/config"
	"github.com/sant0-9/mindppt/internal/document"
	"github.com/sant0-9/mindppt/internal/llm"
	"github.com/sant0-9/mindppt/internal/logger"
	"github.com/sant0-9/mindppt/internal/pipeline"
	"github.com/sant0-9/mindppt/internal/style"
	"github.com/sant0-9/mindppt/internal/workflow"
	"github.com/sant0-9/mindppt/internal/writer"
)

type view int

const (
	viewMain view = iota
	viewSetup
	viewStyles
	viewSettings
	viewHelp
)

// Options configures the terminal app.
type Options struct {
	Config     *config.Config
	NeedsSetup bool
	Logger     *logger.Logger
	// Source prefills the input step, e.g. from --file.
	Source    *document.Source
	OutputDir string
}

type App struct {
	width    int
	height   int
	view     view
	state    *state
	log      *logger.Logger
	quitting bool
}

func NewApp(opts Options) *App {
	s := newState()
	s.config = opts.Config
	s.needsSetup = opts.NeedsSetup
	if s.config == nil {
		s.config = config.DefaultConfig()
		s.needsSetup = true
	}
	s.writer = writer.NewWriter(opts.OutputDir)
	if opts.Source != nil {
		s.source = opts.Source
		s.text.SetValue(opts.Source.Text)
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	a := &App{view: viewMain, state: s, log: log}

	guard := llm.NewGuard(llm.DefaultGuardConfig(), func(name, from, to string) {
		log.Warn("circuit breaker state changed", "name", name, "from", from, "to", to)
	})
	s.pipeline = pipeline.New(
		func() (llm.Provider, error) { return llm.NewProvider(a.state.config) },
		pipeline.WithLogger(log),
		pipeline.WithGuard(guard),
	)
	s.pipeline.SetProgressCallback(func(p pipeline.Progress) {
		select {
		case s.progressCh <- p:
		default:
		}
	})
	return a
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink, a.waitForProgress())
	}

	// Test provider connection
	return tea.Batch(
		tea.WindowSize(),
		a.state.text.Focus(),
		textarea.Blink,
		a.testProvider(),
		a.waitForProgress(),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	s := a.state

	switch msg := msg.(type) {
	case tea.KeyMsg:
		step, v := s.machine.Step(), a.view
		if cmd := a.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		// A key that moved the workflow or switched views is consumed.
		if s.machine.Step() != step || a.view != v {
			return a, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)

	case spinner.TickMsg:
		if !s.machine.Busy() {
			return a, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return a, cmd

	case progressMsg:
		p := pipeline.Progress(msg)
		s.progress = &p
		return a, a.waitForProgress()

	case analysisDoneMsg:
		return a, a.finishAnalysis(msg)

	case outlineDoneMsg:
		return a, a.finishOutline(msg)

	case renderDoneMsg:
		return a, a.finishRender(msg)

	case savedMsg:
		a.finishSave(msg)
		return a, nil

	case setupCompleteMsg:
		s.needsSetup = false
		a.view = viewMain
		return a, tea.Batch(a.testProvider(), s.text.Focus())

	case setupErrorMsg:
		s.providerError = msg.error
		a.view = viewMain
		return a, nil

	case configSavedMsg:
		if msg.error != nil {
			s.providerError = msg.error
			return a, nil
		}
		return a, a.testProvider()

	case providerReadyMsg:
		s.providerReady = true
		s.providerError = nil
		return a, nil

	case providerErrorMsg:
		s.providerReady = false
		s.providerError = msg.error
		return a, nil
	}

	// Update inputs based on view
	switch {
	case a.view == viewSetup && s.setupStep == 1,
		a.view == viewSettings && s.settingsMode == "apikey":
		var cmd tea.Cmd
		s.apiKeyInput, cmd = s.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewMain && s.machine.Step() == workflow.StepInput:
		var cmd tea.Cmd
		s.text, cmd = s.text.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewMain && s.machine.Step() == workflow.StepReview:
		var cmd tea.Cmd
		s.outlineView, cmd = s.outlineView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) resize(w, h int) {
	a.width = w
	a.height = h
	a.state.text.SetWidth(min(80, w-6))
	a.state.text.SetHeight(max(5, min(16, h-16)))
	a.state.outlineView.Width = min(80, w-6)
	a.state.outlineView.Height = max(5, h-14)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return tea.Quit
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewHelp:
		if key.Matches(msg, keys.Quit, keys.Help) {
			a.view = viewMain
		}
		return nil
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewStyles:
		return a.handleStylesKey(msg)
	default:
		return a.handleMainKey(msg)
	}
}

func (a *App) handleMainKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	m := s.machine

	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Help):
		a.view = viewHelp
		return nil
	case key.Matches(msg, keys.Settings) && !m.Busy():
		a.view = viewSettings
		s.settingsMode = ""
		return nil
	}

	if m.Busy() {
		return nil
	}

	switch m.Step() {
	case workflow.StepInput:
		switch {
		case key.Matches(msg, keys.Submit):
			return a.submit()
		case key.Matches(msg, keys.Styles):
			a.openStylePicker()
		}

	case workflow.StepAnalysisReview:
		switch {
		case key.Matches(msg, keys.Enter):
			if a.transition("confirm", m.Confirm()) {
				return a.startCall(a.outlineCmd())
			}
		case key.Matches(msg, keys.Back):
			if a.transition("back", m.Back()) {
				return s.text.Focus()
			}
		case key.Matches(msg, keys.Styles):
			a.openStylePicker()
		}

	case workflow.StepReview:
		switch {
		case key.Matches(msg, keys.Enter):
			if a.transition("render", m.Render()) {
				s.savedPath, s.mindmapPath, s.saveErr = "", "", nil
				return a.startCall(a.renderCmd())
			}
		case key.Matches(msg, keys.Regenerate):
			if a.transition("regenerate", m.Regenerate()) {
				return a.startCall(a.outlineCmd())
			}
		case key.Matches(msg, keys.Back):
			a.transition("back", m.Back())
		case key.Matches(msg, keys.Styles):
			a.openStylePicker()
		}

	case workflow.StepPPTGenerating:
		switch {
		case key.Matches(msg, keys.Retry) && m.Err() != nil:
			if a.transition("retry", m.Retry()) {
				return a.startCall(a.renderCmd())
			}
		case key.Matches(msg, keys.Back):
			a.transition("back to review", m.BackToReview())
		case key.Matches(msg, keys.Mindmap) && m.Artifact() != nil:
			return a.saveMindmapCmd()
		case key.Matches(msg, keys.Reset):
			return a.reset()
		}
	}

	return nil
}

func (a *App) submit() tea.Cmd {
	s := a.state
	text := strings.TrimSpace(s.text.Value())
	if err := s.machine.Submit(text, s.styleID); err != nil {
		a.log.Debug("input rejected", "error", err, "text_chars", pipeline.RuneLen(text))
		return nil
	}
	s.text.Blur()
	a.log.Info("workflow submitted", "style", s.styleID, "text_chars", pipeline.RuneLen(text))
	return a.startCall(a.analyzeCmd())
}

// transition logs a rejected workflow action and reports whether it was
// accepted.
func (a *App) transition(action string, err error) bool {
	if err != nil {
		a.log.Debug("workflow transition rejected", "action", action, "error", err)
		return false
	}
	return true
}

func (a *App) startCall(cmd tea.Cmd) tea.Cmd {
	a.state.progress = nil
	return tea.Batch(cmd, a.state.spinner.Tick)
}

func (a *App) finishAnalysis(msg analysisDoneMsg) tea.Cmd {
	m := a.state.machine
	if msg.err != nil {
		a.transition("analysis failed", m.AnalysisFailed(msg.err))
		return a.state.text.Focus()
	}
	a.transition("analysis succeeded", m.AnalysisSucceeded(msg.res))
	return nil
}

func (a *App) finishOutline(msg outlineDoneMsg) tea.Cmd {
	m := a.state.machine
	if msg.err != nil {
		a.transition("outline failed", m.OutlineFailed(msg.err))
		return nil
	}
	if a.transition("outline succeeded", m.OutlineSucceeded(msg.out)) {
		a.state.outlineView.SetContent(a.renderOutlineTree(msg.out.Outline))
		a.state.outlineView.GotoTop()
	}
	return nil
}

func (a *App) finishRender(msg renderDoneMsg) tea.Cmd {
	m := a.state.machine
	if msg.err != nil {
		a.transition("render failed", m.RenderFailed(msg.err))
		return nil
	}
	if a.transition("render succeeded", m.RenderSucceeded(msg.art)) {
		return a.saveArtifactCmd(msg.art)
	}
	return nil
}

func (a *App) finishSave(msg savedMsg) {
	s := a.state
	if msg.err != nil {
		a.log.Error("save failed", "kind", msg.kind, "error", msg.err)
		s.saveErr = msg.err
		return
	}
	a.log.Info("file saved", "kind", msg.kind, "path", msg.path)
	switch msg.kind {
	case saveDeck:
		s.savedPath = msg.path
	case saveMindmap:
		s.mindmapPath = msg.path
	}
}

func (a *App) reset() tea.Cmd {
	s := a.state
	if !a.transition("reset", s.machine.Reset()) {
		return nil
	}
	s.text.Reset()
	s.source = nil
	s.progress = nil
	s.savedPath, s.mindmapPath, s.saveErr = "", "", nil
	return s.text.Focus()
}

func (a *App) openStylePicker() {
	s := a.state
	current := s.styleID
	if s.machine.Step() != workflow.StepInput {
		current = s.machine.Style()
	}
	for i, id := range style.IDs() {
		if id == current {
			s.styleCursor = i
		}
	}
	s.pickerFrom = a.view
	s.text.Blur()
	a.view = viewStyles
}

func (a *App) handleStylesKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	ids := style.IDs()

	switch {
	case key.Matches(msg, keys.Quit):
		a.view = s.pickerFrom
	case key.Matches(msg, keys.Up):
		if s.styleCursor > 0 {
			s.styleCursor--
		}
	case key.Matches(msg, keys.Down):
		if s.styleCursor < len(ids)-1 {
			s.styleCursor++
		}
	case key.Matches(msg, keys.Enter):
		id := ids[s.styleCursor]
		if s.machine.Step() == workflow.StepInput {
			s.styleID = id
		} else {
			a.transition("set style", s.machine.SetStyle(id))
		}
		a.log.Debug("style selected", "style", id)
		a.view = s.pickerFrom
	}

	if a.view == viewMain && s.machine.Step() == workflow.StepInput {
		return s.text.Focus()
	}
	return nil
}

func (a *App) handleSetupKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state

	if key.Matches(msg, keys.Quit) {
		if s.setupStep == 1 {
			// Go back to provider selection
			s.setupStep = 0
			s.apiKeyInput.Reset()
			return nil
		}
		a.quitting = true
		return tea.Quit
	}

	switch s.setupStep {
	case 0: // Provider selection
		switch {
		case key.Matches(msg, keys.Up):
			if s.selectedProvider > 0 {
				s.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if s.selectedProvider < len(config.Providers)-1 {
				s.selectedProvider++
			}
		case key.Matches(msg, keys.Enter):
			provider := config.Providers[s.selectedProvider]
			s.config.Provider = provider.ID
			s.config.Model = provider.DefaultModel

			if provider.NeedsAPIKey {
				s.setupStep = 1
				return s.apiKeyInput.Focus()
			}
			return a.finishSetup()
		}

	case 1: // API key entry
		if key.Matches(msg, keys.Enter) {
			s.config.APIKey = strings.TrimSpace(s.apiKeyInput.Value())
			s.apiKeyInput.Reset()
			return a.finishSetup()
		}
	}

	return nil
}

func (a *App) finishSetup() tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	cfg := s.config

	switch s.settingsMode {
	case "provider":
		switch {
		case key.Matches(msg, keys.Quit):
			s.settingsMode = ""
		case key.Matches(msg, keys.Up):
			if s.settingsSelected > 0 {
				s.settingsSelected--
			}
		case key.Matches(msg, keys.Down):
			if s.settingsSelected < len(config.Providers)-1 {
				s.settingsSelected++
			}
		case key.Matches(msg, keys.Enter):
			p := config.Providers[s.settingsSelected]
			cfg.Provider = p.ID
			cfg.Model = p.DefaultModel
			s.settingsMode = ""
			return a.saveConfig()
		}

	case "model":
		provider := config.GetProvider(cfg.Provider)
		switch {
		case key.Matches(msg, keys.Quit):
			s.settingsMode = ""
		case key.Matches(msg, keys.Up):
			if s.settingsSelected > 0 {
				s.settingsSelected--
			}
		case key.Matches(msg, keys.Down):
			if provider != nil && s.settingsSelected < len(provider.Models)-1 {
				s.settingsSelected++
			}
		case key.Matches(msg, keys.Enter):
			if provider != nil && s.settingsSelected < len(provider.Models) {
				cfg.Model = provider.Models[s.settingsSelected]
			}
			s.settingsMode = ""
			return a.saveConfig()
		}

	case "apikey":
		switch {
		case key.Matches(msg, keys.Quit):
			s.settingsMode = ""
			s.apiKeyInput.Reset()
		case key.Matches(msg, keys.Enter):
			cfg.APIKey = strings.TrimSpace(s.apiKeyInput.Value())
			s.apiKeyInput.Reset()
			s.settingsMode = ""
			return a.saveConfig()
		}

	default:
		switch msg.String() {
		case "esc":
			a.view = viewMain
			if s.machine.Step() == workflow.StepInput {
				return s.text.Focus()
			}
		case "p":
			s.settingsMode = "provider"
			s.settingsSelected = 0
			for i, p := range config.Providers {
				if p.ID == cfg.Provider {
					s.settingsSelected = i
				}
			}
		case "m":
			s.settingsMode = "model"
			s.settingsSelected = 0
			if provider := config.GetProvider(cfg.Provider); provider != nil {
				for i, model := range provider.Models {
					if model == cfg.Model {
						s.settingsSelected = i
					}
				}
			}
		case "k":
			s.settingsMode = "apikey"
			return s.apiKeyInput.Focus()
		case "r":
			s.needsSetup = true
			s.setupStep = 0
			s.selectedProvider = 0
			a.view = viewSetup
		}
	}

	return nil
}

func (a *App) saveConfig() tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		return configSavedMsg{cfg.Save()}
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewStyles:
		return a.renderStyles()
	}

	m := a.state.machine
	switch m.Step() {
	case workflow.StepAnalyzing, workflow.StepGenerating:
		return a.renderProcessing()
	case workflow.StepPPTGenerating:
		if m.Busy() {
			return a.renderProcessing()
		}
		return a.renderComplete()
	case workflow.StepAnalysisReview:
		return a.renderAnalysis()
	case workflow.StepReview:
		return a.renderReview()
	default:
		return a.renderInput()
	}
}
