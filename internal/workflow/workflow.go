// Package workflow tracks which step of the input → analysis → outline →
// render sequence is active and which transitions are allowed from it.
package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sant0-9/mindppt/internal/apierr"
	"github.com/sant0-9/mindppt/internal/document"
	"github.com/sant0-9/mindppt/internal/outline"
	"github.com/sant0-9/mindppt/internal/pipeline"
	"github.com/sant0-9/mindppt/internal/style"
)

// Step is the active workflow step.
type Step string

const (
	StepInput          Step = "input"
	StepAnalyzing      Step = "analyzing"
	StepAnalysisReview Step = "analysisReview"
	StepGenerating     Step = "generating"
	StepReview         Step = "review"
	StepPPTGenerating  Step = "pptGenerating"
)

// Phase groups steps into the four stages shown in a progress indicator.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseAnalysis
	PhaseReview
	PhaseGenerate
)

// Phases lists every phase in display order.
var Phases = []Phase{PhaseInput, PhaseAnalysis, PhaseReview, PhaseGenerate}

func (p Phase) Label() string {
	switch p {
	case PhaseInput:
		return "输入"
	case PhaseAnalysis:
		return "分析"
	case PhaseReview:
		return "确认"
	case PhaseGenerate:
		return "生成"
	default:
		return ""
	}
}

var (
	// ErrInvalidTransition is returned for an action the current step does
	// not allow.
	ErrInvalidTransition = errors.New("workflow: invalid transition")
	// ErrBusy is returned for a user action while an external call is
	// outstanding.
	ErrBusy = errors.New("workflow: a call is already in flight")
)

// Machine is the workflow state. It is driven from a single event loop and
// is not safe for concurrent use.
type Machine struct {
	step     Step
	busy     bool
	text     string
	style    string
	analysis *pipeline.AnalysisResult
	outline  *outline.WithMindmap
	artifact *document.Artifact
	err      error
}

// New returns a machine at the input step with the default style selected.
func New() *Machine {
	return &Machine{step: StepInput, style: style.Default}
}

func (m *Machine) Step() Step                         { return m.step }
func (m *Machine) Busy() bool                         { return m.busy }
func (m *Machine) Text() string                       { return m.text }
func (m *Machine) Style() string                      { return m.style }
func (m *Machine) Analysis() *pipeline.AnalysisResult { return m.analysis }
func (m *Machine) Outline() *outline.WithMindmap      { return m.outline }
func (m *Machine) Artifact() *document.Artifact       { return m.artifact }

// Err is the error from the last failed call or rejected submission, or nil.
func (m *Machine) Err() error { return m.err }

// Phase maps the current step onto the progress indicator.
func (m *Machine) Phase() Phase {
	switch m.step {
	case StepAnalysisReview:
		return PhaseAnalysis
	case StepGenerating, StepReview:
		return PhaseReview
	case StepPPTGenerating:
		return PhaseGenerate
	default:
		return PhaseInput
	}
}

// AnalyzeRequest is the call to issue after a successful Submit.
func (m *Machine) AnalyzeRequest() pipeline.AnalyzeRequest {
	return pipeline.AnalyzeRequest{Text: m.text, Style: m.style}
}

// OutlineRequest is the call to issue after Confirm or Regenerate.
func (m *Machine) OutlineRequest() pipeline.OutlineRequest {
	return pipeline.OutlineRequest{Text: m.text, Style: m.style, Analysis: m.analysis}
}

// DocumentRequest is the call to issue after Render or Retry.
func (m *Machine) DocumentRequest() pipeline.DocumentRequest {
	req := pipeline.DocumentRequest{Style: m.style}
	if m.outline != nil {
		req.Outline = m.outline.Outline
	}
	return req
}

// Submit moves from input to analyzing. Text outside the accepted bounds or
// an unknown style keeps the machine at input with the error retained.
func (m *Machine) Submit(text, styleID string) error {
	if err := m.expect(StepInput); err != nil {
		return err
	}
	if strings.TrimSpace(styleID) == "" {
		styleID = style.Default
	}
	if !style.Valid(styleID) {
		m.err = apierr.Validation(fmt.Sprintf("不支持的演示风格: %s", styleID))
		return m.err
	}
	if err := pipeline.ValidateText(text); err != nil {
		m.err = err
		return err
	}
	m.text = text
	m.style = styleID
	m.analysis = nil
	m.outline = nil
	m.artifact = nil
	m.start(StepAnalyzing)
	return nil
}

func (m *Machine) AnalysisSucceeded(res *pipeline.AnalysisResult) error {
	if err := m.expectCall(StepAnalyzing); err != nil {
		return err
	}
	m.analysis = res
	m.finish(StepAnalysisReview, nil)
	return nil
}

// AnalysisFailed returns to input keeping err for display.
func (m *Machine) AnalysisFailed(err error) error {
	if e := m.expectCall(StepAnalyzing); e != nil {
		return e
	}
	m.finish(StepInput, err)
	return nil
}

// Confirm accepts the analysis and starts outline generation.
func (m *Machine) Confirm() error {
	if err := m.expect(StepAnalysisReview); err != nil {
		return err
	}
	m.start(StepGenerating)
	return nil
}

func (m *Machine) OutlineSucceeded(o *outline.WithMindmap) error {
	if err := m.expectCall(StepGenerating); err != nil {
		return err
	}
	m.outline = o
	m.finish(StepReview, nil)
	return nil
}

// OutlineFailed returns to the analysis review keeping err for display.
func (m *Machine) OutlineFailed(err error) error {
	if e := m.expectCall(StepGenerating); e != nil {
		return e
	}
	m.finish(StepAnalysisReview, err)
	return nil
}

// Back steps from analysisReview to input, or from review to analysisReview.
func (m *Machine) Back() error {
	if m.busy {
		return ErrBusy
	}
	switch m.step {
	case StepAnalysisReview:
		m.step = StepInput
	case StepReview:
		m.step = StepAnalysisReview
	default:
		return m.invalid("back")
	}
	m.err = nil
	return nil
}

// Regenerate discards the current outline and generates a new one.
func (m *Machine) Regenerate() error {
	if err := m.expect(StepReview); err != nil {
		return err
	}
	m.start(StepGenerating)
	return nil
}

// SetStyle changes the style used by later calls. Only allowed between calls
// once input has been submitted.
func (m *Machine) SetStyle(styleID string) error {
	if m.busy {
		return ErrBusy
	}
	if m.step != StepAnalysisReview && m.step != StepReview {
		return m.invalid("set style")
	}
	if !style.Valid(styleID) {
		return apierr.Validation(fmt.Sprintf("不支持的演示风格: %s", styleID))
	}
	m.style = styleID
	return nil
}

// Render starts document rendering from the reviewed outline.
func (m *Machine) Render() error {
	if err := m.expect(StepReview); err != nil {
		return err
	}
	m.artifact = nil
	m.start(StepPPTGenerating)
	return nil
}

// RenderSucceeded stays on pptGenerating with the artifact ready.
func (m *Machine) RenderSucceeded(a *document.Artifact) error {
	if err := m.expectCall(StepPPTGenerating); err != nil {
		return err
	}
	m.artifact = a
	m.finish(StepPPTGenerating, nil)
	return nil
}

// RenderFailed stays on pptGenerating with err shown and Retry available.
func (m *Machine) RenderFailed(err error) error {
	if e := m.expectCall(StepPPTGenerating); e != nil {
		return e
	}
	m.finish(StepPPTGenerating, err)
	return nil
}

// Retry re-issues the render after a failure.
func (m *Machine) Retry() error {
	if err := m.expect(StepPPTGenerating); err != nil {
		return err
	}
	if m.err == nil {
		return m.invalid("retry")
	}
	m.start(StepPPTGenerating)
	return nil
}

// BackToReview leaves the render step for the outline review.
func (m *Machine) BackToReview() error {
	if err := m.expect(StepPPTGenerating); err != nil {
		return err
	}
	m.step = StepReview
	m.artifact = nil
	m.err = nil
	return nil
}

// Reset discards everything and returns to input.
func (m *Machine) Reset() error {
	if m.busy {
		return ErrBusy
	}
	*m = Machine{step: StepInput, style: m.style}
	return nil
}

func (m *Machine) start(step Step) {
	m.step = step
	m.busy = true
	m.err = nil
}

func (m *Machine) finish(step Step, err error) {
	m.step = step
	m.busy = false
	m.err = err
}

// expect guards a user action.
func (m *Machine) expect(step Step) error {
	if m.busy {
		return ErrBusy
	}
	if m.step != step {
		return m.invalid("from " + string(step))
	}
	return nil
}

// expectCall guards a call completion.
func (m *Machine) expectCall(step Step) error {
	if !m.busy || m.step != step {
		return m.invalid("complete " + string(step))
	}
	return nil
}

func (m *Machine) invalid(action string) error {
	return fmt.Errorf("%w: %s while at %s", ErrInvalidTransition, action, m.step)
}
