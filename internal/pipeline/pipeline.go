// Package pipeline runs the three model-backed operations: text analysis,
// outline generation and document rendering.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sant0-9/mindppt/internal/apierr"
	"github.com/sant0-9/mindppt/internal/document"
	"github.com/sant0-9/mindppt/internal/llm"
	"github.com/sant0-9/mindppt/internal/logger"
	"github.com/sant0-9/mindppt/internal/outline"
	"github.com/sant0-9/mindppt/internal/prompts"
	"github.com/sant0-9/mindppt/internal/slides"
	"github.com/sant0-9/mindppt/internal/style"
)

// Stage represents a pipeline stage
type Stage int

const (
	StageAnalyzing Stage = iota
	StageOutlining
	StageEnriching
	StageRendering
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageAnalyzing:
		return "Analyzing"
	case StageOutlining:
		return "Outlining"
	case StageEnriching:
		return "Enriching"
	case StageRendering:
		return "Rendering"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Progress represents pipeline progress
type Progress struct {
	RunID   string
	Stage   Stage
	Message string
}

// Fallback messages for errors no classifier recognizes.
const (
	FallbackAnalyze  = "分析文本时出错，请重试"
	FallbackOutline  = "生成大纲时出错，请检查文本内容或稍后重试"
	FallbackDocument = "生成PPT时出错，请检查大纲数据或稍后重试"
)

// ProviderFactory builds the provider for one call. It runs per call so a
// missing credential surfaces at first use rather than at startup.
type ProviderFactory func() (llm.Provider, error)

// Observer is told about every completed model call.
type Observer func(op string, d time.Duration, err error)

// Pipeline processes text into presentations
type Pipeline struct {
	newProvider ProviderFactory
	guard       *llm.Guard
	renderer    document.Renderer
	log         *logger.Logger
	observer    Observer
	now         func() time.Time
	onProgress  func(Progress)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

func WithLogger(l *logger.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithGuard routes every model call through a shared circuit breaker.
func WithGuard(g *llm.Guard) Option {
	return func(p *Pipeline) { p.guard = g }
}

func WithRenderer(r document.Renderer) Option {
	return func(p *Pipeline) { p.renderer = r }
}

func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a pipeline. Without options it logs nowhere, renders pptx and
// calls the model unguarded.
func New(factory ProviderFactory, opts ...Option) *Pipeline {
	p := &Pipeline{
		newProvider: factory,
		renderer:    document.NewPPTX(),
		log:         logger.Nop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetProgressCallback sets the progress callback
func (p *Pipeline) SetProgressCallback(fn func(Progress)) {
	p.onProgress = fn
}

func (p *Pipeline) progress(runID string, stage Stage, msg string) {
	if p.onProgress != nil {
		p.onProgress(Progress{RunID: runID, Stage: stage, Message: msg})
	}
}

// AnalyzeRequest asks for a structured reading of Text. Style defaults to
// style.Default.
type AnalyzeRequest struct {
	Text  string
	Style string
}

// Analyze validates the text bounds, asks the model for an analysis and
// attaches presentation suggestions for the requested style.
func (p *Pipeline) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalysisResult, error) {
	runID, log := p.run("analyze")

	if err := ValidateText(req.Text); err != nil {
		return nil, p.fail(log, err, FallbackAnalyze)
	}
	st, err := resolveStyle(req.Style)
	if err != nil {
		return nil, p.fail(log, err, FallbackAnalyze)
	}

	p.progress(runID, StageAnalyzing, "正在分析文本内容...")
	log.Info("analysis started", "style", st.ID, "text_chars", RuneLen(req.Text))

	text := TruncateRunes(req.Text, MaxAnalyzeRunes)
	var raw rawAnalysis
	if err := p.complete(ctx, log, analyzeCall, prompts.AnalysisSystem(), prompts.AnalysisUser(text), &raw); err != nil {
		return nil, p.fail(log, err, FallbackAnalyze)
	}

	res := raw.result(st.ID)
	log.Info("analysis finished",
		"key_points", len(res.KeyPoints),
		"sections", len(res.MainStructure.SuggestedSections),
		"complexity", res.MainStructure.Complexity)
	p.progress(runID, StageDone, "分析完成")
	return res, nil
}

// OutlineRequest asks for an outline of Text in the given style, optionally
// steered by an earlier analysis.
type OutlineRequest struct {
	Text     string
	Style    string
	Analysis *AnalysisResult
}

// GenerateOutline asks the model for an outline, repairs and validates it,
// then enriches every node and renders the mind-map Markdown.
func (p *Pipeline) GenerateOutline(ctx context.Context, req OutlineRequest) (*outline.WithMindmap, error) {
	runID, log := p.run("outline")

	if strings.TrimSpace(req.Text) == "" {
		return nil, p.fail(log, apierr.Validation(MsgTextEmpty), FallbackOutline)
	}
	st, err := resolveStyle(req.Style)
	if err != nil {
		return nil, p.fail(log, err, FallbackOutline)
	}

	p.progress(runID, StageOutlining, "正在生成大纲...")
	log.Info("outline started",
		"style", st.ID,
		"text_chars", RuneLen(req.Text),
		"with_analysis", req.Analysis != nil)

	input := prompts.BuildOutlineInput(req.Text, req.Analysis.Context(), st)
	input = TruncateRunes(input, MaxOutlineRunes)

	var o outline.Outline
	if err := p.complete(ctx, log, outlineCall, prompts.OutlineSystem(), prompts.OutlineUser(input), &o); err != nil {
		return nil, p.fail(log, err, FallbackOutline)
	}
	o.Normalize()
	if err := o.Validate(); err != nil {
		return nil, p.fail(log, err, FallbackOutline)
	}
	o.Metadata = outline.Metadata{
		CreatedAt:        p.now(),
		SourceTextLength: RuneLen(req.Text),
	}

	p.progress(runID, StageEnriching, "正在添加智能推荐...")
	enriched := o.Enriched()
	out := &outline.WithMindmap{
		Outline:         enriched,
		MindmapMarkdown: outline.Markdown(enriched),
	}

	log.Info("outline finished", "title", enriched.Title, "nodes", enriched.Count())
	p.progress(runID, StageDone, "大纲生成完成")
	return out, nil
}

// DocumentRequest asks for Outline rendered in the given style.
type DocumentRequest struct {
	Outline *outline.Outline
	Style   string
}

// GenerateDocument turns an outline into slides and renders them.
func (p *Pipeline) GenerateDocument(ctx context.Context, req DocumentRequest) (*document.Artifact, error) {
	runID, log := p.run("document")

	if req.Outline == nil {
		return nil, p.fail(log, apierr.Validation(MsgOutlineAbsent), FallbackDocument)
	}
	o := req.Outline.Clone()
	o.Normalize()
	if err := o.Validate(); err != nil {
		return nil, p.fail(log, apierr.New(apierr.KindValidation, MsgOutlineAbsent, err), FallbackDocument)
	}
	st, err := resolveStyle(req.Style)
	if err != nil {
		return nil, p.fail(log, err, FallbackDocument)
	}

	p.progress(runID, StageRendering, "正在生成PPT...")
	start := time.Now()
	deck := document.Deck{
		Title:  o.Title,
		Style:  st,
		Slides: slides.Build(o, st),
	}
	art, err := document.Render(ctx, p.renderer, deck)
	if err != nil {
		return nil, p.fail(log, err, FallbackDocument)
	}

	log.Info("document rendered",
		"filename", art.Filename,
		"slides", art.SlideCount,
		"size", art.SizeHuman(),
		"duration", time.Since(start))
	p.progress(runID, StageDone, "PPT生成完成")
	return art, nil
}

func (p *Pipeline) run(op string) (string, *logger.Logger) {
	id := uuid.NewString()
	return id, p.log.With("op", op, "run_id", id)
}

// fail classifies err and logs it once. Validation problems are the
// caller's fault and only logged at debug.
func (p *Pipeline) fail(log *logger.Logger, err error, fallback string) error {
	ae := apierr.Classify(err, fallback)
	if ae.Kind == apierr.KindValidation {
		log.Debug("request rejected", "reason", ae.Message)
	} else {
		log.Error("operation failed", "kind", ae.Kind.String(), "error", err)
	}
	return ae
}

func resolveStyle(id string) (style.Config, error) {
	if strings.TrimSpace(id) == "" {
		id = style.Default
	}
	st, ok := style.Lookup(id)
	if !ok {
		return style.Config{}, apierr.Validation(fmt.Sprintf("不支持的演示风格: %s", id))
	}
	return st, nil
}
