// Package slides flattens an enriched outline into render-ready slide
// descriptors.
package slides

import (
	"github.com/sant0-9/mindppt/internal/outline"
	"github.com/sant0-9/mindppt/internal/recommend"
	"github.com/sant0-9/mindppt/internal/style"
)

const (
	titleIcon   = "presentation"
	sectionIcon = "file-text"
	contentIcon = "list"
)

// TitleTagline is the fixed content of the leading title slide.
var TitleTagline = []string{"基于AI智能生成", "Mind in PPT"}

// Slide is one output slide.
type Slide struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Content         []string         `json:"content"`
	Layout          recommend.Layout `json:"layout"`
	SlideNumber     int              `json:"slideNumber"`
	SuggestedIcon   string           `json:"suggestedIcon"`
	VisualCue       string           `json:"visualCue,omitempty"`
	SuggestedImages []string         `json:"suggestedImages,omitempty"`
	ColorScheme     string           `json:"colorScheme"`
}

// Build emits a title slide followed by one slide per qualifying node in
// pre-order. Level-1 nodes become section slides; level-2 nodes and deeper
// nodes with content become content slides; anything else only contributes
// its children. Slide numbers run 1..N without gaps.
func Build(o *outline.Outline, st style.Config) []Slide {
	b := &builder{style: st}
	b.add(Slide{
		ID:            "slide-0",
		Title:         o.Title,
		Content:       clone(TitleTagline),
		Layout:        recommend.LayoutTitle,
		SuggestedIcon: titleIcon,
		ColorScheme:   st.Colors.Primary,
	})
	for _, n := range o.Items {
		b.visit(n)
	}
	return b.slides
}

type builder struct {
	style  style.Config
	slides []Slide
}

func (b *builder) add(s Slide) {
	s.SlideNumber = len(b.slides) + 1
	b.slides = append(b.slides, s)
}

func (b *builder) visit(n *outline.Node) {
	if n == nil {
		return
	}
	switch {
	case n.Level == 1:
		b.add(Slide{
			ID:            "slide-" + n.ID,
			Title:         n.Title,
			Content:       clone(n.Content),
			Layout:        recommend.LayoutSection,
			SuggestedIcon: orDefault(n.SuggestedIcon, sectionIcon),
			VisualCue:     n.VisualCue,
			ColorScheme:   b.style.Colors.Primary,
		})
	case n.Level == 2 || len(n.Content) > 0:
		layout := n.Layout
		if layout == "" {
			layout = recommend.LayoutContent
		}
		b.add(Slide{
			ID:              "slide-" + n.ID + "-content",
			Title:           n.Title,
			Content:         clone(n.Content),
			Layout:          layout,
			SuggestedIcon:   orDefault(n.SuggestedIcon, contentIcon),
			VisualCue:       n.VisualCue,
			SuggestedImages: clone(n.SuggestedImages),
			ColorScheme:     b.style.Colors.Secondary,
		})
	}
	for _, c := range n.Children {
		b.visit(c)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func clone(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
