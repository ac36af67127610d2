package document

import (
	"archive/zip"
	"bytes"
	"context"
	"embed"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/sant0-9/mindppt/internal/recommend"
	"github.com/sant0-9/mindppt/internal/slides"
	"github.com/sant0-9/mindppt/internal/style"
)

//go:embed templates/*.xml
var templateFS embed.FS

var pptxTemplates = template.Must(template.New("pptx").Funcs(template.FuncMap{
	"xml":  xmlEscape,
	"flag": flag,
}).ParseFS(templateFS, "templates/*.xml"))

// 16:9 widescreen, 13.333in x 7.5in.
const (
	emuPerInch  = 914400
	slideWidth  = 12192000
	slideHeight = 6858000
)

const white = "FFFFFF"

// PPTX writes decks as Office Open XML presentations.
type PPTX struct {
	Author  string
	Subject string
	now     func() time.Time
}

func NewPPTX() *PPTX {
	return &PPTX{
		Author:  "Mind in PPT",
		Subject: "AI生成的演示文稿",
		now:     time.Now,
	}
}

func (p *PPTX) ContentType() string { return ContentTypePPTX }

func (p *PPTX) Extension() string { return ".pptx" }

type palette struct {
	Primary       string
	Secondary     string
	Accent        string
	Background    string
	Surface       string
	Text          string
	TextSecondary string
	Muted         string
	Border        string
}

func newPalette(c style.Colors) palette {
	return palette{
		Primary:       hexColor(c.Primary),
		Secondary:     hexColor(c.Secondary),
		Accent:        hexColor(c.Accent),
		Background:    hexColor(c.Surface),
		Surface:       hexColor(c.Surface),
		Text:          hexColor(c.Text.Primary),
		TextSecondary: hexColor(c.Text.Secondary),
		Muted:         hexColor(c.Text.Muted),
		Border:        hexColor(c.Border),
	}
}

type packageView struct {
	Title       string
	Subject     string
	Author      string
	Created     string
	ThemeName   string
	HeadingFont string
	BodyFont    string
	Width       int
	Height      int
	Palette     palette
	Slides      []slideRef
}

type slideRef struct {
	Number int
	SldID  int
	RelID  string
}

type slideView struct {
	Background string
	Shapes     []shape
}

type shape struct {
	ID         int
	Name       string
	X, Y, W, H int
	Line       string
	Anchor     string
	Paragraphs []paragraph
}

type paragraph struct {
	Text       string
	Size       int
	Color      string
	Font       string
	Align      string
	Bold       bool
	Italic     bool
	Bullet     bool
	SpaceAfter int
}

// Render writes the deck as a zip package. Part order follows the
// conventional layout with [Content_Types].xml first.
func (p *PPTX) Render(ctx context.Context, deck Deck) ([]byte, error) {
	if len(deck.Slides) == 0 {
		return nil, errors.New("deck has no slides")
	}

	view := packageView{
		Title:       deck.Title,
		Subject:     p.Subject,
		Author:      p.Author,
		Created:     p.now().UTC().Format(time.RFC3339),
		ThemeName:   deck.Style.Name,
		HeadingFont: deck.Style.Fonts.HeadingFace(),
		BodyFont:    deck.Style.Fonts.BodyFace(),
		Width:       slideWidth,
		Height:      slideHeight,
		Palette:     newPalette(deck.Style.Colors),
	}
	for i := range deck.Slides {
		view.Slides = append(view.Slides, slideRef{
			Number: i + 1,
			SldID:  256 + i,
			RelID:  fmt.Sprintf("rId%d", i+3),
		})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		tmpl string
	}{
		{"[Content_Types].xml", "content_types.xml"},
		{"_rels/.rels", "root_rels.xml"},
		{"docProps/app.xml", "app.xml"},
		{"docProps/core.xml", "core.xml"},
		{"ppt/presentation.xml", "presentation.xml"},
		{"ppt/_rels/presentation.xml.rels", "presentation_rels.xml"},
		{"ppt/theme/theme1.xml", "theme.xml"},
		{"ppt/slideMasters/slideMaster1.xml", "master.xml"},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", "master_rels.xml"},
		{"ppt/slideLayouts/slideLayout1.xml", "layout.xml"},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", "layout_rels.xml"},
	}
	for _, part := range parts {
		if err := writePart(zw, part.name, part.tmpl, view); err != nil {
			return nil, err
		}
	}

	for i, s := range deck.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := i + 1
		sv := layoutSlide(s, view.Palette, view.HeadingFont, view.BodyFont)
		if err := writePart(zw, fmt.Sprintf("ppt/slides/slide%d.xml", n), "slide.xml", sv); err != nil {
			return nil, err
		}
		if err := writePart(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), "slide_rels.xml", nil); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}

func writePart(zw *zip.Writer, name, tmpl string, data any) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := pptxTemplates.ExecuteTemplate(w, tmpl, data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func inch(v float64) int {
	return int(v * emuPerInch)
}

type shapeList struct {
	shapes []shape
}

func (l *shapeList) text(name string, x, y, w, h float64, anchor string, paras ...paragraph) {
	if len(paras) == 0 {
		return
	}
	l.shapes = append(l.shapes, shape{
		ID:         len(l.shapes) + 2,
		Name:       name,
		X:          inch(x),
		Y:          inch(y),
		W:          inch(w),
		H:          inch(h),
		Anchor:     anchor,
		Paragraphs: paras,
	})
}

func (l *shapeList) line(name string, x, y, w float64, color string) {
	l.shapes = append(l.shapes, shape{
		ID:   len(l.shapes) + 2,
		Name: name,
		X:    inch(x),
		Y:    inch(y),
		W:    inch(w),
		Line: color,
	})
}

// iconHint names the suggested icon and, when known, its category. The
// plain "list" fallback gets no hint.
func iconHint(icon string) string {
	if icon == "" || icon == "list" {
		return ""
	}
	if cat := recommend.IconCategory(icon); cat != "" {
		return fmt.Sprintf("📌 建议图标: %s (%s)", icon, cat)
	}
	return "📌 建议图标: " + icon
}

func layoutSlide(s slides.Slide, p palette, headingFont, bodyFont string) slideView {
	var view slideView
	l := &shapeList{}
	footer := p.TextSecondary

	switch s.Layout {
	case recommend.LayoutTitle:
		l.text("Title", 1.33, 2.5, 10.67, 1.5, "ctr", paragraph{
			Text: s.Title, Size: 4400, Bold: true, Color: p.Primary, Font: headingFont, Align: "ctr",
		})
		if len(s.Content) > 0 {
			l.text("Subtitle", 1.33, 4.1, 10.67, 0.8, "t", paragraph{
				Text: strings.Join(s.Content, " | "), Size: 2000, Color: p.TextSecondary, Font: bodyFont, Align: "ctr",
			})
		}

	case recommend.LayoutSection:
		view.Background = p.Primary
		footer = white
		l.text("Title", 0.67, 2.6, 12, 1.5, "b", paragraph{
			Text: s.Title, Size: 4000, Bold: true, Color: white, Font: headingFont, Align: "l",
		})
		if len(s.Content) > 0 {
			preview := s.Content
			if len(preview) > 3 {
				preview = preview[:3]
			}
			l.text("Summary", 0.67, 4.2, 12, 0.8, "t", paragraph{
				Text: strings.Join(preview, " | "), Size: 1600, Color: white, Font: bodyFont, Align: "l",
			})
		}

	default:
		l.text("Title", 0.67, 0.5, 12, 1, "b", paragraph{
			Text: s.Title, Size: 3200, Bold: true, Color: p.Primary, Font: headingFont, Align: "l",
		})
		l.line("Rule", 0.67, 1.6, 12, p.Accent)

		bullet := func(text string) paragraph {
			return paragraph{Text: text, Size: 1800, Color: p.Text, Font: bodyFont, Align: "l", Bullet: true, SpaceAfter: 1200}
		}
		if s.Layout == recommend.LayoutTwoColumn && len(s.Content) > 1 {
			half := (len(s.Content) + 1) / 2
			l.text("Left", 0.67, 2, 5.8, 4.2, "t", mapParagraphs(s.Content[:half], bullet)...)
			l.text("Right", 6.87, 2, 5.8, 4.2, "t", mapParagraphs(s.Content[half:], bullet)...)
		} else {
			l.text("Body", 0.67, 2, 12, 4.2, "t", mapParagraphs(s.Content, bullet)...)
		}

		var tips []paragraph
		tip := func(text string) paragraph {
			return paragraph{Text: text, Size: 1000, Italic: true, Color: p.TextSecondary, Font: bodyFont, Align: "l"}
		}
		if s.VisualCue != "" {
			tips = append(tips, tip("💡 "+s.VisualCue))
		}
		if len(s.SuggestedImages) > 0 {
			tips = append(tips, tip("🖼️ 建议图片: "+strings.Join(s.SuggestedImages, "、")))
		}
		l.text("Tips", 0.67, 6.3, 12, 0.6, "t", tips...)
	}

	l.text("Slide Number", 12.33, 7.0, 0.7, 0.35, "ctr", paragraph{
		Text: fmt.Sprint(s.SlideNumber), Size: 1100, Color: footer, Font: bodyFont, Align: "r",
	})
	if hint := iconHint(s.SuggestedIcon); hint != "" {
		l.text("Icon Hint", 0.67, 7.0, 4, 0.35, "ctr", paragraph{
			Text: hint, Size: 900, Color: footer, Font: bodyFont, Align: "l",
		})
	}

	view.Shapes = l.shapes
	return view
}

func mapParagraphs(items []string, fn func(string) paragraph) []paragraph {
	out := make([]paragraph, len(items))
	for i, it := range items {
		out[i] = fn(it)
	}
	return out
}

func hexColor(c string) string {
	c = strings.TrimPrefix(strings.TrimSpace(c), "#")
	if len(c) == 3 {
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	}
	if len(c) != 6 {
		return "000000"
	}
	for _, r := range c {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "000000"
		}
	}
	return strings.ToUpper(c)
}

func xmlEscape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
