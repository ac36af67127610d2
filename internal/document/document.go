// Package document produces the downloadable deck and reads source text
// from files.
package document

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/sant0-9/mindppt/internal/slides"
	"github.com/sant0-9/mindppt/internal/style"
)

// ContentTypePPTX is the MIME type of a PowerPoint deck.
const ContentTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Deck is everything a renderer needs.
type Deck struct {
	Title  string
	Style  style.Config
	Slides []slides.Slide
}

// Renderer encodes a deck into a binary document.
type Renderer interface {
	Render(ctx context.Context, deck Deck) ([]byte, error)
	ContentType() string
	Extension() string
}

// Artifact is a rendered, named document.
type Artifact struct {
	Filename    string `json:"filename"`
	Data        []byte `json:"-"`
	ContentType string `json:"contentType"`
	SlideCount  int    `json:"slideCount"`
}

// Base64 returns the document body as standard base64.
func (a *Artifact) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}

// SizeHuman returns human-readable file size
func (a *Artifact) SizeHuman() string {
	bytes := len(a.Data)
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\x{4e00}-\x{9fa5}]`)
	underscores = regexp.MustCompile(`_+`)
)

// SanitizeTitle keeps ASCII letters, digits and CJK ideographs, replacing
// every other run of characters with a single underscore.
func SanitizeTitle(title string) string {
	s := unsafeChars.ReplaceAllString(title, "_")
	s = underscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Filename builds "<title>_<style name><ext>". A title with nothing left
// after sanitizing falls back to "presentation".
func Filename(title, styleName, ext string) string {
	clean := SanitizeTitle(title)
	if clean == "" {
		clean = "presentation"
	}
	return clean + "_" + styleName + ext
}

// Render runs r over the deck and names the result.
func Render(ctx context.Context, r Renderer, deck Deck) (*Artifact, error) {
	data, err := r.Render(ctx, deck)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", r.Extension(), err)
	}
	return &Artifact{
		Filename:    Filename(deck.Title, deck.Style.Name, r.Extension()),
		Data:        data,
		ContentType: r.ContentType(),
		SlideCount:  len(deck.Slides),
	}, nil
}
