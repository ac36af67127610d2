// Package style holds the fixed catalog of presentation styles.
package style

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Default is used when a request does not name a style.
const Default = "executive-report"

// Config is one named presentation preset.
type Config struct {
	ID            string   `yaml:"id" json:"id"`
	Category      string   `yaml:"category" json:"category"`
	Name          string   `yaml:"name" json:"name"`
	Description   string   `yaml:"description" json:"description"`
	Icon          string   `yaml:"icon" json:"icon"`
	Scene         string   `yaml:"scene" json:"scene"`
	Colors        Colors   `yaml:"colors" json:"colors"`
	MindmapColors []string `yaml:"mindmap_colors" json:"mindmapColors"`
	Fonts         Fonts    `yaml:"fonts" json:"fonts"`
	Prompt        Prompt   `yaml:"prompt" json:"aiPrompt"`
	UI            UI       `yaml:"ui" json:"ui"`
}

type Colors struct {
	Primary    string     `yaml:"primary" json:"primary"`
	Secondary  string     `yaml:"secondary" json:"secondary"`
	Accent     string     `yaml:"accent" json:"accent"`
	Background string     `yaml:"background" json:"background"`
	Surface    string     `yaml:"surface" json:"surface"`
	Text       TextColors `yaml:"text" json:"text"`
	Border     string     `yaml:"border" json:"border"`
}

type TextColors struct {
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
	Muted     string `yaml:"muted" json:"muted"`
}

type Fonts struct {
	Heading string `yaml:"heading" json:"heading"`
	Body    string `yaml:"body" json:"body"`
	Mono    string `yaml:"mono" json:"mono"`
}

// HeadingFace returns the first family of the heading font stack.
func (f Fonts) HeadingFace() string { return firstFamily(f.Heading) }

// BodyFace returns the first family of the body font stack.
func (f Fonts) BodyFace() string { return firstFamily(f.Body) }

func firstFamily(stack string) string {
	first, _, _ := strings.Cut(stack, ",")
	return strings.Trim(strings.TrimSpace(first), `'"`)
}

// Prompt carries the tone guidance handed to the outline model.
type Prompt struct {
	Tone      string `yaml:"tone" json:"tone"`
	Structure string `yaml:"structure" json:"structure"`
	Example   string `yaml:"example" json:"example"`
}

type UI struct {
	BorderRadius string `yaml:"border_radius" json:"borderRadius"`
	BorderWidth  string `yaml:"border_width" json:"borderWidth"`
	Shadow       string `yaml:"shadow" json:"shadow"`
	Spacing      string `yaml:"spacing" json:"spacing"`
}

// Category groups styles for selection menus.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Icon  string `yaml:"icon" json:"icon"`
}

// PromptSection renders the style block appended to outline prompts.
func (c Config) PromptSection() string {
	return fmt.Sprintf("\n\n【风格要求】\n- 语气风格：%s\n- 结构建议：%s\n- 参考示例：%s\n\n请按照以上风格要求生成内容。",
		c.Prompt.Tone, c.Prompt.Structure, c.Prompt.Example)
}

type catalog struct {
	Categories []Category `yaml:"categories"`
	Styles     []Config   `yaml:"styles"`
}

var (
	categories []Category
	ordered    []Config
	byID       map[string]int
)

func init() {
	var c catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		panic(fmt.Sprintf("style: parse catalog: %v", err))
	}
	categories = c.Categories
	ordered = c.Styles
	byID = make(map[string]int, len(ordered))
	for i, s := range ordered {
		if _, dup := byID[s.ID]; dup {
			panic(fmt.Sprintf("style: duplicate id %q", s.ID))
		}
		byID[s.ID] = i
	}
}

// Get returns the style with the given id. An unknown id is a programming
// error; callers validating user input should use Lookup.
func Get(id string) Config {
	c, ok := Lookup(id)
	if !ok {
		panic(fmt.Sprintf("style: unknown style %q", id))
	}
	return c
}

// Lookup returns the style with the given id, if any.
func Lookup(id string) (Config, bool) {
	i, ok := byID[id]
	if !ok {
		return Config{}, false
	}
	return clone(ordered[i]), true
}

// Valid reports whether id names a catalog style.
func Valid(id string) bool {
	_, ok := byID[id]
	return ok
}

// All returns every style in catalog order.
func All() []Config {
	out := make([]Config, len(ordered))
	for i, s := range ordered {
		out[i] = clone(s)
	}
	return out
}

// Categories returns the style categories in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ByCategory returns the styles of one category in catalog order.
func ByCategory(category string) []Config {
	var out []Config
	for _, s := range ordered {
		if s.Category == category {
			out = append(out, clone(s))
		}
	}
	return out
}

// IDs returns every style id in catalog order.
func IDs() []string {
	ids := make([]string, len(ordered))
	for i, s := range ordered {
		ids[i] = s.ID
	}
	return ids
}

func clone(c Config) Config {
	c.MindmapColors = append([]string(nil), c.MindmapColors...)
	return c
}
