// Package outline models the structured presentation plan and enriches it
// with recommendations.
package outline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sant0-9/mindppt/internal/apierr"
	"github.com/sant0-9/mindppt/internal/recommend"
)

// Node is one section of the outline. The enrichment fields are empty until
// Enrich runs.
type Node struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  []string `json:"content"`
	Level    int      `json:"level"`
	Children []*Node  `json:"children,omitempty"`

	SuggestedIcon   string           `json:"suggestedIcon,omitempty"`
	VisualCue       string           `json:"visualCue,omitempty"`
	Layout          recommend.Layout `json:"layout,omitempty"`
	SuggestedImages []string         `json:"suggestedImages,omitempty"`
}

// Metadata describes where an outline came from.
type Metadata struct {
	CreatedAt        time.Time `json:"createdAt"`
	SourceTextLength int       `json:"sourceTextLength"`
}

// Outline is the full presentation plan.
type Outline struct {
	Title    string   `json:"title"`
	Items    []*Node  `json:"items"`
	Metadata Metadata `json:"metadata"`
}

// WithMindmap pairs an enriched outline with its Markdown rendering.
type WithMindmap struct {
	Outline         *Outline `json:"outline"`
	MindmapMarkdown string   `json:"mindmapMarkdown"`
}

// Normalize fills the gaps model output commonly has: missing levels,
// missing ids and blank bullets. Values that are present are kept as given,
// so a wrong level or a repeated id is left for Validate to reject.
func (o *Outline) Normalize() {
	o.Title = strings.TrimSpace(o.Title)
	seen := make(map[string]bool)
	Walk(o.Items, func(n *Node, _ int) {
		if id := strings.TrimSpace(n.ID); id != "" {
			seen[id] = true
		}
	})
	normalizeNodes(o.Items, 0, "", seen)
}

func normalizeNodes(nodes []*Node, parentLevel int, prefix string, seen map[string]bool) {
	for i, n := range nodes {
		if n == nil {
			continue
		}
		n.Title = strings.TrimSpace(n.Title)
		if n.Level == 0 {
			n.Level = parentLevel + 1
		}
		pos := strconv.Itoa(i + 1)
		if prefix != "" {
			pos = prefix + "-" + pos
		}
		n.ID = strings.TrimSpace(n.ID)
		if n.ID == "" {
			n.ID = pos
			for k := 2; seen[n.ID]; k++ {
				n.ID = pos + "." + strconv.Itoa(k)
			}
			seen[n.ID] = true
		}
		content := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			if c = strings.TrimSpace(c); c != "" {
				content = append(content, c)
			}
		}
		n.Content = content
		normalizeNodes(n.Children, n.Level, pos, seen)
	}
}

// Clone returns a deep copy of the outline.
func (o *Outline) Clone() *Outline {
	if o == nil {
		return nil
	}
	return &Outline{
		Title:    o.Title,
		Items:    cloneNodes(o.Items),
		Metadata: o.Metadata,
	}
}

func cloneNodes(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		if n == nil {
			continue
		}
		c := *n
		c.Content = cloneStrings(n.Content)
		c.SuggestedImages = cloneStrings(n.SuggestedImages)
		c.Children = cloneNodes(n.Children)
		out[i] = &c
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

// Validate checks the structural invariants: a title, at least one item,
// titled nodes, unique ids and strictly increasing levels.
func (o *Outline) Validate() error {
	if o == nil {
		return invalid("outline is missing")
	}
	if strings.TrimSpace(o.Title) == "" {
		return invalid("outline has no title")
	}
	if len(o.Items) == 0 {
		return invalid("outline has no items")
	}
	seen := make(map[string]bool)
	return validateNodes(o.Items, 0, seen)
}

func validateNodes(nodes []*Node, parentLevel int, seen map[string]bool) error {
	for _, n := range nodes {
		if n == nil {
			return invalid("outline contains an empty node")
		}
		if strings.TrimSpace(n.Title) == "" {
			return invalid(fmt.Sprintf("node %q has no title", n.ID))
		}
		if n.Level < 1 || n.Level <= parentLevel {
			return invalid(fmt.Sprintf("node %q has level %d under level %d", n.ID, n.Level, parentLevel))
		}
		if n.ID == "" {
			return invalid(fmt.Sprintf("node %q has no id", n.Title))
		}
		if seen[n.ID] {
			return invalid(fmt.Sprintf("duplicate node id %q", n.ID))
		}
		seen[n.ID] = true
		if err := validateNodes(n.Children, n.Level, seen); err != nil {
			return err
		}
	}
	return nil
}

func invalid(detail string) error {
	return apierr.New(apierr.KindParse, apierr.MsgParse, fmt.Errorf("invalid outline structure: %s", detail))
}

// Count returns the number of nodes in the tree.
func (o *Outline) Count() int {
	return countNodes(o.Items)
}

func countNodes(nodes []*Node) int {
	n := 0
	for _, node := range nodes {
		n += 1 + countNodes(node.Children)
	}
	return n
}

// Walk visits every node depth-first, parents before children.
func Walk(nodes []*Node, fn func(n *Node, depth int)) {
	walk(nodes, 1, fn)
}

func walk(nodes []*Node, depth int, fn func(*Node, int)) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		fn(n, depth)
		walk(n.Children, depth+1, fn)
	}
}
