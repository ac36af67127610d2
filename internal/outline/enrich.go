package outline

import (
	"strings"

	"github.com/sant0-9/mindppt/internal/recommend"
)

// Enrich returns a copy of nodes with recommendations attached to every
// node. Each node is classified on its own title and content only; the input
// is left untouched.
func Enrich(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = enrichNode(n)
	}
	return out
}

func enrichNode(n *Node) *Node {
	r := recommend.Recommend(n.Title, n.Content)
	content := make([]string, len(n.Content))
	copy(content, n.Content)
	return &Node{
		ID:              n.ID,
		Title:           n.Title,
		Content:         content,
		Level:           n.Level,
		Children:        Enrich(n.Children),
		SuggestedIcon:   r.Icon,
		VisualCue:       r.VisualCue,
		Layout:          r.Layout,
		SuggestedImages: r.SuggestedImages,
	}
}

// Enriched returns a copy of the outline with every node enriched.
func (o *Outline) Enriched() *Outline {
	return &Outline{
		Title:    o.Title,
		Items:    Enrich(o.Items),
		Metadata: o.Metadata,
	}
}

const maxHeading = 6

// Markdown renders the outline as a heading tree: the title is the only
// level-1 heading and a node of level L gets a level L+1 heading.
func Markdown(o *Outline) string {
	lines := []string{"# " + o.Title}
	Walk(o.Items, func(n *Node, _ int) {
		depth := n.Level + 1
		if depth > maxHeading {
			depth = maxHeading
		}
		lines = append(lines, strings.Repeat("#", depth)+" "+n.Title)
		for _, c := range n.Content {
			lines = append(lines, "- "+c)
		}
	})
	return strings.Join(lines, "\n")
}
