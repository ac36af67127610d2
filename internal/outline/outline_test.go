package outline

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/mindppt/internal/apierr"
	"github.com/sant0-9/mindppt/internal/recommend"
)

func fixture() *Outline {
	return &Outline{
		Title: "产品发布计划",
		Items: []*Node{
			{
				ID: "1", Title: "市场数据分析", Level: 1,
				Content: []string{"用户增长趋势", "竞品对比"},
				Children: []*Node{
					{ID: "1-1", Title: "团队分工", Level: 2, Content: []string{"研发", "运营"}},
				},
			},
			{ID: "2", Title: "第二章 上线流程", Level: 1, Content: []string{"灰度发布"}},
		},
	}
}

func TestNormalize(t *testing.T) {
	o := &Outline{
		Title: "  标题  ",
		Items: []*Node{
			{Title: " 一 ", Content: []string{" a ", "", "  "}, Children: []*Node{
				{Title: "一.一"},
				{ID: "x", Title: "一.二", Level: 3},
			}},
			{ID: " 4 ", Title: "三", Level: 1},
			{Title: "四", Level: 1},
		},
	}
	o.Normalize()

	assert.Equal(t, "标题", o.Title)
	first := o.Items[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, 1, first.Level)
	assert.Equal(t, "一", first.Title)
	assert.Equal(t, []string{"a"}, first.Content)

	assert.Equal(t, "1-1", first.Children[0].ID)
	assert.Equal(t, 2, first.Children[0].Level, "missing level defaults to parent+1")
	assert.Equal(t, "x", first.Children[1].ID)
	assert.Equal(t, 3, first.Children[1].Level, "deeper level kept")

	assert.Equal(t, "4", o.Items[1].ID)
	assert.Equal(t, "4.2", o.Items[2].ID, "positional id colliding with an explicit one")

	require.NoError(t, o.Validate())
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	tests := []struct {
		name   string
		o      *Outline
		detail string
	}{
		{
			name: "child level equal to parent",
			o: &Outline{Title: "x", Items: []*Node{
				{Title: "a", Level: 1, Children: []*Node{{Title: "b", Level: 1}}},
			}},
			detail: "level 1 under level 1",
		},
		{
			name: "repeated id",
			o: &Outline{Title: "x", Items: []*Node{
				{ID: "a", Title: "一", Level: 1},
				{ID: "a", Title: "二", Level: 1},
			}},
			detail: `duplicate node id "a"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.o.Normalize()
			err := tt.o.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid outline structure")
			assert.Contains(t, err.Error(), tt.detail)
		})
	}
}

func TestNormalizeSkipsNilNodes(t *testing.T) {
	o := &Outline{Title: "t", Items: []*Node{nil, {Title: "a"}}}
	assert.NotPanics(t, o.Normalize)
	assert.Equal(t, "2", o.Items[1].ID)
	assert.Error(t, o.Validate())
}

func TestClone(t *testing.T) {
	o := fixture().Enriched()
	c := o.Clone()
	require.Equal(t, o, c)

	c.Title = "changed"
	c.Items[0].Content[0] = "changed"
	c.Items[0].Children[0].Level = 5
	c.Items[0].SuggestedImages[0] = "changed"

	assert.Equal(t, "产品发布计划", o.Title)
	assert.Equal(t, "用户增长趋势", o.Items[0].Content[0])
	assert.Equal(t, 2, o.Items[0].Children[0].Level)
	assert.NotEqual(t, "changed", o.Items[0].SuggestedImages[0])
	assert.Nil(t, (*Outline)(nil).Clone())
}

func TestNormalizeNilContent(t *testing.T) {
	o := &Outline{Title: "t", Items: []*Node{{ID: "1", Title: "a", Level: 1}}}
	o.Normalize()

	data, err := json.Marshal(o.Items[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"content":[]`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		o    *Outline
	}{
		{"nil", nil},
		{"no title", &Outline{Items: []*Node{{ID: "1", Title: "a", Level: 1}}}},
		{"no items", &Outline{Title: "t"}},
		{"nil node", &Outline{Title: "t", Items: []*Node{nil}}},
		{"untitled node", &Outline{Title: "t", Items: []*Node{{ID: "1", Level: 1}}}},
		{"zero level", &Outline{Title: "t", Items: []*Node{{ID: "1", Title: "a"}}}},
		{"missing id", &Outline{Title: "t", Items: []*Node{{Title: "a", Level: 1}}}},
		{"child not deeper", &Outline{Title: "t", Items: []*Node{
			{ID: "1", Title: "a", Level: 2, Children: []*Node{{ID: "2", Title: "b", Level: 2}}},
		}}},
		{"duplicate id", &Outline{Title: "t", Items: []*Node{
			{ID: "1", Title: "a", Level: 1, Children: []*Node{{ID: "1", Title: "b", Level: 2}}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.o.Validate()
			require.Error(t, err)

			var ae *apierr.Error
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, apierr.KindParse, ae.Kind)
			assert.Contains(t, err.Error(), "invalid outline structure")
		})
	}

	assert.NoError(t, fixture().Validate())
}

func TestCountAndWalk(t *testing.T) {
	o := fixture()
	assert.Equal(t, 3, o.Count())

	var order []string
	var depths []int
	Walk(o.Items, func(n *Node, depth int) {
		order = append(order, n.ID)
		depths = append(depths, depth)
	})
	assert.Equal(t, []string{"1", "1-1", "2"}, order)
	assert.Equal(t, []int{1, 2, 1}, depths)
}

func TestEnrich(t *testing.T) {
	o := fixture()
	e := o.Enriched()

	assert.Empty(t, o.Items[0].SuggestedIcon, "input must not be mutated")

	root := e.Items[0]
	assert.Equal(t, recommend.Icon("市场数据分析 用户增长趋势 竞品对比"), root.SuggestedIcon)
	assert.Equal(t, recommend.LayoutTwoColumn, root.Layout)
	assert.Equal(t, "建议使用数据可视化图表展示", root.VisualCue)
	assert.Equal(t, []string{"数据可视化图表", "用户场景"}, root.SuggestedImages)

	child := root.Children[0]
	assert.Equal(t, "users", child.SuggestedIcon)
	assert.Equal(t, []string{"团队协作场景"}, child.SuggestedImages)

	assert.Equal(t, recommend.LayoutSection, e.Items[1].Layout)

	e.Items[0].Content[0] = "mutated"
	assert.Equal(t, "用户增长趋势", o.Items[0].Content[0])
}

func TestEnrichIsIdempotent(t *testing.T) {
	once := Enrich(fixture().Items)
	twice := Enrich(once)
	assert.Equal(t, once, twice)
	assert.Nil(t, Enrich(nil))
}

func TestMarkdown(t *testing.T) {
	o := fixture()
	o.Items[0].Children[0].Children = []*Node{
		{ID: "deep", Title: "很深", Level: 7, Content: []string{"x"}},
	}

	want := "# 产品发布计划\n" +
		"## 市场数据分析\n" +
		"- 用户增长趋势\n" +
		"- 竞品对比\n" +
		"### 团队分工\n" +
		"- 研发\n" +
		"- 运营\n" +
		"###### 很深\n" +
		"- x\n" +
		"## 第二章 上线流程\n" +
		"- 灰度发布"
	assert.Equal(t, want, Markdown(o))
	assert.Equal(t, Markdown(o), Markdown(o.Enriched()))
}
