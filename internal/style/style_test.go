package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	all := All()
	require.Len(t, all, 15)

	seen := map[string]bool{}
	for _, s := range all {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		assert.NotEmpty(t, s.Name, s.ID)
		assert.NotEmpty(t, s.Colors.Primary, s.ID)
		assert.NotEmpty(t, s.Colors.Secondary, s.ID)
		assert.NotEmpty(t, s.Prompt.Tone, s.ID)
	}

	cats := Categories()
	require.Len(t, cats, 6)
	total := 0
	for _, c := range cats {
		total += len(ByCategory(c.ID))
	}
	assert.Equal(t, 15, total)
}

func TestGet(t *testing.T) {
	s := Get("executive-report")
	assert.Equal(t, "高管汇报", s.Name)
	assert.Equal(t, "#1e40af", s.Colors.Primary)
	assert.Equal(t, "#3b82f6", s.Colors.Secondary)
	assert.Equal(t, "Inter", s.Fonts.HeadingFace())

	assert.Panics(t, func() { Get("no-such-style") })
}

func TestLookupReturnsCopy(t *testing.T) {
	s, ok := Lookup("tech-share")
	require.True(t, ok)
	s.MindmapColors[0] = "#000000"

	again := Get("tech-share")
	assert.Equal(t, "#0ea5e9", again.MindmapColors[0])
	assert.Equal(t, "JetBrains Mono", again.Fonts.BodyFace())

	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestPromptSection(t *testing.T) {
	p := Get("training").PromptSection()
	assert.Contains(t, p, "【风格要求】")
	assert.Contains(t, p, Get("training").Prompt.Tone)
}

func TestDefaultIsValid(t *testing.T) {
	assert.True(t, Valid(Default))
	assert.Equal(t, Default, IDs()[0])
}
