package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/mindppt/internal/document"
	"github.com/sant0-9/mindppt/internal/outline"
)

func TestWriteArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewWriter(dir)
	a := &document.Artifact{Filename: "年度总结_高管汇报.pptx", Data: []byte("PK-first")}

	first, err := w.WriteArtifact(a)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "年度总结_高管汇报.pptx"), first)

	a.Data = []byte("PK-second")
	second, err := w.WriteArtifact(a)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "年度总结_高管汇报-2.pptx"), second)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "PK-first", string(data), "existing file is left alone")
}

func TestWriteArtifactEmpty(t *testing.T) {
	_, err := NewWriter(t.TempDir()).WriteArtifact(&document.Artifact{Filename: "x.pptx"})
	assert.Error(t, err)
}

func TestWriteMindmap(t *testing.T) {
	dir := t.TempDir()
	o := &outline.WithMindmap{
		Outline:         &outline.Outline{Title: "Q3 路线图"},
		MindmapMarkdown: "# Q3 路线图\n## 目标",
	}

	path, err := NewWriter(dir).WriteMindmap(o, "产品发布")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Q3_路线图_产品发布.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Q3 路线图\n## 目标\n", string(data))

	_, err = NewWriter(dir).WriteMindmap(nil, "x")
	assert.Error(t, err)
}

func TestNewWriterDefaultsToWorkingDir(t *testing.T) {
	assert.Equal(t, ".", NewWriter("").Dir())
}
