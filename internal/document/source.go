package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// MaxSourceBytes caps what LoadSource will read.
const MaxSourceBytes = 1 << 20

// Source is input text read from a file
type Source struct {
	Text     string
	Metadata Metadata
}

// Metadata contains source file metadata
type Metadata struct {
	Title         string    `json:"title"`
	SourcePath    string    `json:"source_path"`
	SourceFormat  string    `json:"source_format"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	WordCount     int       `json:"word_count"`
	LoadedAt      time.Time `json:"loaded_at"`
}

// FileSizeHuman returns human-readable file size
func (m Metadata) FileSizeHuman() string {
	bytes := m.FileSizeBytes
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}

var sourceFormats = map[string]string{
	".txt":      "text",
	".text":     "text",
	".md":       "markdown",
	".markdown": "markdown",
}

// LoadSource reads a plain-text or Markdown file to use as input text.
func LoadSource(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(absPath))
	format, ok := sourceFormats[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q (use .txt or .md)", ext)
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxSourceBytes {
		return nil, fmt.Errorf("file too large: %d bytes", info.Size())
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("file is not valid UTF-8: %s", path)
	}

	text := strings.TrimSpace(string(data))
	return &Source{
		Text: text,
		Metadata: Metadata{
			Title:         strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath)),
			SourcePath:    absPath,
			SourceFormat:  format,
			FileSizeBytes: info.Size(),
			WordCount:     CountWords(text),
			LoadedAt:      time.Now(),
		},
	}, nil
}

// CountWords counts whitespace-separated words, with every Han character
// counted as a word of its own.
func CountWords(text string) int {
	n := 0
	inWord := false
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			n++
			inWord = false
		case unicode.IsSpace(r) || unicode.IsPunct(r):
			inWord = false
		default:
			if !inWord {
				n++
				inWord = true
			}
		}
	}
	return n
}
