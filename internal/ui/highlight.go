package ui

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter provides syntax highlighting for launcher, association and
// diff text
type Highlighter struct {
	style *chroma.Style
}

// NewHighlighter creates a new syntax highlighter
func NewHighlighter() *Highlighter {
	return &Highlighter{
		style: styles.Get("catppuccin-mocha"),
	}
}

// HighlightLine highlights a single line based on the file it comes from
func (h *Highlighter) HighlightLine(line, filename string) string {
	return h.highlight(getLexerForFile(filename), line)
}

// HighlightDiff highlights a unified diff
func (h *Highlighter) HighlightDiff(diff string) string {
	return h.highlight(lexers.Get("diff"), diff)
}

func (h *Highlighter) highlight(lexer chroma.Lexer, text string) string {
	if lexer == nil {
		return text
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	var result strings.Builder
	for token := iterator(); token != chroma.EOF; token = iterator() {
		style := h.style.Get(token.Type)

		if !style.Colour.IsSet() {
			result.WriteString(token.Value)
			continue
		}

		styled := lipgloss.NewStyle().Foreground(lipgloss.Color(style.Colour.String()))
		if style.Bold == chroma.Yes {
			styled = styled.Bold(true)
		}
		if style.Italic == chroma.Yes {
			styled = styled.Italic(true)
		}
		// Render line by line so styles do not span newlines
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				result.WriteString("\n")
			}
			if part != "" {
				result.WriteString(styled.Render(part))
			}
		}
	}

	return result.String()
}

// getLexerForFile returns the appropriate lexer for a filename
func getLexerForFile(filename string) chroma.Lexer {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".desktop", ".list", ".ini", ".conf", ".bak":
		// Launcher and association files are INI-like
		return lexers.Get("ini")
	case ".yaml", ".yml":
		return lexers.Get("yaml")
	case ".diff", ".patch":
		return lexers.Get("diff")
	case ".json":
		return lexers.Get("json")
	}

	return lexers.Match(filename)
}

// GetFileType returns a human-readable file type for display
func GetFileType(filename string) string {
	base := strings.ToLower(filepath.Base(filename))
	switch {
	case strings.HasSuffix(base, ".desktop"):
		return "Desktop Entry"
	case base == "mimeapps.list", strings.HasSuffix(base, ".list"):
		return "MIME Associations"
	case strings.HasSuffix(base, ".bak"):
		return "Backup"
	case strings.HasSuffix(base, ".yaml"), strings.HasSuffix(base, ".yml"):
		return "YAML"
	case strings.HasSuffix(base, ".diff"), strings.HasSuffix(base, ".patch"):
		return "Diff"
	case strings.HasSuffix(base, ".json"):
		return "JSON"
	default:
		return "Text"
	}
}
