package fs

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"taskboard/internal/kanban/models"
)

// MarkdownVersion is written to and required from the frontmatter
const MarkdownVersion = 2

// Frontmatter is the YAML header of a markdown board
type Frontmatter struct {
	Version  int    `yaml:"version"`
	Exported string `yaml:"exported,omitempty"`
	Theme    string `yaml:"theme,omitempty"`
	AutoSort bool   `yaml:"autosort"`
}

var blankLines = regexp.MustCompile(`\n\s*\n+`)

// RenderMarkdown renders a board as markdown: one H2 per column, one list item per card
func RenderMarkdown(board models.Board, meta Frontmatter) ([]byte, error) {
	var buf bytes.Buffer

	if meta.Version == 0 {
		meta.Version = MarkdownVersion
	}
	if meta.Exported == "" {
		meta.Exported = time.Now().Format(time.RFC3339)
	}
	fm, err := yaml.Marshal(meta)
	if err != nil {
		return nil, err
	}

	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")

	buf.WriteString("# Kanban\n\n")

	for _, column := range board.Columns {
		buf.WriteString("## ")
		buf.WriteString(column.Name)
		buf.WriteString("\n\n")

		for _, card := range column.Cards {
			buf.WriteString("- [")
			buf.WriteString(string(card.Priority))
			buf.WriteString("] ")
			buf.WriteString(markdownTitle(card.Title))
			buf.WriteString("\n")
		}
		if len(column.Cards) > 0 {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// WriteMarkdown writes the markdown rendering of board to path
func WriteMarkdown(path string, board models.Board, meta Frontmatter) error {
	data, err := RenderMarkdown(board, meta)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// markdownTitle keeps multi-line titles inside their list item
func markdownTitle(title string) string {
	title = blankLines.ReplaceAllString(strings.TrimSpace(title), "\n")
	return strings.ReplaceAll(title, "\n", "\n  ")
}
