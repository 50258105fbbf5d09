package fs

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
	"taskboard/internal/kanban/models"
)

// ParseMarkdown parses a markdown board. H2 headings naming a known column
// start that column; list items under it become cards. Cards receive fresh
// ids and a creation time of now.
func ParseMarkdown(content []byte, now time.Time) (models.Board, Frontmatter, error) {
	body, meta, err := stripFrontmatter(content)
	if err != nil {
		return models.Board{}, Frontmatter{}, err
	}
	if meta.Version != 0 && meta.Version != MarkdownVersion {
		return models.Board{}, meta, fmt.Errorf("unsupported markdown board version %d", meta.Version)
	}

	board := models.NewBoard()

	reader := text.NewReader(body)
	parser := goldmark.DefaultParser()
	doc := parser.Parse(reader)

	var currentColumn *models.Column

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 2 {
				currentColumn = nil
				name := strings.TrimSpace(string(blockText(node, body)))
				for i, col := range models.ColumnNames {
					if strings.EqualFold(col, name) {
						currentColumn = &board.Columns[i]
					}
				}
			}
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			if currentColumn == nil {
				return ast.WalkSkipChildren, nil
			}
			title, priority := parseCardLine(listItemText(node, body))
			if title != "" {
				currentColumn.Cards = append(currentColumn.Cards, models.Card{
					ID:        models.NewID(),
					Title:     title,
					Priority:  priority,
					CreatedAt: now,
				})
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return board, meta, nil
}

// listItemText joins the raw lines of every text block in a list item
func listItemText(item *ast.ListItem, source []byte) string {
	var parts []string
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Kind() != ast.KindParagraph && child.Kind() != ast.KindTextBlock {
			continue
		}
		parts = append(parts, string(blockText(child, source)))
	}
	return strings.Join(parts, "\n")
}

func blockText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// parseCardLine splits an optional leading "[priority]" from the title
func parseCardLine(line string) (string, models.Priority) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "[") {
		if end := strings.Index(line, "]"); end > 0 {
			tag := line[1:end]
			switch models.Priority(strings.ToLower(tag)) {
			case models.PriorityLow, models.PriorityMed, models.PriorityHigh:
				return strings.TrimSpace(line[end+1:]), models.ParsePriority(tag)
			}
		}
	}
	return line, models.PriorityLow
}

// stripFrontmatter splits optional YAML frontmatter from the markdown body
func stripFrontmatter(content []byte) ([]byte, Frontmatter, error) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, Frontmatter{}, nil
	}

	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == 0 {
		return content, Frontmatter{}, nil
	}

	var meta Frontmatter
	frontmatterBytes := bytes.Join(lines[1:frontmatterEnd], []byte("\n"))
	if err := yaml.Unmarshal(frontmatterBytes, &meta); err != nil {
		return nil, Frontmatter{}, fmt.Errorf("invalid frontmatter: %w", err)
	}

	body := bytes.TrimLeft(bytes.Join(lines[frontmatterEnd+1:], []byte("\n")), "\n")
	return body, meta, nil
}
