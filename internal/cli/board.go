package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"taskboard/internal/kanban/models"
	"taskboard/internal/kanban/operations"
)

// parseInterspersed lets flags follow positional arguments
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func (c *command) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.err)
	return fs
}

func (c *command) runAdd(args []string) int {
	fs := c.newFlagSet("add")
	priority := fs.String("p", string(models.PriorityLow), "Priority: low, med, high")

	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return 1
	}
	if len(rest) == 0 {
		fmt.Fprintln(c.err, "Error: card title required")
		fmt.Fprintln(c.err, "Usage: taskboard board add \"Card title\" [-p low|med|high]")
		return 1
	}

	card, err := c.svc.AddTask(strings.Join(rest, " "), models.ParsePriority(*priority))
	if err != nil {
		fmt.Fprintf(c.err, "Error adding card: %v\n", err)
		return 1
	}

	fmt.Fprintf(c.out, "Added: [%s] %s\n", card.Priority.Label(), card.Title)
	fmt.Fprintf(c.out, "ID: %s\n", card.ID)
	return 0
}

func (c *command) runList(args []string) int {
	fs := c.newFlagSet("list")
	column := fs.String("c", "", "Only list one column")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	board := c.svc.Board()
	if *column != "" {
		name, err := operations.ResolveColumn(*column)
		if err != nil {
			fmt.Fprintf(c.err, "Error: %v\n", err)
			return 1
		}
		board.Columns = []models.Column{*board.GetColumn(name)}
	}

	total := 0
	for _, col := range board.Columns {
		fmt.Fprintf(c.out, "%s (%d)\n", col.Name, len(col.Cards))
		for _, card := range col.Cards {
			printCard(c, card)
		}
		total += len(col.Cards)
	}

	fmt.Fprintf(c.out, "\n%d card(s)\n", total)
	return 0
}

func (c *command) runDelete(args []string) int {
	fs := c.newFlagSet("delete")
	yes := fs.Bool("yes", false, "Confirm deletion")

	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return 1
	}
	if len(rest) == 0 {
		fmt.Fprintln(c.err, "Error: card ID required")
		fmt.Fprintln(c.err, "Usage: taskboard board delete <card-id> --yes")
		return 1
	}

	card, err := c.findCardByPartialID(rest[0])
	if err != nil {
		fmt.Fprintf(c.err, "Error: %v\n", err)
		return 1
	}
	if !*yes {
		fmt.Fprintf(c.err, "Refusing to delete %q without --yes\n", card.Title)
		return 1
	}

	if err := c.svc.DeleteTask(card.ID); err != nil {
		fmt.Fprintf(c.err, "Error deleting card: %v\n", err)
		return 1
	}

	fmt.Fprintf(c.out, "Deleted: %s\n", card.Title)
	return 0
}

func (c *command) runEdit(args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(c.err, "Error: card ID and title required")
		fmt.Fprintln(c.err, "Usage: taskboard board edit <card-id> \"New title\"")
		return 1
	}

	card, err := c.findCardByPartialID(args[0])
	if err != nil {
		fmt.Fprintf(c.err, "Error: %v\n", err)
		return 1
	}

	changed, err := c.svc.EditTitle(card.ID, strings.Join(args[1:], " "))
	if err != nil {
		fmt.Fprintf(c.err, "Error editing card: %v\n", err)
		return 1
	}
	if !changed {
		fmt.Fprintf(c.out, "Unchanged: %s\n", card.Title)
		return 0
	}

	fmt.Fprintf(c.out, "Renamed: %s\n", strings.TrimSpace(strings.Join(args[1:], " ")))
	return 0
}

func (c *command) runCycle(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(c.err, "Error: card ID required")
		return 1
	}

	card, err := c.findCardByPartialID(args[0])
	if err != nil {
		fmt.Fprintf(c.err, "Error: %v\n", err)
		return 1
	}

	p, err := c.svc.CyclePriority(card.ID)
	if err != nil {
		fmt.Fprintf(c.err, "Error cycling priority: %v\n", err)
		return 1
	}

	fmt.Fprintf(c.out, "%s: %s -> %s\n", card.Title, card.Priority.Label(), p.Label())
	return 0
}

func (c *command) runMove(args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(c.err, "Error: card ID and column required")
		fmt.Fprintln(c.err, "Usage: taskboard board move <card-id> <start|progress|done> [position]")
		return 1
	}

	card, err := c.findCardByPartialID(args[0])
	if err != nil {
		fmt.Fprintf(c.err, "Error: %v\n", err)
		return 1
	}

	column, err := operations.ResolveColumn(args[1])
	if err != nil {
		fmt.Fprintf(c.err, "Error: %v\n", err)
		return 1
	}

	position := -1
	if len(args) > 2 {
		position, err = strconv.Atoi(args[2])
		if err != nil || position < 0 {
			fmt.Fprintf(c.err, "Error: invalid position %q\n", args[2])
			return 1
		}
	}

	if err := c.svc.DropTask(card.ID, column, position); err != nil {
		fmt.Fprintf(c.err, "Error moving card: %v\n", err)
		return 1
	}

	fmt.Fprintf(c.out, "Moved: %s -> %s\n", card.Title, column)
	return 0
}

func (c *command) runSort(args []string) int {
	if err := c.svc.Sort(); err != nil {
		fmt.Fprintf(c.err, "Error sorting board: %v\n", err)
		return 1
	}
	fmt.Fprintln(c.out, "Sorted all columns by priority")
	return 0
}

func (c *command) runExport(args []string) int {
	fs := c.newFlagSet("export")
	markdown := fs.Bool("md", false, "Export as markdown")

	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return 1
	}

	var path string
	if len(rest) > 0 {
		var data []byte
		if *markdown {
			data, err = c.svc.ExportMarkdown()
		} else {
			data, err = c.svc.Export()
		}
		if err == nil {
			path = rest[0]
			err = os.WriteFile(path, data, 0644)
		}
	} else if *markdown {
		path, err = c.svc.ExportMarkdownToFile(c.exportDir)
	} else {
		path, err = c.svc.ExportToFile(c.exportDir)
	}
	if err != nil {
		fmt.Fprintf(c.err, "Error exporting board: %v\n", err)
		return 1
	}

	fmt.Fprintf(c.out, "Exported: %s\n", path)
	return 0
}

func (c *command) runImport(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(c.err, "Error: file required")
		fmt.Fprintln(c.err, "Usage: taskboard board import <file.json|file.md>")
		return 1
	}

	if err := c.svc.ImportFile(args[0]); err != nil {
		if errors.Is(err, operations.ErrInvalidImport) {
			fmt.Fprintln(c.err, "Failed to import JSON")
		}
		fmt.Fprintf(c.err, "Error importing board: %v\n", err)
		return 1
	}

	counts := c.svc.Counts()
	fmt.Fprintf(c.out, "Imported: %d start, %d progress, %d done\n",
		counts[models.ColumnStart], counts[models.ColumnProgress], counts[models.ColumnDone])
	return 0
}

func (c *command) runClear(args []string) int {
	fs := c.newFlagSet("clear")
	yes := fs.Bool("yes", false, "Confirm clearing the board")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if !*yes {
		fmt.Fprintln(c.err, "Refusing to clear the board without --yes")
		return 1
	}

	if err := c.svc.Clear(); err != nil {
		fmt.Fprintf(c.err, "Error clearing board: %v\n", err)
		return 1
	}
	fmt.Fprintln(c.out, "Cleared board")
	return 0
}

func (c *command) runTheme(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(c.out, c.svc.Theme())
		return 0
	}
	if err := c.svc.SetTheme(strings.ToLower(args[0])); err != nil {
		fmt.Fprintf(c.err, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(c.out, "Theme: %s\n", c.svc.Theme())
	return 0
}

func (c *command) runAutoSort(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(c.out, onOff(c.svc.AutoSort()))
		return 0
	}

	var on bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		on = true
	case "off", "false", "0":
		on = false
	default:
		fmt.Fprintf(c.err, "Error: expected on or off, got %q\n", args[0])
		return 1
	}

	if err := c.svc.SetAutoSort(on); err != nil {
		fmt.Fprintf(c.err, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(c.out, "Auto-sort: %s\n", onOff(on))
	return 0
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func printCard(c *command, card models.Card) {
	id := card.ID
	if len(id) > 8 {
		id = id[:8]
	}
	title := strings.ReplaceAll(card.Title, "\n", " / ")
	fmt.Fprintf(c.out, "  [%s] %-6s %s\n", id, "["+card.Priority.Label()+"]", title)
}

func (c *command) findCardByPartialID(partialID string) (*models.Card, error) {
	var matches []models.Card
	for _, col := range c.svc.Board().Columns {
		for _, card := range col.Cards {
			if card.ID == partialID || (len(partialID) >= 4 && strings.HasPrefix(card.ID, partialID)) {
				matches = append(matches, card)
			}
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no card found with ID: %s", partialID)
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("multiple cards match ID '%s', please be more specific", partialID)
	}

	return &matches[0], nil
}
