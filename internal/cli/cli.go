package cli

import (
	"fmt"
	"io"
	"os"

	"taskboard/internal/kanban/service"
)

// Run executes the CLI with the given arguments.
// The first argument should be the namespace ("board").
func Run(args []string, svc service.BoardService, exportDir string) int {
	return RunWithOutput(args, svc, exportDir, os.Stdout, os.Stderr)
}

// RunWithOutput is Run with explicit output streams
func RunWithOutput(args []string, svc service.BoardService, exportDir string, stdout, stderr io.Writer) int {
	c := &command{svc: svc, exportDir: exportDir, out: stdout, err: stderr}

	if len(args) == 0 {
		c.printUsage()
		return 1
	}

	namespace := args[0]
	subArgs := args[1:]

	switch namespace {
	case "board", "b":
		return c.runBoardCommand(subArgs)
	case "help", "-h", "--help":
		c.printUsage()
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", namespace)
		c.printUsage()
		return 1
	}
}

type command struct {
	svc       service.BoardService
	exportDir string
	out       io.Writer
	err       io.Writer
}

func (c *command) runBoardCommand(args []string) int {
	if len(args) == 0 {
		c.printBoardUsage()
		return 1
	}

	name := args[0]
	cmdArgs := args[1:]

	switch name {
	case "add", "a":
		return c.runAdd(cmdArgs)
	case "list", "ls", "l":
		return c.runList(cmdArgs)
	case "delete", "rm", "del":
		return c.runDelete(cmdArgs)
	case "edit", "e":
		return c.runEdit(cmdArgs)
	case "cycle", "p":
		return c.runCycle(cmdArgs)
	case "move", "mv":
		return c.runMove(cmdArgs)
	case "sort":
		return c.runSort(cmdArgs)
	case "export":
		return c.runExport(cmdArgs)
	case "import":
		return c.runImport(cmdArgs)
	case "clear":
		return c.runClear(cmdArgs)
	case "theme":
		return c.runTheme(cmdArgs)
	case "autosort":
		return c.runAutoSort(cmdArgs)
	case "help", "-h", "--help":
		c.printBoardUsage()
		return 0
	default:
		fmt.Fprintf(c.err, "Unknown board command: %s\n", name)
		c.printBoardUsage()
		return 1
	}
}

func (c *command) printUsage() {
	fmt.Fprintln(c.out, `taskboard - Three-column kanban board

Usage: taskboard [flags] [command] [arguments]

Commands:
  board       Board commands

Flags:
  -d, --data-dir <dir>   Directory holding the board and debug.log
      --storage <name>   Storage backend: file or sqlite
      --no-demo          Do not seed demo cards into an empty board

Running taskboard without arguments launches the interactive TUI.
Use "taskboard board help" for board subcommands.`)
}

func (c *command) printBoardUsage() {
	fmt.Fprintln(c.out, `taskboard board - Board commands

Usage: taskboard board <command> [arguments]

Commands:
  add, a        Add a card to Start
                taskboard board add "Draft roadmap" -p high

  list, ls, l   List cards by column

  delete, rm    Delete a card
                taskboard board delete <card-id> --yes

  edit, e       Replace a card title
                taskboard board edit <card-id> "New title"

  cycle, p      Cycle priority low -> med -> high -> low
                taskboard board cycle <card-id>

  move, mv      Move a card to a column, optionally at a position
                taskboard board move <card-id> progress 0

  sort          Sort every column by priority

  export        Write the board to a file (kanban-board.json by default)
                taskboard board export [file] [--md]

  import        Replace the board from a .json or .md file
                taskboard board import <file>

  clear         Erase the stored board
                taskboard board clear --yes

  theme         Show or set the theme (light, dark)
  autosort      Show or set auto-sort (on, off)

  help          Show this help message`)
}
