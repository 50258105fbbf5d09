package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"taskboard/internal/cli"
	"taskboard/internal/config"
	"taskboard/internal/kanban/service"
	"taskboard/internal/kanban/store"
	"taskboard/internal/logs"
	"taskboard/internal/tui"
)

func main() {
	// Parse CLI flags
	dataDirFlag := flag.String("data-dir", "", "Directory holding the board data")
	flag.StringVar(dataDirFlag, "d", "", "Directory holding the board data (shorthand)")
	storageFlag := flag.String("storage", "", "Storage backend: file or sqlite")
	noDemoFlag := flag.Bool("no-demo", false, "Start with an empty board instead of the demo cards")
	flag.Parse()

	cliFlags := config.CLIFlags{
		DataDir: *dataDirFlag,
		Storage: *storageFlag,
		NoDemo:  *noDemoFlag,
	}

	// Load configuration
	cfg, err := config.Load(cliFlags)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	if err := cfg.EnsureDirs(); err != nil {
		log.Fatalf("Failed to create directories: %v", err)
	}

	// Reinitialize logger
	if err := logs.Initialize(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}
	defer logs.Close()

	st, err := store.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.Storage, err)
	}
	defer st.Close()

	svc := service.NewBoardService(st)

	// Check for CLI subcommands
	args := flag.Args()
	if len(args) > 0 {
		// Scripts operate on the stored board, never the demo
		svc.Bootstrap(false)
		exitCode := cli.Run(args, svc, cfg.ExportDir)
		st.Close()
		logs.Close()
		os.Exit(exitCode)
	}

	// TUI mode
	svc.Bootstrap(cfg.SeedDemo)
	logs.Logger.Printf("Starting app in TUI mode (%s storage in %s)", cfg.Storage, cfg.DataDir)
	appModel := tui.NewAppModel(svc, cfg.ExportDir)
	p := tea.NewProgram(appModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}
