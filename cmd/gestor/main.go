package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maru/gestor/internal/app"
	"github.com/maru/gestor/internal/config"
	"github.com/maru/gestor/internal/ui"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "list":
			handleList(os.Args[2:])
			return
		case "version":
			fmt.Printf("gestor v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	fs := flag.NewFlagSet("gestor", flag.ExitOnError)
	opts := configFlags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := opts.resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type configOpts struct {
	configPath *string
	backend    *string
	dbPath     *string
	logPath    *string
}

// configFlags registers the shared configuration flags on a flag set.
func configFlags(fs *flag.FlagSet) configOpts {
	return configOpts{
		configPath: fs.String("config", "", "Path to a YAML config file"),
		backend:    fs.String("backend", "", "Storage backend (memory, sqlite)"),
		dbPath:     fs.String("db", "", "SQLite database file path"),
		logPath:    fs.String("log", "", "Log file path"),
	}
}

// resolve builds the configuration: defaults, then the optional config
// file, then flags, in increasing priority.
func (o configOpts) resolve() (*config.Config, error) {
	cfg := config.Default()
	if *o.configPath != "" {
		loaded, err := config.Load(*o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if *o.backend != "" {
		cfg.Storage.Backend = *o.backend
	}
	if *o.dbPath != "" {
		cfg.Storage.Path = *o.dbPath
	}
	if *o.logPath != "" {
		cfg.Logging.Path = *o.logPath
	}

	return cfg, nil
}

func runTUI(cfg *config.Config) error {
	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	p := tea.NewProgram(ui.New(application.Tasks), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func handleAdd(args []string) {
	fs := flag.NewFlagSet("gestor add", flag.ExitOnError)
	desc := fs.String("desc", "", "Task description")
	opts := configFlags(fs)
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: gestor add [--desc <text>] <title>")
		os.Exit(1)
	}
	title := strings.Join(fs.Args(), " ")

	cfg, err := opts.resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	t, err := application.Tasks.Create(context.Background(), title, *desc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating task: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created #%d: %s\n", t.ID, t.Title)
}

func handleList(args []string) {
	fs := flag.NewFlagSet("gestor list", flag.ExitOnError)
	opts := configFlags(fs)
	fs.Parse(args)

	cfg, err := opts.resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	tasks, err := application.Tasks.List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing tasks: %v\n", err)
		os.Exit(1)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}
	for _, t := range tasks {
		check := " "
		if t.Completed {
			check = "x"
		}
		fmt.Printf("[%s] #%d %s\n", check, t.ID, t.Title)
		if t.Description != "" {
			fmt.Printf("        %s\n", t.Description)
		}
	}
}

func printHelp() {
	help := `gestor - a small task manager with swappable storage

Usage:
  gestor                    Start the TUI
  gestor add <title>        Quick add a task
  gestor list               Print all tasks
  gestor version            Show version
  gestor help               Show this help

Options:
  --backend <name>  Storage backend: memory or sqlite (default sqlite)
  --db <path>       SQLite database file path
  --log <path>      Log file path
  --config <path>   YAML config file (flags override it)

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
                g/G           Go to top/bottom

  Actions:      a             Add task ("title | description")
                e or enter    Edit title
                c or tab      Mark completed
                d             Delete (with confirm)
                r             Reload from store

                ?             Help
                q             Quit`

	fmt.Println(help)
}
