package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dpshade/prompt-loom/internal/errors"
	"github.com/dpshade/prompt-loom/internal/service"
	"github.com/dpshade/prompt-loom/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`prompt-loom - Terminal-based Stable Diffusion prompt composer

USAGE:
    prompt-loom [OPTIONS]

OPTIONS:
    --help          Show this help information
    --version       Print version information

VIEWS:
    Compose (default)  Five stacked fields: top, middle, bottom, negative
                       prompt and a scratchpad, each with its own undo/redo
    Batch (ctrl+b)     Ordered list of composed lines, reorderable and
                       exportable to a per-run scratch file
    Browser (ctrl+o)   Template JSON files with a markdown preview and an
                       inline thumbnail of the default image

KEYS:
    ctrl+a          Add the composed line to the batch
    ctrl+s          Save the template / export the batch
    ctrl+g          Copy the composed prompt text
    alt+j, alt+m    Copy the template as JSON or markdown
    ctrl+z, ctrl+y  Undo and redo in the focused field
    f1 or ?         Full key reference

STORAGE:
    Templates are plain JSON files in folders you choose.
    Preferences and logs: ~/.prompt-loom
    Override with: PROMPT_LOOM_DIR=<path>

ENVIRONMENT:
    GLAMOUR_STYLE   Force a markdown style (dark, light, notty, ...)
    DEBUG=true      Include error details in status messages

For more information, visit: https://github.com/dpshade/prompt-loom
`)
}

func main() {
	var showVersion bool
	var showHelp bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("prompt-loom version %s\n", version)
		os.Exit(0)
	}

	errorHandler := errors.NewCLIErrorHandler(os.Getenv("DEBUG") == "true")

	// Initialize service with file storage
	svc, err := service.NewService()
	if err != nil {
		fmt.Println(errorHandler.FormatError(err))
		return
	}
	defer svc.Close()

	// Remove scratch files earlier runs left behind
	if removed := svc.SweepOrphans(); removed > 0 {
		log.Printf("Removed %d orphaned scratch file(s)", removed)
	}

	// Initialize TUI
	model, err := ui.NewModel(svc)
	if err != nil {
		fmt.Println(errorHandler.FormatError(err))
		return
	}

	// Start TUI program
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println(errorHandler.FormatError(err))
		return
	}
}
