// Package main runs the balloon effects in a terminal.
//
// Usage (from the repository root):
//
//	go run ./cmd/balloons-term [flags]
//
// Flags:
//
//	--root <dir>       Directory containing assets/ (default ".")
//	--config <file>    YAML file overriding the built-in effects config
//	--watch            Reload --config when it changes
//	--verbose          Log to balloons-term.log
//
// Controls:
//
//	Mouse move     - Sparkles
//	Mouse click    - Balloon burst
//	Space          - Balloon burst at the screen center
//	q/Esc/Ctrl-C   - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/balloons/pkg/config"
	"github.com/decker502/balloons/pkg/effects"
	"github.com/decker502/balloons/pkg/embedded"
	"github.com/decker502/balloons/pkg/termui"
)

var (
	rootFlag    = flag.String("root", ".", "Directory containing assets/")
	configFlag  = flag.String("config", "", "YAML file overriding the built-in effects config")
	watchFlag   = flag.Bool("watch", false, "Reload --config when it changes")
	verboseFlag = flag.Bool("verbose", false, "Log to balloons-term.log")
)

func main() {
	flag.Parse()

	// The screen owns stdout, so logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if *verboseFlag {
		f, err := os.Create("balloons-term.log")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "balloons-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	embedded.Init(os.DirFS(*rootFlag))

	cfg, err := config.LoadEffectsConfig(*configFlag)
	if err != nil {
		return err
	}
	manager, err := effects.NewManager(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := termui.New(screen, manager)
	if *watchFlag && *configFlag != "" {
		watcher, err := config.NewWatcher(*configFlag)
		if err != nil {
			log.Printf("[Main] Config watch disabled: %v", err)
		} else {
			defer watcher.Close()
			term.Watch(watcher)
		}
	}

	return term.Run(ctx)
}
