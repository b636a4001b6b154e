// cmd/gic-cinemas/main.go
//
// This is the entry point for the GIC Cinemas booking console.
//
// Flow:
// 1. Create .gic/ in the project directory and load its config
// 2. Open the journey log
// 3. Run the line console (default) or the full-screen TUI

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/kingrea/gic-cinemas/internal/command"
	"github.com/kingrea/gic-cinemas/internal/config"
	"github.com/kingrea/gic-cinemas/internal/console"
	"github.com/kingrea/gic-cinemas/internal/logbook"
	"github.com/kingrea/gic-cinemas/internal/render"
	"github.com/kingrea/gic-cinemas/internal/tui"
)

func main() {
	projectDir := flag.String("project", "", "path to the project directory holding .gic/ (defaults to cwd)")
	uiMode := flag.String("ui", "", "front end to run: console or tui (overrides ui.mode)")
	scriptFile := flag.String("script", "", "answer console prompts from this file, one line per prompt")
	flag.Parse()

	project := *projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			die("determine working directory: %v", err)
		}
	}
	absoluteProject, err := filepath.Abs(project)
	if err != nil {
		die("resolve project dir: %v", err)
	}
	if err := config.InitDir(absoluteProject); err != nil {
		die("init .gic: %v", err)
	}
	cfg, err := config.NewConfig(absoluteProject)
	if err != nil {
		die("load config: %v", err)
	}
	if *uiMode != "" {
		if err := cfg.SetUIMode(*uiMode); err != nil {
			die("%v", err)
		}
	}

	lb, err := logbook.New(cfg.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "journey log disabled: %v\n", err)
	}
	glyphs := render.Glyphs{
		Empty:     cfg.Project.Display.Empty,
		Highlight: cfg.Project.Display.Highlight,
		Taken:     cfg.Project.Display.Taken,
	}

	if cfg.UIMode() == config.UIModeTUI && *scriptFile == "" {
		app := tui.NewApp(
			tui.WithLogbook(lb),
			tui.WithCinemaName(cfg.CinemaName()),
			tui.WithIDFormat(cfg.Project.Booking.Prefix, cfg.Project.Booking.Digits),
			tui.WithGlyphs(glyphs),
		)
		code, err := tui.Run(app)
		if err != nil {
			die("run tui: %v", err)
		}
		if farewell := app.Farewell(); farewell != "" {
			fmt.Println(farewell)
		}
		os.Exit(code)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	var term command.IO
	if *scriptFile != "" {
		f, err := os.Open(*scriptFile)
		if err != nil {
			die("open script: %v", err)
		}
		script, err := console.ReadScript(f, os.Stdout)
		f.Close()
		if err != nil {
			die("%v", err)
		}
		term = script
	} else {
		term = console.NewStdio(ctx, os.Stdin, os.Stdout)
	}

	app := console.NewApp(
		console.WithJournal(lb),
		console.WithCinemaName(cfg.CinemaName()),
		console.WithIDFormat(cfg.Project.Booking.Prefix, cfg.Project.Booking.Digits),
		console.WithRenderer(render.NewASCII(glyphs)),
	)
	code := app.Run(term)
	stop()
	os.Exit(code)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
