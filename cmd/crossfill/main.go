package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/crossfill/config"
	"github.com/domino14/crossfill/crossword"
	"github.com/domino14/crossfill/shell"
	"github.com/domino14/crossfill/solver"
)

var GitVersion string

func main() {
	// Determine the directory of the executable. We will use this
	// directory to find the data files if an absolute path is not
	// provided for these!
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	cfg.AdjustRelativePaths(exPath)

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	log.Logger = log.Output(output)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// With no positional arguments, drop into the interactive shell.
	if len(cfg.Args) == 0 {
		sc := shell.NewShellController(cfg)
		sc.Loop()
		return
	}
	if len(cfg.Args) != 2 && len(cfg.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: crossfill [flags] <structure> <words> [output.png]")
		os.Exit(2)
	}

	cw, err := crossword.LoadFile(cfg.Args[0], cfg.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("could not load puzzle")
	}

	s := &solver.Solver{}
	if err := s.Init(cw); err != nil {
		log.Fatal().Err(err).Msg("could not initialize solver")
	}
	s.SetThreads(cfg.Threads)

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	assignment, err := s.Solve(ctx)
	if errors.Is(err, solver.ErrNoSolution) {
		fmt.Println("No solution.")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("solve failed")
	}
	fmt.Print(cw.GridString(assignment))
	if len(cfg.Args) == 3 {
		if err := cw.SaveImage(assignment, cfg.Args[2]); err != nil {
			log.Fatal().Err(err).Msg("could not save image")
		}
	}
}
