package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"esparse/internal/driver"
	"esparse/internal/source"
	"esparse/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI decides on the progress view. It draws on stderr, so auto
// asks for a terminal there.
func shouldUseTUI(mode uiMode, quiet bool) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return !quiet && isTerminal(os.Stderr)
	}
}

type parseDirOutcome struct {
	fs      *source.FileSet
	results []driver.ParseDirResult
	err     error
}

// parseDirWithUI runs ParseDir while a progress view follows its phase
// events.
func parseDirWithUI(ctx context.Context, dir string, opts driver.Options, jobs int, cache *driver.Cache) (*source.FileSet, []driver.ParseDirResult, error) {
	files, err := driver.SourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	events := make(chan driver.PhaseEvent, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Observer = func(ev driver.PhaseEvent) {
			if opts.Observer != nil {
				opts.Observer(ev)
			}
			events <- ev
		}
		fs, results, err := driver.ParseDir(ctx, dir, runOpts, jobs, cache)
		outcomeCh <- parseDirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("parsing "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// Keep the workers from blocking on a view that is gone.
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
