package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/forestaa/troll/internal/driver"
	"github.com/forestaa/troll/internal/ui"
)

type analyzeOutcome struct {
	results []*driver.Result
	err     error
}

// runAnalyzeAllWithUI runs the decode behind a progress TUI. The TUI draws
// on stderr so stdout stays clean for the report.
func runAnalyzeAllWithUI(ctx context.Context, title string, paths []string, reqs []driver.Request, jobs int, opts driver.Options) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	opts.Events = events
	outcomeCh := make(chan analyzeOutcome, 1)

	go func() {
		results, err := driver.AnalyzeAll(ctx, reqs, jobs, opts)
		outcomeCh <- analyzeOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewDecodeBoard(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()

	// После выхода из TUI канал уже никто не читает. Дочитываем, чтобы
	// не заклинить emit в драйвере, когда пользователь вышел по ctrl-c.
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
