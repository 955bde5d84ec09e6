package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"manifold/internal/driver"
	"manifold/internal/source"
	"manifold/internal/ui"
)

type extractOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runExtractWithUI запускает ExtractDir под интерактивным прогрессом.
// Пайплайн работает в отдельной горутине и шлёт события в модель.
func runExtractWithUI(ctx context.Context, dir string, opts driver.ExtractOptions) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListHeaders(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan extractOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = driver.ChannelSink(events)
		fs, results, err := driver.ExtractDir(ctx, dir, optsCopy)
		outcomeCh <- extractOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	finalStage := driver.StageExtract
	if opts.OutDir != "" {
		finalStage = driver.StageEmit
	}
	model := ui.NewProgressModel("Extracting manifests", files, finalStage, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
