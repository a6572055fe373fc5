package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"formulang/internal/driver"
	"formulang/internal/ui"
)

type checkOutcome struct {
	result *driver.CheckResult
	err    error
}

// runCheckWithUI runs driver.Check on a goroutine and renders its progress
// events until the run finishes.
func runCheckWithUI(ctx context.Context, out io.Writer, title string, roots []string, cfg driver.Config, opts driver.CheckOptions) (*driver.CheckResult, error) {
	var files []string
	for _, root := range roots {
		found, err := driver.ListSources(root)
		if err != nil {
			// Check сообщит ту же ошибку
			continue
		}
		files = append(files, found...)
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Check(ctx, roots, cfg, runOpts)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог завершиться раньше (Ctrl+C), а воркер ещё пишет события
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
