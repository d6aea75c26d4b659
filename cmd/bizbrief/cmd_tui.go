package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/amiyamandal-dev/bizbrief/internal/tui"
)

// tuiLogFile receives log lines while the terminal client owns the screen
const tuiLogFile = "bizbrief.log"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal client",
	Long: `Starts the terminal client. The credential is kept in the local session
store, shared with "bizbrief login".`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	client, err := newBackend()
	if err != nil {
		return err
	}

	sess, closeSession, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := tui.NewProgramScheduler()
	app := tui.New(ctx, tui.Options{
		API:       client,
		Session:   sess,
		Scheduler: sched,
		UI:        cfg.UI,
		Logger:    log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	sched.Attach(p)

	log.Info("Terminal client starting", "backend", cfg.Backend.BaseURL)
	_, runErr := p.Run()

	app.Close()
	cancel()
	sched.Wait()

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal client failed: %w", runErr)
	}
	return nil
}
