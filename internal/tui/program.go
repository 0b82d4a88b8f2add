package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lianhua/qinna-quiz/internal/question"
	"github.com/lianhua/qinna-quiz/internal/session"
)

// Run drives engine from the terminal until the user quits or ctx ends.
func Run(ctx context.Context, engine *session.Engine, bank *question.Bank, in io.Reader, out io.Writer, opts Options) error {
	changes := make(chan struct{}, 1)
	unsubscribe := engine.Subscribe(func(session.Snapshot) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if in != nil {
		progOpts = append(progOpts, tea.WithInput(in))
	}
	if out != nil {
		progOpts = append(progOpts, tea.WithOutput(out))
	}

	program := tea.NewProgram(NewModel(engine, changes, bank, opts), progOpts...)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
