package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rudransh-shrivastava/papercups/internal/config"
	"github.com/rudransh-shrivastava/papercups/internal/logger"
	"github.com/rudransh-shrivastava/papercups/internal/tui"
	"github.com/spf13/cobra"
)

func newChatCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "open the full-screen chat (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), *cfg)
		},
	}
}

func runChat(ctx context.Context, cfg config.Config) error {
	log, closer, err := logger.NewFileLogger(cfg.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	rt, err := start(ctx, cfg, log, nil)
	if err != nil {
		return err
	}

	model := tui.New(ctx, rt.session)
	_, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		runErr = nil
	}

	stopErr := rt.stop()
	if stopErr != nil {
		return fmt.Errorf("network stopped: %w", stopErr)
	}
	return errors.Join(runErr, model.Err())
}
