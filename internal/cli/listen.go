package cli

import (
	"context"
	"errors"
	"time"

	"github.com/pterm/pterm"
	"github.com/rudransh-shrivastava/papercups/internal/config"
	"github.com/rudransh-shrivastava/papercups/internal/gate"
	"github.com/rudransh-shrivastava/papercups/internal/logger"
	"github.com/rudransh-shrivastava/papercups/internal/session"
	"github.com/spf13/cobra"
)

const listenPollInterval = 100 * time.Millisecond

func newListenCmd(cfg *config.Config) *cobra.Command {
	var autoAccept bool

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "wait for a peer and receive without the full-screen UI",
		Long: `listen waits for inbound peers and prints what they send. Connection
and file approvals are asked on the terminal unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewLogger(cmd.ErrOrStderr(), cfg.Debug)

			rt, err := start(cmd.Context(), *cfg, log, nil)
			if err != nil {
				return err
			}

			pterm.Info.Printfln("Listening on %s, downloads go to %s", rt.node.Addr(), cfg.DownloadDir)

			loopErr := listenLoop(cmd.Context(), rt.session, confirmer(autoAccept))
			return errors.Join(loopErr, rt.stop())
		},
	}

	cmd.Flags().BoolVarP(&autoAccept, "yes", "y", false, "accept every connection and file without asking")
	return cmd
}

type confirmFunc func(prompt string) (bool, error)

func confirmer(autoAccept bool) confirmFunc {
	if autoAccept {
		return func(prompt string) (bool, error) {
			pterm.Info.Println(prompt + " yes")
			return true, nil
		}
	}
	return func(prompt string) (bool, error) {
		return pterm.DefaultInteractiveConfirm.WithDefaultText(prompt).Show()
	}
}

// listenLoop polls the session once per interval and answers decisions
// as they come up.
func listenLoop(ctx context.Context, s *session.Session, confirm confirmFunc) error {
	ticker := time.NewTicker(listenPollInterval)
	defer ticker.Stop()

	printed := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if _, err := s.Poll(); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		printed = printEntries(s, printed)

		for {
			d, ok := s.Pending()
			if !ok {
				break
			}

			yes := true
			if d.Mode() == gate.Acknowledge {
				pterm.Warning.Println(d.Prompt())
			} else {
				var err error
				if yes, err = confirm(d.Prompt()); err != nil {
					return err
				}
			}

			if _, err := s.Resolve(yes); err != nil {
				return err
			}
			printed = printEntries(s, printed)
		}
	}
}
