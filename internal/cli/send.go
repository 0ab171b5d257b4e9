package cli

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rudransh-shrivastava/papercups/internal/config"
	"github.com/rudransh-shrivastava/papercups/internal/logger"
	"github.com/rudransh-shrivastava/papercups/internal/protocol"
	"github.com/rudransh-shrivastava/papercups/internal/session"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var errNothingToSend = errors.New("nothing to send: pass --message and/or --file")

func newSendCmd(cfg *config.Config) *cobra.Command {
	var (
		message string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "send <ip>",
		Short: "connect to a peer, send a message and/or a file, then disconnect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" && file == "" {
				return errNothingToSend
			}

			var f *protocol.File
			if file != "" {
				var err error
				if f, err = session.LoadFile(file); err != nil {
					return err
				}
			}

			ln, err := ephemeralListener()
			if err != nil {
				return err
			}

			log := logger.NewLogger(cmd.ErrOrStderr(), cfg.Debug)
			rt, err := start(cmd.Context(), *cfg, log, ln)
			if err != nil {
				_ = ln.Close()
				return err
			}

			sendErr := send(cmd, rt.session, args[0], message, f)
			return errors.Join(sendErr, rt.stop())
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "chat line to send")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file to send")
	return cmd
}

func send(cmd *cobra.Command, s *session.Session, target, message string, f *protocol.File) error {
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Waiting for %s to accept...", target))
	if err := s.Connect(cmd.Context(), target); err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("Connected to %s", target))

	if message != "" {
		if err := s.SendText(message); err != nil {
			return err
		}
		pterm.Success.Println("Message sent")
	}

	if f != nil {
		total := int64(protocol.HeaderSize + protocol.FileNameSize + len(f.Data))
		bar := progressbar.DefaultBytes(total, "sending "+f.Name)

		err := s.Network().SendWithProgress(f, bar)
		s.FileResult(f, err)
		if err != nil {
			return err
		}
		_ = bar.Finish()
		pterm.Success.Printfln("Sent %s", f.Name)
	}

	return s.Disconnect()
}
