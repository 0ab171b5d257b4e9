package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rudransh-shrivastava/papercups/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "papercups",
		Short: "direct peer-to-peer chat and file exchange",
		Long: `papercups links two machines over a single TCP connection so they can
chat and hand each other files. Every inbound connection and every inbound
file must be approved before anything happens.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), *cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVarP(&cfg.Port, "port", "p", cfg.Port, "TCP port to listen on and dial")
	flags.StringVar(&cfg.DownloadDir, "download-dir", cfg.DownloadDir, "where accepted files are saved")
	flags.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "record transfers to this sqlite file (off when empty)")
	flags.DurationVar(&cfg.HandshakeTimeout, "handshake-timeout", cfg.HandshakeTimeout, "how long an inbound peer has to send its handshake")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "append logs here in chat mode")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log at debug level")

	rootCmd.AddCommand(newChatCmd(cfg))
	rootCmd.AddCommand(newListenCmd(cfg))
	rootCmd.AddCommand(newSendCmd(cfg))
	rootCmd.AddCommand(newHistoryCmd(cfg))
	return rootCmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	if err := newRootCmd(&cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
