package cli

import (
	"errors"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/rudransh-shrivastava/papercups/internal/config"
	"github.com/rudransh-shrivastava/papercups/internal/db"
	"github.com/rudransh-shrivastava/papercups/internal/store"
	"github.com/spf13/cobra"
)

var errNoHistory = errors.New("no history database: pass --history <path>")

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var (
		limit       int
		connections bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "list recorded transfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.HistoryEnabled() {
				return errNoHistory
			}

			gdb, err := db.Open(cfg.HistoryPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			hs := store.NewHistoryStore(gdb)
			out := pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout())

			if connections {
				conns, err := hs.ListConnections(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return out.WithData(connectionRows(conns)).Render()
			}

			transfers, err := hs.ListTransfers(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return out.WithData(transferRows(transfers)).Render()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "how many entries to show (0 for all)")
	cmd.Flags().BoolVar(&connections, "connections", false, "list connections instead of transfers")
	return cmd
}

func transferRows(transfers []db.Transfer) pterm.TableData {
	rows := pterm.TableData{{"When", "Dir", "Kind", "Peer", "Content", "Size"}}
	for _, t := range transfers {
		content := t.Body
		if t.Kind == db.KindFile {
			content = t.FileName
			if t.SavedPath != "" {
				content += " -> " + t.SavedPath
			}
		}
		rows = append(rows, []string{
			time.Unix(t.CreatedAt, 0).Format(time.DateTime),
			string(t.Direction),
			string(t.Kind),
			t.Peer,
			content,
			humanize.IBytes(uint64(t.Size)),
		})
	}
	return rows
}

func connectionRows(conns []db.Connection) pterm.TableData {
	rows := pterm.TableData{{"When", "Address", "Peer ID", "Inbound"}}
	for _, c := range conns {
		rows = append(rows, []string{
			time.Unix(c.ConnectedAt, 0).Format(time.DateTime),
			c.IPAddress,
			c.PeerID,
			strconv.FormatBool(c.Inbound),
		})
	}
	return rows
}
