package cli

import (
	"github.com/pterm/pterm"
	"github.com/rudransh-shrivastava/papercups/internal/session"
)

// printEntries prints log entries from index from onward and returns the new
// high-water mark.
func printEntries(s *session.Session, from int) int {
	log := s.Log()
	for _, e := range log[from:] {
		stamp := e.At.Format("15:04:05")
		switch e.Direction {
		case session.Sent:
			pterm.Printfln("%s %s %s", pterm.Gray(stamp), pterm.LightYellow("you:"), e.Text)
		case session.Received:
			pterm.Printfln("%s %s %s", pterm.Gray(stamp), pterm.LightCyan("peer:"), e.Text)
		default:
			pterm.Printfln("%s %s", pterm.Gray(stamp), pterm.Gray(e.Text))
		}
	}
	return len(log)
}
