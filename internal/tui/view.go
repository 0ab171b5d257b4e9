package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rudransh-shrivastava/papercups/internal/gate"
	"github.com/rudransh-shrivastava/papercups/internal/session"
)

const (
	helpChat  = "enter: send • ?connect <ip> • ?file <path> • ?disconnect • ctrl+c: quit"
	helpYesNo = "y/n: answer • ←/→/tab: choose • enter: confirm"
	helpAck   = "enter/o: ok"
)

func (m *Model) View() string {
	title := titleStyle.Render("papercups")
	status := statusStyle.Render(m.session.StatusLine())

	help := helpChat
	var body string

	if d, ok := m.session.Pending(); ok {
		body = m.renderModal(d)
		if d.Mode() == gate.Acknowledge {
			help = helpAck
		} else {
			help = helpYesNo
		}
	} else {
		var footer strings.Builder
		if m.sending != nil {
			footer.WriteString(fmt.Sprintf("sending %s\n%s\n\n", m.sending.name, m.progress.ViewAs(m.sending.percent())))
		}
		footer.WriteString(m.input.View())

		fixed := lipgloss.Height(title) + lipgloss.Height(status) + lipgloss.Height(footer.String()) + 3
		body = m.renderLog(m.height-fixed) + "\n" + footer.String()
	}

	if m.err != nil {
		body += "\n" + errorStyle.Render(m.err.Error())
	}

	return title + "\n" + status + "\n\n" + container.Render(body) + "\n" + helpStyle.Render(help)
}

func (m *Model) renderLog(lines int) string {
	entries := m.session.Log()
	if lines < 1 {
		lines = 1
	}
	if len(entries) > lines {
		entries = entries[len(entries)-lines:]
	}

	var b strings.Builder
	for i := 0; i < lines-len(entries); i++ {
		b.WriteByte('\n')
	}
	for _, e := range entries {
		b.WriteString(renderEntry(e))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderEntry(e session.Entry) string {
	stamp := timeStyle.Render(e.At.Format("15:04"))

	switch e.Direction {
	case session.Sent:
		return stamp + " " + sentStyle.Render(e.Direction.String()+":") + " " + e.Text
	case session.Received:
		return stamp + " " + recvStyle.Render(e.Direction.String()+":") + " " + e.Text
	default:
		return stamp + " " + systemStyle.Render(e.Direction.String()+" "+e.Text)
	}
}

func (m *Model) renderModal(d gate.Decision) string {
	var buttons string
	if d.Mode() == gate.Acknowledge {
		buttons = activeButtonStyle.Render("OK")
	} else {
		yes, no := buttonStyle, activeButtonStyle
		if m.yes {
			yes, no = activeButtonStyle, buttonStyle
		}
		buttons = lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("Yes"), "  ", no.Render("No"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, d.Prompt(), "", buttons)
	if n := m.session.PendingCount(); n > 1 {
		content += "\n\n" + systemStyle.Render(fmt.Sprintf("%d more waiting", n-1))
	}

	box := modalStyle.Render(content)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width-4, m.height-6, lipgloss.Center, lipgloss.Center, box)
}
