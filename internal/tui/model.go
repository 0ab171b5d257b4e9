// Package tui is the full-screen chat front-end.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rudransh-shrivastava/papercups/internal/gate"
	"github.com/rudransh-shrivastava/papercups/internal/session"
)

type Model struct {
	ctx     context.Context
	session *session.Session

	input    textinput.Model
	progress progress.Model
	sending  *transfer

	// yes is the highlighted button of a YesNo modal
	yes bool

	width  int
	height int
	err    error
}

func New(ctx context.Context, s *session.Session) *Model {
	ti := textinput.New()
	ti.Placeholder = "message, or ?connect <ip> / ?file <path> / ?disconnect / ?quit"
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	return &Model{
		ctx:      ctx,
		session:  s,
		input:    ti,
		progress: progress.New(progress.WithSolidFill(Accent)),
		yes:      true,
	}
}

// Err is the fatal error that ended the program, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("papercups"), textinput.Blink, tick())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 8
		m.progress.Width = msg.Width - 20
		return m, nil

	case tickMsg:
		if _, err := m.session.Poll(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		if m.session.Quit() {
			return m, tea.Quit
		}
		return m, tick()

	case connectResultMsg:
		m.session.ConnectResult(msg.target, msg.err)
		return m, nil

	case fileSentMsg:
		m.session.FileResult(msg.file, msg.err)
		m.sending = nil
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.session.RequestQuit()
			return m, tea.Quit
		}

		if d, ok := m.session.Pending(); ok {
			return m, m.handleModalKey(d, msg)
		}

		if msg.Type == tea.KeyEnter {
			line := m.input.Value()
			m.input.Reset()
			return m, m.submit(line)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleModalKey(d gate.Decision, msg tea.KeyMsg) tea.Cmd {
	if d.Mode() == gate.Acknowledge {
		switch msg.String() {
		case "enter", "o", "O", "esc":
			return m.resolve(true)
		}
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		return m.resolve(true)
	case "n", "N", "esc":
		return m.resolve(false)
	case "left", "right", "tab", "shift+tab", "h", "l":
		m.yes = !m.yes
	case "enter":
		return m.resolve(m.yes)
	}
	return nil
}

func (m *Model) resolve(yes bool) tea.Cmd {
	m.yes = true
	if _, err := m.session.Resolve(yes); err != nil {
		m.err = err
		return tea.Quit
	}
	return nil
}

func (m *Model) submit(line string) tea.Cmd {
	in := session.ParseInput(line)

	switch in.Kind {
	case session.InputQuit:
		m.session.RequestQuit()
		return tea.Quit

	case session.InputConnect:
		m.session.Note("connecting to " + in.Arg + "...")
		return connectCmd(m.ctx, m.session.Network(), in.Arg)

	case session.InputDisconnect:
		if err := m.session.Disconnect(); err != nil {
			m.err = err
			return tea.Quit
		}

	case session.InputFile:
		if m.sending != nil {
			m.session.Note("already sending " + m.sending.name)
			return nil
		}
		f, err := session.LoadFile(in.Arg)
		if err != nil {
			m.session.FileResult(nil, err)
			return nil
		}
		m.sending = newTransfer(f)
		return sendFileCmd(m.session.Network(), f, m.sending)

	case session.InputInvalid:
		m.session.Note(in.Arg)

	default:
		if in.Arg != "" {
			// failures are already in the log
			_ = m.session.SendText(in.Arg)
		}
	}
	return nil
}
