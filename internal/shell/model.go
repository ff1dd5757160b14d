package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/rolodex/internal/command"
)

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// maxTranscript caps retained transcript lines; older lines are dropped.
const maxTranscript = 500

// Model is the Bubble Tea model for the interactive session. It manages
// a two-pane layout: a live contact list on the left and the command
// transcript with the input prompt on the right.
type Model struct {
	dispatcher *command.Dispatcher
	input      textinput.Model
	transcript []string
	farewell   string
	width      int
	height     int
	done       bool
}

// ModelOptions configures session model creation.
type ModelOptions struct {
	Prompt   string
	Greeting string
	Farewell string
}

// NewModel creates a session Model with a focused text input.
func NewModel(d *command.Dispatcher, opts ModelOptions) Model {
	ti := textinput.New()
	ti.Prompt = opts.Prompt
	ti.Focus()

	return Model{
		dispatcher: d,
		input:      ti,
		transcript: []string{opts.Greeting},
		farewell:   opts.Farewell,
	}
}

// Transcript returns the retained transcript lines.
func (m Model) Transcript() []string {
	return append([]string(nil), m.transcript...)
}

// Done reports whether the session has ended.
func (m Model) Done() bool {
	return m.done
}

// Init starts the input cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		_, rightWidth := PaneWidths(msg.Width)
		m.input.Width = rightWidth - borderChrome - len(m.input.Prompt) - 1
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m.finish()
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the current input line and appends the exchange to
// the transcript. Empty lines re-prompt without dispatching.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.SetValue("")

	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m = m.appendLines(m.input.Prompt + line)
	if IsSentinel(line) {
		return m.finish()
	}

	kind, args := command.Parse(line)
	reply := m.dispatcher.Dispatch(kind, args)
	for _, rl := range strings.Split(reply, "\n") {
		m = m.appendLines(replyStyle.Render(rl))
	}
	return m, nil
}

// finish appends the farewell and quits.
func (m Model) finish() (tea.Model, tea.Cmd) {
	m = m.appendLines(m.farewell)
	m.done = true
	return m, tea.Quit
}

// appendLines adds transcript lines, dropping the oldest past the cap.
func (m Model) appendLines(lines ...string) Model {
	m.transcript = append(append([]string(nil), m.transcript...), lines...)
	if over := len(m.transcript) - maxTranscript; over > 0 {
		m.transcript = m.transcript[over:]
	}
	return m
}

// View renders the two-pane layout.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftWidth, rightWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	leftStyle := UnfocusedBorder().
		Width(leftWidth - borderChrome).
		Height(contentHeight)
	rightStyle := FocusedBorder().
		Width(rightWidth - borderChrome).
		Height(contentHeight)

	leftPane := leftStyle.Render(m.viewContacts(contentHeight))
	rightPane := rightStyle.Render(m.viewTranscript(contentHeight))

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// contentHeight returns the usable height for pane content.
func (m Model) contentHeight() int {
	h := m.height - borderChrome
	if h < 1 {
		return 1
	}
	return h
}

// viewContacts renders the contact pane: one line per record, insertion
// order, trimmed to the pane height.
func (m Model) viewContacts(height int) string {
	records := m.dispatcher.Book().Records()

	lines := []string{titleStyle.Render(fmt.Sprintf("Contacts (%d)", len(records)))}
	if len(records) == 0 {
		lines = append(lines, mutedText.Render("No contacts saved."))
	}
	for _, rec := range records {
		line := rec.Name()
		if phones := rec.Phones(); len(phones) > 0 {
			line += " " + phones[0].String()
			if len(phones) > 1 {
				line += fmt.Sprintf(" (+%d)", len(phones)-1)
			}
		}
		if bd, ok := rec.Birthday(); ok {
			line += " " + mutedText.Render(bd.String())
		}
		lines = append(lines, line)
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// viewTranscript renders the transcript tail with the input line at the
// bottom of the pane.
func (m Model) viewTranscript(height int) string {
	tailHeight := height - 1
	if tailHeight < 0 {
		tailHeight = 0
	}

	lines := m.transcript
	if len(lines) > tailHeight {
		lines = lines[len(lines)-tailHeight:]
	}

	view := strings.Join(lines, "\n")
	if view != "" {
		view += "\n"
	}
	if !m.done {
		view += m.input.View()
	}
	return view
}
