// Package shell runs the interactive read-eval-print session over a
// command dispatcher.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/rolodex/internal/command"
)

// Session is one interactive run of the contact manager.
type Session interface {
	Run(ctx context.Context) error
}

// Options configures session creation.
type Options struct {
	Input      io.Reader // Command source (default: os.Stdin).
	Output     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain line mode even if TTY.
	Prompt     string
	Greeting   string
	Farewell   string
}

// New returns a TUI session when stdout is a TTY, or a plain line-mode
// session otherwise. ForcePlain overrides TTY detection.
func New(opts Options, d *command.Dispatcher) Session {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Output) {
		return &PlainSession{opts: opts, dispatcher: d}
	}

	return &TUISession{opts: opts, dispatcher: d}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsSentinel reports whether the line requests session exit. The check
// runs before command parsing; only a bare "exit" or "close" counts.
func IsSentinel(line string) bool {
	line = strings.TrimSpace(line)
	return strings.EqualFold(line, "exit") || strings.EqualFold(line, "close")
}

// PlainSession reads lines, dispatches them, and prints each reply as a
// text block. It serves piped input as well as dumb terminals.
type PlainSession struct {
	opts       Options
	dispatcher *command.Dispatcher
}

// Run loops until the sentinel, end of input, or context cancellation.
// Dispatch never fails; the only errors here are I/O.
func (s *PlainSession) Run(ctx context.Context) error {
	out := s.opts.Output
	_, _ = fmt.Fprintln(out, s.opts.Greeting)

	scanner := bufio.NewScanner(s.opts.Input)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, _ = fmt.Fprint(out, s.opts.Prompt)
		if !scanner.Scan() {
			// End of input acts like the sentinel.
			_, _ = fmt.Fprintln(out, s.opts.Farewell)
			return scanner.Err()
		}

		line := scanner.Text()
		if IsSentinel(line) {
			_, _ = fmt.Fprintln(out, s.opts.Farewell)
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		kind, args := command.Parse(line)
		_, _ = fmt.Fprintln(out, s.dispatcher.Dispatch(kind, args))
	}
}

// TUISession renders the session with a Bubble Tea terminal UI: a text
// input, the command transcript, and a live contact pane.
// Falls back to PlainSession if the TUI program fails to start.
type TUISession struct {
	opts       Options
	dispatcher *command.Dispatcher
}

// Run starts the Bubble Tea program. If it fails to initialize, the
// session falls back to plain line mode on the same reader and writer.
func (s *TUISession) Run(ctx context.Context) error {
	model := NewModel(s.dispatcher, ModelOptions{
		Prompt:   s.opts.Prompt,
		Greeting: s.opts.Greeting,
		Farewell: s.opts.Farewell,
	})
	p := tea.NewProgram(model, tea.WithOutput(s.opts.Output), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		plain := &PlainSession{opts: s.opts, dispatcher: s.dispatcher}
		return plain.Run(ctx)
	}
	return nil
}
