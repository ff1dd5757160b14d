package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/command"
	"github.com/smileynet/rolodex/internal/config"
	"github.com/smileynet/rolodex/internal/shell"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for rolodex.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Shell   ShellCmd         `cmd:"" default:"withargs" help:"Start the interactive contact manager session."`
}

// ShellCmd starts the interactive session.
type ShellCmd struct {
	Plain bool `help:"Force plain line-mode output even if stdout is a TTY." default:"false"`
}

// Run executes the shell command.
func (s *ShellCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	// Apply CLI flag overrides.
	if s.Plain {
		cfg.Session.Plain = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess := buildSession(cfg, os.Stdin, os.Stdout)
	return sess.Run(ctx)
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/rolodex/config.yaml"),
		".rolodex/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSession wires an empty book, its dispatcher, and a session from
// config, enabling testable wiring.
func buildSession(cfg *config.Config, in io.Reader, out io.Writer) shell.Session {
	b := book.New()
	d := command.NewDispatcher(b, command.WithWindowDays(cfg.Book.WindowDays))

	return shell.New(shell.Options{
		Input:      in,
		Output:     out,
		ForcePlain: cfg.Session.Plain,
		Prompt:     cfg.Session.Prompt,
		Greeting:   cfg.Session.Greeting,
		Farewell:   cfg.Session.Farewell,
	}, d)
}

// Exit codes.
const (
	exitSuccess = 0
	exitSetup   = 2
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.Vars{"version": version + " " + commit + " " + date})
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitSetup)
	}
	os.Exit(exitSuccess)
}
