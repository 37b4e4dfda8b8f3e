// ABOUTME: CLI entry point for termctl, a diagnostics tool over the terminal package
// ABOUTME: Parses flags, builds the Terminal and dispatches to the size, raw, watch and tui commands

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/termctl/internal/termfix"

	"golang.org/x/term"

	tclog "github.com/mauromedda/termctl/internal/log"
	"github.com/mauromedda/termctl/pkg/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("termctl %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, args, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args cliArgs, stdin io.Reader, stdout *os.File) error {
	if args.verbose {
		tclog.SetLevel(tclog.LevelDebug)
	}

	opts := []terminal.Option{terminal.WithPollInterval(args.poll)}
	if args.input != "" {
		opts = append(opts, terminal.WithInputDevice(args.input))
	}
	if args.output != "" {
		opts = append(opts, terminal.WithOutputDevice(args.output))
	}
	t := terminal.New(opts...)
	st := newStyles(term.IsTerminal(int(stdout.Fd())))

	tclog.Debug("command %q args %v", args.command, args.rest)

	switch args.command {
	case "size":
		format, err := parseSizeFlags(args.rest, os.Stderr)
		if err != nil {
			return err
		}
		size, err := t.Size()
		if err != nil {
			return fmt.Errorf("querying terminal size: %w", err)
		}
		return writeSize(stdout, st, size, format)
	case "raw":
		return runRaw(ctx, t, stdin, stdout, st)
	case "watch":
		return runWatch(ctx, t, stdout, st)
	case "tui":
		return runTUI(ctx, t)
	default:
		return fmt.Errorf("unknown command %q", args.command)
	}
}
