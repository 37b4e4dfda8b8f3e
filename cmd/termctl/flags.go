// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Global flags pick devices, polling and verbosity; the first argument names the command

package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/mauromedda/termctl/internal/tty"
)

type cliArgs struct {
	verbose bool
	version bool
	input   string
	output  string
	poll    time.Duration
	command string
	rest    []string
}

const usageText = `usage: termctl [flags] <command> [command flags]

commands:
  size    print the terminal size (-format text|json|yaml)
  raw     enter raw mode and describe each keystroke until q or Ctrl-C
  watch   print every resize until interrupted
  tui     show the size in a Bubble Tea view driven by the resize watcher

flags:
`

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("termctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	fs.BoolVar(&args.verbose, "v", false, "Enable debug logging")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.StringVar(&args.input, "in", "", "Input device (default: controlling terminal)")
	fs.StringVar(&args.output, "out", "", "Output device (default: controlling terminal)")
	fs.DurationVar(&args.poll, "poll", tty.DefaultPollInterval, "Resize poll interval on platforms without a resize signal")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	if args.version {
		return args, nil
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return args, fmt.Errorf("missing command")
	}
	args.command = fs.Arg(0)
	args.rest = fs.Args()[1:]
	return args, nil
}

// parseSizeFlags handles the flags of the size command.
func parseSizeFlags(argv []string, stderr io.Writer) (string, error) {
	fs := flag.NewFlagSet("termctl size", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "text", "Output format: text, json or yaml")
	if err := fs.Parse(argv); err != nil {
		return "", err
	}
	switch *format {
	case "text", "json", "yaml":
		return *format, nil
	default:
		return "", fmt.Errorf("unknown format %q", *format)
	}
}
