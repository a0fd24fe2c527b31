// Package main is the entry point for the commentator tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/commentator/internal/app"
	"github.com/dshills/commentator/internal/engine/cursor"
	"github.com/dshills/commentator/internal/grammar"
	"github.com/dshills/commentator/internal/planner"
	"github.com/dshills/commentator/internal/plugin/lua"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// selectionList collects repeated -at flags.
type selectionList []cursor.Selection

func (l *selectionList) String() string {
	parts := make([]string, len(*l))
	for i, sel := range *l {
		parts[i] = app.FormatSelection(sel)
	}
	return strings.Join(parts, ",")
}

func (l *selectionList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		sel, err := app.ParseSelection(part)
		if err != nil {
			return err
		}
		*l = append(*l, sel)
	}
	return nil
}

type cliOptions struct {
	app.Options
	intent       string
	at           selectionList
	write        bool
	tui          bool
	listGrammars bool
	showVersion  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "commentator %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}
	lua.Version = version

	if !opts.tui {
		opts.LogOutput = stderr
	}
	application, err := app.New(opts.Options)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	switch {
	case opts.listGrammars:
		listGrammars(stdout, application.Registry())
		return 0
	case opts.tui:
		if err := application.RunTerminal(); err != nil && !errors.Is(err, app.ErrQuit) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	return runBatch(application, opts, stdout, stderr)
}

// runBatch runs one intent over the document and prints or saves the result.
// The exit status is 0 when the engine handled the event and 3 when it
// declined.
func runBatch(a *app.Application, opts cliOptions, stdout, stderr io.Writer) int {
	intent, err := planner.ParseIntent(opts.intent)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	handled := a.RunIntent(intent, opts.at)
	doc := a.Document()

	cursors := make([]string, 0, len(doc.Selections()))
	for _, sel := range doc.Selections() {
		cursors = append(cursors, app.FormatSelection(sel))
	}
	fmt.Fprintf(stderr, "%s: handled=%v cursors=%s\n", intent, handled, strings.Join(cursors, ","))

	if opts.write {
		if err := doc.Save(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	} else {
		fmt.Fprint(stdout, doc.Text())
		if !strings.HasSuffix(doc.Text(), "\n") {
			fmt.Fprintln(stdout)
		}
	}
	if !handled {
		return 3
	}
	return 0
}

func listGrammars(w io.Writer, reg *grammar.Registry) {
	for _, g := range reg.All() {
		var markers []string
		if g.HasLine() {
			markers = append(markers, g.LineMarker)
		}
		if g.HasBlock() {
			markers = append(markers, g.BlockStart+" "+g.BlockEnd)
		}
		nesting := ""
		if g.AllowsNesting {
			nesting = " (nesting)"
		}
		fmt.Fprintf(w, "%-12s %s%s\n", g.Language, strings.Join(markers, " | "), nesting)
	}
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("commentator", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.Language, "lang", "", "Language of FILE (default: detect from extension)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.ReadOnly, "readonly", false, "Open the file read-only")
	fs.StringVar(&opts.intent, "intent", "enter", "Intent to run in batch mode (enter, tab, inline)")
	fs.Var(&opts.at, "at", "Cursor LINE:COL or selection LINE:COL-LINE:COL, 1-based (repeatable)")
	fs.BoolVar(&opts.write, "w", false, "Write the result back to FILE instead of printing it")
	fs.BoolVar(&opts.tui, "tui", false, "Open FILE in the terminal editor")
	fs.BoolVar(&opts.listGrammars, "grammars", false, "List registered comment grammars")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "commentator - keystroke-driven comment formatting\n\n")
		fmt.Fprintf(stderr, "Usage: commentator [options] FILE\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  commentator -intent enter -at 3:12 main.go     Continue a comment\n")
		fmt.Fprintf(stderr, "  commentator -intent inline -at 1:1-9:1 -w x.py  Toggle lines 1-8 in place\n")
		fmt.Fprintf(stderr, "  commentator -tui main.go                       Edit interactively\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.LogLevel != "" {
		switch opts.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			return opts, fmt.Errorf("invalid log level %q", opts.LogLevel)
		}
	}

	switch fs.NArg() {
	case 0:
		if !opts.showVersion && !opts.listGrammars && !opts.tui {
			fmt.Fprintf(stderr, "Error: FILE is required in batch mode\n")
			fs.Usage()
			return opts, app.ErrNoFilePath
		}
	case 1:
		opts.File = fs.Arg(0)
	default:
		fmt.Fprintf(stderr, "Error: expected one FILE, got %d\n", fs.NArg())
		return opts, fmt.Errorf("too many files")
	}
	return opts, nil
}
