package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all command-line flags.
type cliFlags struct {
	config     string
	quiet      bool
	verbose    bool
	force      bool
	printRules bool
	version    bool
	help       bool
}

// parseFlags parses args (including the program name) and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("texprep", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "rules file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show stage statistics and timing")
	fs.BoolVar(&f.force, "force", false, "write output even if unchanged")
	fs.BoolVar(&f.printRules, "print-rules", false, "print effective rules as YAML and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if len(args) == 0 {
		return f, nil, nil
	}
	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
