package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alnah/go-texprep"
	"github.com/alnah/go-texprep/internal/config"
	"github.com/alnah/go-texprep/internal/fileutil"
	"github.com/alnah/go-texprep/internal/hints"
	"github.com/alnah/go-texprep/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("expected exactly two arguments: <input> <output>")
	ErrReadInput   = errors.New("failed to read input file")
	ErrCreateDir   = errors.New("failed to create output directory")
	ErrWriteOutput = errors.New("failed to write output file")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Positional argument positions.
const (
	inputArgIndex  = 0
	outputArgIndex = 1
	requiredArgs   = 2
)

// runMain parses args, runs the tool and returns the process exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "texprep: %v%s\n", err, hints.ForUsage())
		return ExitUsage
	}

	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "texprep %s\n", Version)
		return ExitSuccess
	}

	cfg, err := loadConfig(flags, env)
	if err == nil {
		err = run(positional, flags, cfg, env)
	}
	if err != nil {
		if errors.Is(err, ErrUsage) {
			printUsage(env.Stderr)
			fmt.Fprintln(env.Stderr)
		}
		fmt.Fprintf(env.Stderr, "texprep: %v%s\n", err, hintFor(err, flags, cfg))
		return exitCodeFor(err)
	}

	return ExitSuccess
}

// loadConfig returns the rules file named by --config, or the defaults.
func loadConfig(flags *cliFlags, env *Environment) (*config.Config, error) {
	if flags.config == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(flags.config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flags.verbose {
		if path, resolveErr := config.ResolvePath(flags.config); resolveErr == nil {
			fmt.Fprintf(env.Stderr, "config: %s\n", path)
		}
	}
	return cfg, nil
}

// run reads the input, preprocesses it and writes the output.
// Nothing is written when preprocessing fails.
func run(positional []string, flags *cliFlags, cfg *config.Config, env *Environment) error {
	if flags.printRules {
		out, err := yamlutil.Encode(cfg)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	if len(positional) != requiredArgs {
		return fmt.Errorf("%w: got %d", ErrUsage, len(positional))
	}
	inputPath := positional[inputArgIndex]
	outputPath := positional[outputArgIndex]

	start := env.Now()

	content, err := os.ReadFile(inputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	p := texprep.NewPreprocessor(texprep.WithRules(cfg.Rules()))
	res, err := p.Preprocess(string(content))
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	if flags.verbose {
		printStats(env, res.Stats)
	}

	out := []byte(res.Text)
	written, err := writeOutput(outputPath, out, flags.force)
	if err != nil {
		return err
	}

	if flags.verbose {
		fmt.Fprintf(env.Stderr, "size: %d -> %d bytes\n", len(content), len(out))
		fmt.Fprintf(env.Stderr, "blake3: %s\n", fileutil.Digest(out))
		fmt.Fprintf(env.Stderr, "done in %v\n", env.Now().Sub(start).Round(time.Microsecond))
	}

	if !flags.quiet {
		if written {
			fmt.Fprintf(env.Stdout, "Created %s\n", outputPath)
		} else {
			fmt.Fprintf(env.Stdout, "Unchanged %s\n", outputPath)
		}
	}

	return nil
}

// writeOutput creates missing parent directories and writes data to path.
// An existing file with identical content is left untouched unless force
// is set; it reports whether the file was written.
func writeOutput(path string, data []byte, force bool) (bool, error) {
	if !force && fileutil.HasContent(path, data) {
		return false, nil
	}

	if err := fileutil.EnsureParentDir(path, dirPermissions); err != nil {
		return false, fmt.Errorf("%w: %w", ErrCreateDir, err)
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}

	return true, nil
}

// printStats reports per-stage rewrite counts.
func printStats(env *Environment, s texprep.Stats) {
	typos := "none"
	if s.TyposNormalized {
		typos = "fixed"
	}
	fmt.Fprintf(env.Stderr, "typos: %s\n", typos)
	fmt.Fprintf(env.Stderr, "quotations: %d rewritten\n", s.Quotations)
	fmt.Fprintf(env.Stderr, "citations: %d rewritten\n", s.Citations)
	fmt.Fprintf(env.Stderr, "graphics paths: %d normalized\n", s.GraphicsPaths)
	fmt.Fprintf(env.Stderr, "graphics extensions: %d forced\n", s.GraphicsForced)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, flags *cliFlags, cfg *config.Config) string {
	envName := config.DefaultConfig().Environment.Name
	if cfg != nil {
		envName = cfg.Environment.Name
	}

	switch {
	case errors.Is(err, texprep.ErrUnbalancedBraces):
		return hints.ForUnbalancedBraces(envName)
	case errors.Is(err, texprep.ErrUnterminatedEnvironment):
		return hints.ForUnterminated(envName)
	case errors.Is(err, texprep.ErrNestedEnvironment):
		return hints.ForNested(envName)
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(flags.config))
	case errors.Is(err, ErrCreateDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
