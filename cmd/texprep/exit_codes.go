package main

import (
	"errors"
	"os"

	"github.com/alnah/go-texprep"
	"github.com/alnah/go-texprep/internal/config"
)

// Exit codes for texprep CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid arguments, flags or config
	ExitIO      = 3 // File not found, permission denied
	ExitParse   = 4 // Malformed document
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Parse errors (exit 4)
	if errors.Is(err, texprep.ErrParse) {
		return ExitParse
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidRule) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrCreateDir) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
