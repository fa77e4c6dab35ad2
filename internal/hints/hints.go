// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// ForUnbalancedBraces returns a hint for an attribution argument that never closes.
func ForUnbalancedBraces(env string) string {
	return format(`every "{" in \begin{` + env + `}{...} needs a matching "}"; escaped \{ counts too`)
}

// ForUnterminated returns a hint for a quotation missing its closing marker.
func ForUnterminated(env string) string {
	return format(`add \end{` + env + `} or check its spelling`)
}

// ForNested returns a hint for a quotation opened inside another one.
func ForNested(env string) string {
	return format(`close the previous \begin{` + env + `} before opening another`)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config with a path and creating a config in the user config dir.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/rules.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/texprep") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory is writable and not a file")
}

// ForUsage returns a hint pointing to the help flag.
func ForUsage() string {
	return format("run 'texprep --help' for usage")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
