package pipeline

// Rules holds the literal parameters of every stage.
// The zero value is not usable; start from DefaultRules.
type Rules struct {
	// Environment is the custom quotation environment name.
	Environment string
	// EnvironmentAliases are known misspellings of Environment.
	EnvironmentAliases []string

	// CiteFrom is rewritten to CiteTo when directly followed by "{".
	CiteFrom string
	CiteTo   string

	// GraphicsSourceDirs are the directory prefixes folded into GraphicsTargetDir.
	GraphicsSourceDirs []string
	GraphicsTargetDir  string
	// GraphicsExtensions are stripped from normalized paths (without dot).
	GraphicsExtensions []string
	// ForcedExtension is appended to every path under GraphicsTargetDir.
	ForcedExtension string
}

// DefaultRules returns the rules used for the manuscript build.
func DefaultRules() Rules {
	return Rules{
		Environment:        "chapquote",
		EnvironmentAliases: []string{"chap quote"},
		CiteFrom:           "cite",
		CiteTo:             "citet",
		GraphicsSourceDirs: []string{"Chapters", "chapters"},
		GraphicsTargetDir:  "figures",
		GraphicsExtensions: []string{"pdf", "png", "jpg", "jpeg", "svg"},
		ForcedExtension:    "png",
	}
}

// beginMarker returns the opening marker of an environment, without argument.
func beginMarker(env string) string {
	return `\begin{` + env + `}`
}

// endMarker returns the closing marker of an environment.
func endMarker(env string) string {
	return `\end{` + env + `}`
}
