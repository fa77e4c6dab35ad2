package texprep

import "github.com/alnah/go-texprep/internal/pipeline"

// Rules holds the literal names used by the stages.
type Rules = pipeline.Rules

// DefaultRules returns the rules for the standard manuscript layout:
// chapquote quotations, \cite to \citet, Chapters/ images to figures/*.png.
func DefaultRules() Rules {
	return pipeline.DefaultRules()
}

// Stats counts the rewrites made by each stage.
type Stats struct {
	Quotations      int // chapquote environments rewritten
	Citations       int // \cite commands renamed
	GraphicsPaths   int // image paths moved to the target directory
	GraphicsForced  int // image paths given the forced extension
	TyposNormalized bool
}

// Result is the outcome of a successful preprocessing run.
type Result struct {
	Text  string
	Stats Stats
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithRules replaces the default rules.
func WithRules(r Rules) Option {
	return func(p *Preprocessor) {
		p.rules = r
	}
}

// WithRejectEmpty makes Preprocess fail with ErrEmptyDocument on empty or
// whitespace-only input instead of returning it unchanged.
func WithRejectEmpty() Option {
	return func(p *Preprocessor) {
		p.rejectEmpty = true
	}
}
