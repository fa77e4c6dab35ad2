package texprep

import (
	"fmt"
	"strings"

	"github.com/alnah/go-texprep/internal/pipeline"
)

// Preprocessor runs the normalization stages over whole documents.
// It holds no per-document state and may be reused.
type Preprocessor struct {
	rules       Rules
	rejectEmpty bool
}

// NewPreprocessor creates a Preprocessor with DefaultRules.
func NewPreprocessor(opts ...Option) *Preprocessor {
	p := &Preprocessor{rules: pipeline.DefaultRules()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rules returns the rules in effect.
func (p *Preprocessor) Rules() Rules {
	return p.rules
}

// Preprocess applies all stages in order.
// Order matters: quotations are rewritten after their delimiters are fixed,
// and extensions are forced only on already normalized paths.
func (p *Preprocessor) Preprocess(content string) (*Result, error) {
	if p.rejectEmpty && strings.TrimSpace(content) == "" {
		return nil, ErrEmptyDocument
	}

	var stats Stats

	fixed := pipeline.NormalizeEnvironmentTypos(content, p.rules)
	stats.TyposNormalized = fixed != content
	content = fixed

	content, n, err := pipeline.RewriteChapquotes(content, p.rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	stats.Quotations = n

	content, stats.Citations = pipeline.NormalizeCitations(content, p.rules)
	content, stats.GraphicsPaths = pipeline.NormalizeGraphicsPaths(content, p.rules)
	content, stats.GraphicsForced = pipeline.ForceGraphicsExtension(content, p.rules)

	return &Result{Text: content, Stats: stats}, nil
}

// Preprocess normalizes content with DefaultRules.
func Preprocess(content string) (string, error) {
	res, err := NewPreprocessor().Preprocess(content)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
