// Package texprep normalizes LaTeX manuscript markup before the manuscript
// is handed to a document converter such as Pandoc or Quarto.
//
// # Quick Start
//
//	out, err := texprep.Preprocess(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("build/book.tex", []byte(out), 0644)
//
// # Stages
//
// The document goes through these stages in a fixed order:
//
//  1. Environment typo normalization (\begin{chap quote} -> \begin{chapquote})
//  2. Attributed quotation rewriting (chapquote -> quote + flushright)
//  3. Citation style normalization (\cite{ -> \citet{)
//  4. Graphics path normalization (Chapters/x.pdf -> figures/x)
//  5. Graphics extension forcing (figures/x -> figures/x.png)
//
// The order is part of the contract: later stages assume the earlier ones
// ran. Only stage 2 can fail, on unbalanced braces in an attribution
// argument, on a missing closing marker, or on a quotation opened inside
// another one. A failure aborts the whole run; no half-transformed document
// is returned.
//
// # Configuration
//
// The literal names used by every stage come from pipeline rules. Override
// them with WithRules:
//
//	rules := texprep.DefaultRules()
//	rules.ForcedExtension = "webp"
//	p := texprep.NewPreprocessor(texprep.WithRules(rules))
//	res, err := p.Preprocess(src)
//
// Result.Stats reports how many rewrites each stage made.
package texprep
