// Package pipeline implements the LaTeX normalization stages.
//
// Each stage takes a whole document and returns the whole transformed
// document:
//   - Environment typo normalization (\begin{chap quote} -> \begin{chapquote})
//   - Attributed quotation rewriting (chapquote -> quote + flushright)
//   - Citation style normalization (\cite{ -> \citet{)
//   - Graphics path normalization (Chapters/x.pdf -> figures/x)
//   - Graphics extension forcing (figures/x -> figures/x.png)
//
// The stages are independent functions. Their order is a correctness
// dependency and is fixed by the root texprep package: citation and path
// fixes assume quotations were already rewritten, and extension forcing
// assumes paths were already normalized.
//
// Only the quotation rewriter can fail. It matches the attribution argument
// with an explicit brace-depth counter, since regular expressions cannot
// match arbitrarily nested braces. All other stages are total functions.
package pipeline
