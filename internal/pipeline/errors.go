package pipeline

import "errors"

// Sentinel errors for the quotation rewriter.
var (
	ErrUnbalancedBraces        = errors.New("unbalanced braces in attribution argument")
	ErrUnterminatedEnvironment = errors.New("missing closing marker")
	ErrNestedEnvironment       = errors.New("nested environment not supported")
)
