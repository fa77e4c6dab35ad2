package texprep

import (
	"errors"

	"github.com/alnah/go-texprep/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrParse         = errors.New("failed to parse document")
	ErrEmptyDocument = errors.New("document content cannot be empty")

	// Parse failures, always wrapped together with ErrParse.
	ErrUnbalancedBraces        = pipeline.ErrUnbalancedBraces
	ErrUnterminatedEnvironment = pipeline.ErrUnterminatedEnvironment
	ErrNestedEnvironment       = pipeline.ErrNestedEnvironment
)
