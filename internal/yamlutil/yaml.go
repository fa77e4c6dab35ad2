// Package yamlutil wraps YAML decoding and encoding of rules files so the
// underlying YAML library stays an implementation detail.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits rules file input (default 64KB).
var MaxInputSize = 64 << 10

var (
	ErrEmptyData      = errors.New("yamlutil: empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Decode parses data into v, rejecting fields v does not declare.
func Decode(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode renders v as block-style YAML with indented sequences.
func Encode(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
