// Package conf implements the configuration overlay engine: a base
// bitcoin.conf template plus a node's override string yields that node's
// resolved configuration file. Pure transforms over parsed INI documents;
// reading the template file is the only I/O and happens once per run.
package conf

import (
	"errors"
	"fmt"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrMissingBaseTemplate means the base configuration template could
	// not be read. Fatal for the whole compilation.
	ErrMissingBaseTemplate = errors.New("base configuration template is missing")

	// ErrMissingNetworkSection means the template lacks the section for
	// the network mode the compiler operates under.
	ErrMissingNetworkSection = errors.New("template is missing the network section")
)

// TemplateError wraps a template failure with the offending path.
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}
