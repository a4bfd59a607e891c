package compiler

import (
	"errors"
	"fmt"
)

// =============================================================================
// Errors
// =============================================================================

// ErrMissingNodeConfig means a node referenced a user-supplied config
// file that does not exist. Fatal; the offending path is reported.
var ErrMissingNodeConfig = errors.New("node config file does not exist")

// MissingConfigError names the config file path a node referenced but
// which is absent on disk.
type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("configuration file %s does not exist", e.Path)
}

func (e *MissingConfigError) Unwrap() error {
	return ErrMissingNodeConfig
}
