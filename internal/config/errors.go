package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigExists is returned by Init when a configuration file is already present.
	ErrConfigExists = errors.New("configuration file already exists")

	// ErrConfigNotFound is returned by Load when there is no configuration file.
	ErrConfigNotFound = errors.New("configuration file not found")
)

// ParseError reports a configuration document that is not valid TOML or does
// not match the expected schema.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a well-formed document whose enums break an invariant.
type ValidationError struct {
	Enum   string
	Member string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Enum == "":
		return e.Reason
	case e.Member == "":
		return fmt.Sprintf("enum %q: %s", e.Enum, e.Reason)
	default:
		return fmt.Sprintf("enum %q member %q: %s", e.Enum, e.Member, e.Reason)
	}
}
