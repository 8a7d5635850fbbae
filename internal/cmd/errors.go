package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a-jentleman/pseudo-enum/internal/config"
)

// Exit codes returned by the pseudo-enum CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure, such as an output file that could not be written.
	ExitFailure = 1

	// ExitConfigError indicates a configuration error (already exists, missing, malformed or invalid).
	ExitConfigError = 2

	// ExitUsage indicates the command line itself was wrong.
	ExitUsage = 3
)

// UsageErrorKind tells apart the ways a command line can be rejected.
type UsageErrorKind int

const (
	MissingCommand UsageErrorKind = iota + 1
	UnknownCommand
	UnexpectedArgument
	InvalidFlag
)

// UsageError is returned when the command line cannot be dispatched.
type UsageError struct {
	Kind    UsageErrorKind
	Command string
	Err     error
}

func (e *UsageError) Error() string {
	switch e.Kind {
	case MissingCommand:
		return "no command given"
	case UnknownCommand:
		return fmt.Sprintf("unknown command %q", e.Command)
	case UnexpectedArgument:
		return fmt.Sprintf("%s does not take arguments", e.Command)
	default:
		return e.Err.Error()
	}
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// noArgs rejects positional arguments with a UsageError.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &UsageError{Kind: UnexpectedArgument, Command: cmd.Name()}
	}
	return nil
}

// exitCode maps err to the code the process exits with.
func exitCode(err error) int {
	var (
		usageErr      *UsageError
		parseErr      *config.ParseError
		validationErr *config.ValidationError
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.Is(err, config.ErrConfigExists),
		errors.Is(err, config.ErrConfigNotFound),
		errors.As(err, &parseErr),
		errors.As(err, &validationErr):
		return ExitConfigError
	default:
		return ExitFailure
	}
}

// hint returns a follow-up suggestion for err, or "".
func hint(err error) string {
	var usageErr *UsageError
	switch {
	case errors.As(err, &usageErr):
		return "run 'pseudo-enum --help' to list the available commands"
	case errors.Is(err, config.ErrConfigNotFound):
		return "run 'pseudo-enum init' to create a configuration file"
	case errors.Is(err, config.ErrConfigExists):
		return "edit the existing file, or remove it and run init again"
	default:
		return ""
	}
}
