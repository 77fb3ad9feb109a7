package script

import "errors"

var (
	// ErrUnknownCommand is returned for a command name the runner does not know.
	ErrUnknownCommand = errors.New("script: unknown command")

	// ErrArguments is returned when a command has a wrong number of integer arguments.
	ErrArguments = errors.New("script: invalid arguments")
)
