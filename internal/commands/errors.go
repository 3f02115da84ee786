package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command errors.
const (
	CodeValidation      = "CAPA_COMMAND_INVALID"
	CodeCanceled        = "CAPA_COMMAND_CANCELED"
	CodeDeadline        = "CAPA_COMMAND_DEADLINE"
	CodeContext         = "CAPA_COMMAND_CONTEXT"
	CodeExecutionFailed = "CAPA_COMMAND_FAILED"
)

// unlessWrapped leaves nil and already categorised errors alone.
func unlessWrapped(err error, wrap func(error) error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return wrap(err)
}

func wrapValidationError(err error) error {
	return unlessWrapped(err, func(err error) error {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "command message is invalid").
			WithTextCode(CodeValidation)
	})
}

func wrapContextError(err error) error {
	return unlessWrapped(err, func(err error) error {
		message, code := "command context error", CodeContext
		switch {
		case errors.Is(err, context.Canceled):
			message, code = "command cancelled", CodeCanceled
		case errors.Is(err, context.DeadlineExceeded):
			message, code = "command deadline exceeded", CodeDeadline
		}
		return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
	})
}

func wrapExecuteError(err error) error {
	return unlessWrapped(err, func(err error) error {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
			WithTextCode(CodeExecutionFailed)
	})
}
