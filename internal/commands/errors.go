package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to handler failures so hosts can route sync errors
// without string matching.
const (
	codeInvalidMessage = "SYNC_MESSAGE_INVALID"
	codeSyncCanceled   = "SYNC_CANCELED"
	codeSyncTimeout    = "SYNC_DEADLINE_EXCEEDED"
	codeContextFailure = "SYNC_CONTEXT_FAILURE"
	codeSyncFailed     = "SYNC_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "sync message rejected").
		WithTextCode(codeInvalidMessage)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "sync canceled").
			WithTextCode(codeSyncCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "sync deadline exceeded").
			WithTextCode(codeSyncTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "sync context failure").
			WithTextCode(codeContextFailure)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "sync failed").
		WithTextCode(codeSyncFailed)
}
