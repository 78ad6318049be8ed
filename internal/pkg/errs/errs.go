package errs

import (
	cr "github.com/cockroachdb/errors"
)

// Thin wrapper over cockroachdb/errors so call sites never import it
// directly. Mark attaches a sentinel for errors.Is classification
// without changing the message chain.

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}
