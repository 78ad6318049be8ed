package errs

import "errors"

// ErrDomainValidation classifies entity constructor failures so the
// handler layer can map them to 400 without knowing each sentinel.
var ErrDomainValidation = errors.New("domain validation error")
