package domain

import (
	"errors"
	"fmt"
)

// DuplicateRuleError reports an attempt to register a rule id twice.
// Registry construction fails fast on it; a duplicate is never silently
// overwritten.
type DuplicateRuleError struct {
	ID string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %q is already registered", e.ID)
}

// InputError marks unrecoverable input problems, such as an unreadable
// root path. It aborts a run before any scanning begins.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unusable input path %q", e.Path)
	}
	return fmt.Sprintf("unusable input path %q: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// IsInputError reports whether err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
