package main

import "fmt"

// exitError carries the process exit code for a failed console command.
// silent suppresses the message for failures already reported to the user.
type exitError struct {
	code   int
	err    error
	silent bool
}

// failf wraps a formatted failure in an exitError with the given code.
func failf(code int, format string, args ...any) *exitError {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

func (e *exitError) Error() string {
	if e == nil {
		return ""
	}
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit %d", e.code)
}

func (e *exitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}
