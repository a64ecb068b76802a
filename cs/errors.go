// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

package cs

// ErrorKind identifies a kind of error that can be used to define new errors
// via const SomeError = cs.ErrorKind("something").
type ErrorKind string

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error kinds shared across packages.
const (
	// ErrBadArguments is returned when a task's argument bag is missing a
	// required value or is the wrong shape. It is always produced before any
	// native call executes.
	ErrBadArguments = ErrorKind("invalid task arguments")
	// ErrUnknownFunc is returned for a task whose function tag has no
	// registered handler.
	ErrUnknownFunc = ErrorKind("unknown task function")
	// ErrBadHandle is returned when a task references a native handle that
	// this worker did not mint, or that has been released.
	ErrBadHandle = ErrorKind("unknown native handle")
	// ErrWalletClosed is returned by every facade method called after Close.
	ErrWalletClosed = ErrorKind("wallet closed")
)

// Error pairs an error with details.
type Error struct {
	wrapped error
	detail  string
}

// Error satisfies the error interface, combining the wrapped error message
// with the details.
func (e Error) Error() string {
	return e.wrapped.Error() + ": " + e.detail
}

// Unwrap returns the wrapped error, allowing errors.Is and errors.As to work.
func (e Error) Unwrap() error {
	return e.wrapped
}

// NewError wraps the provided Error with details in a Error, facilitating the
// use of errors.Is and errors.As via errors.Unwrap.
func NewError(err error, detail string) Error {
	return Error{
		wrapped: err,
		detail:  detail,
	}
}
