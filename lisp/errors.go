package lisp

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ContractError is returned for a contract violation: a
// caller-correctable mistake such as passing a non-number to a
// comparison predicate. It never aborts the process; callers receive
// it as an ordinary error value.
type ContractError struct {
	Op    string
	Cause error
	frame xerrors.Frame
}

// NewContractError returns a ContractError identifying the violating
// operation and wrapping cause, capturing the caller's frame the way
// golang.org/x/xerrors does for its own wrapped errors.
func NewContractError(op string, cause error) *ContractError {
	return &ContractError{Op: op, Cause: cause, frame: xerrors.Caller(1)}
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *ContractError) Unwrap() error { return e.Cause }

func (e *ContractError) Format(f fmt.State, c rune) { xerrors.FormatError(e, f, c) }

func (e *ContractError) FormatError(p xerrors.Printer) error {
	p.Print(e.Op, ": ", e.Cause)
	e.frame.Format(p)
	return nil
}

// InternalInvariantError marks a fatal, embedder-caused breach of a
// core invariant — e.g. reaching a Custom hash table through
// the identity get/set path instead of the raw dispatch hooks. The
// core panics with a value of this type rather than returning an
// error, since the condition indicates a bug in the embedder, not a
// recoverable runtime failure.
type InternalInvariantError struct {
	Op      string
	Message string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("internal invariant breach in %s: %s", e.Op, e.Message)
}

func panicInvariant(op, message string) {
	panic(&InternalInvariantError{Op: op, Message: message})
}
