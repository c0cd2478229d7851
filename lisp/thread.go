package lisp

// Thread is the ambient execution context threaded through the core's
// long-running traversals (equal, hash, render, pool collection). It
// carries only a single cooperative abort probe; CPU/memory/time/IO
// accounting and the rest of resource sandboxing belong to a bytecode
// VM layered on top of this core, not to the core itself.
//
// A nil *Thread is valid everywhere a *Thread is accepted and behaves
// as "never abort".
type Thread struct {
	// Abort is consulted periodically by render, equal, hash, and
	// collect. It must be a side-effect-free probe. When it returns
	// true, the in-flight operation stops and returns a
	// partial/failure result without panicking: equal and render
	// return ErrAborted, hash returns 0, collect reclaims nothing.
	Abort func() bool
}

// aborted reports whether th requests that the in-flight operation
// stop. A nil thread, or one with no probe installed, never aborts.
func aborted(th *Thread) bool {
	return th != nil && th.Abort != nil && th.Abort()
}

// ErrAborted is returned by long-running operations that observed the
// thread's abort probe return true mid-traversal.
var ErrAborted = newSentinelError("operation aborted")

type sentinelError string

func newSentinelError(s string) error { return sentinelError(s) }
func (e sentinelError) Error() string { return string(e) }
