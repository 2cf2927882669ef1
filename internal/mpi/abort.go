package mpi

import "github.com/gomlx/nbody-scatter/internal/except"

// AbortError is the error every rank observes after Abort unwinds its
// blocked rendezvous: the formatted message a caller eventually logs with
// klog.Exitf at the process boundary. It is an alias for except.AbortSignal
// so internal/mpi's abort vocabulary and except's unwind mechanism share
// one type instead of wrapping it at the package boundary.
type AbortError = except.AbortSignal

// Abort raises an AbortError in the calling goroutine, which is recovered
// (via except.Try, see pkg/runner) and returned up to the process
// boundary, where it is logged with klog.Exitf and the process exits —
// reached through panic/recover instead of a direct os.Exit so tests can
// observe the failure without killing the test binary. Only the calling
// goroutine unwinds: ranks blocked on a rendezvous in other goroutines are
// not woken.
func (r *Rank) Abort(format string, args ...any) {
	except.Raise(format, args...)
}

// Abort is the comm-rank-less form, usable before any Rank handle exists
// (e.g. while still validating flags on the would-be master, before
// mpi.NewWorld has even been called).
func Abort(format string, args ...any) {
	except.Raise(format, args...)
}
