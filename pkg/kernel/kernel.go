// Package kernel defines the external per-pair evaluator contract (§4.1,
// §6.1) that the distributed engine in pkg/driver treats as an opaque
// collaborator, plus one concrete implementation (InvSq) used as the
// default kernel for the ts/sts executables and the test suite.
package kernel

// Kernel evaluates the interaction between blocks of points. S is the
// shared source/target element type, C the charge element type, R the
// result element type. Using a single type parameter for both source and
// target enforces I4 (STS requires source_type == target_type) at compile
// time for any Kernel used with the symmetric driver.
//
// Accumulation into r / rX / rT is additive; zeroing the output buffers
// before a call is the caller's responsibility (§4.1).
type Kernel[S, C, R any] interface {
	// Diagonal computes r[i] += sum_{j != i} K(x[i], x[j])*c[j] for the
	// self-interaction of a block against itself, exploiting K(a,b) =
	// K(b,a) so every unordered pair is evaluated once.
	Diagonal(x []S, c []C, r []R)

	// Asymmetric computes r[i] += sum_j K(t[i], x[j])*c[j]: the
	// off-diagonal block (x, t) evaluated in one direction only.
	Asymmetric(x []S, c []C, t []S, r []R)

	// Symmetric computes both rT[i] += K(t[i],x[j])*c[j] and
	// rX[j] += K(x[j],t[i])*cT[i] in a single pass, the Newton's-third-law
	// optimization STS uses for an off-diagonal block assigned to one
	// process. STS passes its traveling block as x with rX = r_J, zeroed
	// before the call and then shipped to the transpose owner, and its home
	// block as t with rT = r_I, which keeps accumulating across calls.
	Symmetric(x []S, c []C, rX []R, t []S, cT []C, rT []R)
}
