package topology

import "github.com/pkg/errors"

// Error strings match the wording of the original teamscatter.cpp/symmetric.cpp
// MPI_Abort messages, since the verifier/operator-facing text is part of
// what the CLI is expected to reproduce.
var (
	errPointsMustDivideByP     = errors.New("the number of processors must divide the number of points")
	errTeamsizeMustDivideP     = errors.New("the teamsize (c) must divide the total number of processors (p)")
	errTeamsizeSquaredTooLarge = errors.New("the teamsize squared (c^2) must be less than or equal to the number of processors (p)")
)
