// Package driver implements the Iteration Driver (C6, §4.6): the TS and
// STS main loops that drive the kernel across the ring-shifted blocks and,
// for STS, the transpose exchange that halves the arithmetic.
package driver

import (
	"github.com/gomlx/nbody-scatter/internal/mpi"
	"github.com/gomlx/nbody-scatter/pkg/kernel"
	"github.com/gomlx/nbody-scatter/pkg/ringshift"
	"github.com/gomlx/nbody-scatter/pkg/timing"
	"github.com/gomlx/nbody-scatter/pkg/topology"
	"github.com/gomlx/nbody-scatter/pkg/transpose"
)

// TSLastIter is last_iter = ceil(num_teams / C) - 1, the Team Scatter loop
// bound.
func TSLastIter(numTeams, teamSize int) int { return ceilDiv(numTeams, teamSize) - 1 }

// STSLastIter is last_iter = ceil((num_teams + 1) / (2*C)) - 1, the
// Symmetric Team Scatter loop bound.
func STSLastIter(numTeams, teamSize int) int { return ceilDiv(numTeams+1, 2*teamSize) - 1 }

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// RunTS drives the Team Scatter loop (§4.6 TS variant). xI/cI/rI are this
// rank's team block; row is its row_comm handle. rI accumulates in place.
func RunTS[S, Ch, R any](ker kernel.Kernel[S, Ch, R], row *mpi.Rank, co topology.Coord, xI []S, cI []Ch, rI []R, h *timing.Harness) {
	numTeams, teamSize, trank := co.NumTeams, co.C, co.TRank

	xJ := cloneSlice(xI)
	cJ := cloneSlice(cI)
	h.Track(timing.Shift, func() { ringshift.InitialSkew(row, trank, numTeams, xJ, cJ) })

	h.Track(timing.Computation, func() {
		if trank == 0 {
			ker.Diagonal(xJ, cJ, rI)
		} else {
			ker.Asymmetric(xJ, cJ, xI, rI)
		}
	})

	lastIter := TSLastIter(numTeams, teamSize)
	remainder := numTeams % teamSize
	for k := 1; k <= lastIter; k++ {
		h.Track(timing.Shift, func() { ringshift.Step(row, teamSize, numTeams, xJ, cJ) })
		if k < lastIter || remainder == 0 || trank < remainder {
			h.Track(timing.Computation, func() { ker.Asymmetric(xJ, cJ, xI, rI) })
		}
	}
}

// RunSTS drives the Symmetric Team Scatter loop (§4.6 STS variant). world
// is used for the transpose Sendrecv (the peer can be in any team); row for
// the ring shift. add combines a received contribution into rI element by
// element, since R is not otherwise constrained to support +=.
func RunSTS[S, Ch, R any](ker kernel.Kernel[S, Ch, R], add func(dst *R, src R), world, row *mpi.Rank, co topology.Coord, xI []S, cI []Ch, rI []R, h *timing.Harness) {
	numTeams, teamSize, team, trank := co.NumTeams, co.C, co.Team, co.TRank
	lastIter := STSLastIter(numTeams, teamSize)

	xJ := cloneSlice(xI)
	cJ := cloneSlice(cI)
	h.Track(timing.Shift, func() { ringshift.InitialSkew(row, trank, numTeams, xJ, cJ) })

	rJ := make([]R, len(rI))
	rDst := mpi.ProcNull

	if trank == 0 {
		h.Track(timing.Computation, func() { ker.Diagonal(xI, cI, rI) })
	} else {
		iDst, peerRank := transpose.Peer(0, team, trank, numTeams, teamSize)
		if iDst == lastIter {
			h.Track(timing.Computation, func() { ker.Asymmetric(xJ, cJ, xI, rI) })
		} else {
			zeroSlice(rJ)
			h.Track(timing.Computation, func() { ker.Symmetric(xJ, cJ, rJ, xI, cI, rI) })
			rDst = peerRank
		}
	}

	for k := 1; k <= lastIter; k++ {
		iPrimeOffset := 0
		if trank != 0 {
			iPrimeOffset = 1
		}
		iSrc := numTeams/teamSize - (k - 1) - iPrimeOffset

		rSrc := mpi.ProcNull
		if iSrc != lastIter {
			_, srcRank := transpose.Peer(iSrc, team, trank, numTeams, teamSize)
			if srcRank != co.Rank {
				rSrc = srcRank
			}
		}

		tempRI := make([]R, len(rI))
		h.Track(timing.SendReceive, func() { mpi.SendRecv(world, rDst, rJ, rSrc, tempRI) })
		if rSrc != mpi.ProcNull {
			for i := range rI {
				add(&rI[i], tempRI[i])
			}
		}

		h.Track(timing.Shift, func() { ringshift.Step(row, teamSize, numTeams, xJ, cJ) })

		iDst, peerRank := transpose.Peer(k, team, trank, numTeams, teamSize)
		if iDst == lastIter {
			h.Track(timing.Computation, func() { ker.Asymmetric(xJ, cJ, xI, rI) })
			rDst = mpi.ProcNull
		} else {
			zeroSlice(rJ)
			h.Track(timing.Computation, func() { ker.Symmetric(xJ, cJ, rJ, xI, cI, rI) })
			rDst = peerRank
		}
	}
}

func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func zeroSlice[T any](s []T) {
	var zero T
	for i := range s {
		s[i] = zero
	}
}
