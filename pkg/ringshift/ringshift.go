// Package ringshift implements the Ring Shift Engine (C5, §4.5): the
// stride-s rotation of a team's traveling (x_J, c_J) blocks around
// row_comm that both the initial skew and the per-iteration advance of the
// Iteration Driver (C6) are built from.
package ringshift

import "github.com/gomlx/nbody-scatter/internal/mpi"

// Shift rotates xJ and cJ by stride within row, per §4.5: send to
// (team - stride) mod numTeams, receive from (team + stride) mod numTeams,
// for both buffers. row.Me() is the caller's row_comm-rank, which §4.2
// guarantees equals its team index.
func Shift[S, Ch any](row *mpi.Rank, stride, numTeams int, xJ []S, cJ []Ch) {
	team := row.Me()
	dst := mod(team-stride, numTeams)
	src := mod(team+stride, numTeams)
	mpi.SendRecvReplace(row, xJ, dst, src)
	mpi.SendRecvReplace(row, cJ, dst, src)
}

// InitialSkew is the stride = trank shift every process performs once,
// before the iteration loop starts: afterwards, the block held by
// (team=t, trank=c) originates from team (t + c) mod numTeams.
func InitialSkew[S, Ch any](row *mpi.Rank, trank, numTeams int, xJ []S, cJ []Ch) {
	Shift(row, trank, numTeams, xJ, cJ)
}

// Step is the stride = C shift performed once per iteration of the driver
// loop: after the k-th call, the block originates from team
// (t + c + k·C) mod numTeams.
func Step[S, Ch any](row *mpi.Rank, teamSize, numTeams int, xJ []S, cJ []Ch) {
	Shift(row, teamSize, numTeams, xJ, cJ)
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
