// Package reduceteam implements the Reducer & Gather stage (C7, §4.7):
// the intra-team sum-reduce of each process's local result block to its
// team leader, followed by the row_comm gather of every team's block into
// the master's full result array.
package reduceteam

import (
	"github.com/gomlx/nbody-scatter/internal/mpi"
	"github.com/gomlx/nbody-scatter/pkg/topology"
)

// Reduce sum-reduces rI across team to the leader (team_comm-rank 0),
// returning the team total there; on non-leaders the returned slice is not
// meaningful. add combines two R values element-wise, since R carries no
// arithmetic constraint of its own.
func Reduce[R any](team *mpi.Rank, rI []R, add func(dst *R, src R)) []R {
	out := make([]R, len(rI))
	mpi.Reduce(team, rI, out, 0, add)
	return out
}

// Gather collects every team's leader block (length B) into master's full
// result array (length num_teams*B), ordered team 0's block, then team 1's,
// and so on, per §4.7. Only meaningful on team leaders; non-leaders should
// not call it (their row_comm is the one for their own trank, whose root is
// not the world master).
func Gather[R any](row *mpi.Rank, teamResult []R, fullResult []R) {
	mpi.Gather(row, teamResult, fullResult, 0)
}

// ReduceAndGather composes Reduce and Gather for the common case: every
// rank calls it, team leaders' contribution flows on to the row_comm
// gather, non-leaders just participate in the intra-team reduce. fullResult
// is only meaningful on the world master.
func ReduceAndGather[R any](co topology.Coord, team, row *mpi.Rank, rI []R, add func(dst *R, src R), fullResult []R) {
	teamResult := Reduce(team, rI, add)
	if co.IsLeader() {
		Gather(row, teamResult, fullResult)
	}
}
