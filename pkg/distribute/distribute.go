// Package distribute implements the Data Distributor (C4, §4.4): building
// or reading the master's full source/charge arrays, broadcasting the
// problem size, and the two-stage master→team-leader scatter→team broadcast
// that gets every process its (x_I, c_I) block.
package distribute

import (
	"github.com/gomlx/nbody-scatter/internal/mpi"
	"github.com/gomlx/nbody-scatter/pkg/topology"
)

// BroadcastSizes broadcasts N and C from the master (world rank 0) to every
// rank, per §4.4. On the master, n and c are read (already holding the
// values to send); on every other rank, they are overwritten with the
// broadcast values.
func BroadcastSizes(world *mpi.Rank, n, c *int) {
	buf := []int{*n, *c}
	mpi.Bcast(world, buf, 0)
	*n, *c = buf[0], buf[1]
}

// Scatter performs the two-stage distribution of §4.4: on team leaders, a
// row_comm scatter of N/num_teams-length chunks from the master's full
// source/charge; then, on every rank, a team_comm broadcast from leader to
// team. n is the already-broadcast problem size; source/charge are only
// meaningful (non-nil, length n) on the master.
func Scatter[S, Ch any](co topology.Coord, comms topology.Comms, n int, source []S, charge []Ch) (xJ []S, cJ []Ch) {
	blockLen := co.BlockLen(n)
	xJ = make([]S, blockLen)
	cJ = make([]Ch, blockLen)

	if co.IsLeader() {
		mpi.Scatter(comms.Row, source, xJ, 0)
		mpi.Scatter(comms.Row, charge, cJ, 0)
	}
	mpi.Bcast(comms.Team, xJ, 0)
	mpi.Bcast(comms.Team, cJ, 0)
	return xJ, cJ
}
