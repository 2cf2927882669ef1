package topology

import (
	"testing"

	"github.com/gomlx/nbody-scatter/internal/mpi"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestValidatePreconditions(t *testing.T) {
	require.NoError(t, Validate(16, 4, 1))
	require.Error(t, Validate(15, 4, 1), "N=15 P=4 must reject: N mod P != 0")
	require.Error(t, Validate(16, 4, 3), "C=3 P=4 must reject: P mod C != 0")
	require.Error(t, Validate(16, 8, 4), "C=4 P=8 must reject: C^2 > P")
}

// TestTopologyConsistency is P3: for every rank, team*C + trank == rank, and
// the row_comm-rank equals the team index.
func TestTopologyConsistency(t *testing.T) {
	const p, c = 8, 2
	var g errgroup.Group
	world := mpi.NewWorld(p)
	rowCommRanks := make([]int, p)

	for rank := 0; rank < p; rank++ {
		rank := rank
		g.Go(func() error {
			co := Derive(rank, p, c)
			require.Equal(t, rank, co.Team*c+co.TRank)

			comms := BuildComms(world.Of(rank), co)
			rowCommRanks[rank] = comms.Row.Me()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for rank := 0; rank < p; rank++ {
		co := Derive(rank, p, c)
		require.Equal(t, co.Team, rowCommRanks[rank])
	}
}
