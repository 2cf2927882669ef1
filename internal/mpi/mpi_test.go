package mpi

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestBcast(t *testing.T) {
	world := NewWorld(4)
	var mu sync.Mutex
	got := make(map[int][]int)

	var g errgroup.Group
	for i := 0; i < world.Size(); i++ {
		i := i
		g.Go(func() error {
			r := world.Of(i)
			buf := make([]int, 3)
			if i == 0 {
				copy(buf, []int{1, 2, 3})
			}
			Bcast(r, buf, 0)
			mu.Lock()
			got[i] = append([]int{}, buf...)
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for i := 0; i < world.Size(); i++ {
		require.Equal(t, []int{1, 2, 3}, got[i])
	}
}

func TestScatterGather(t *testing.T) {
	world := NewWorld(4)
	full := []int{10, 20, 30, 40}
	var mu sync.Mutex
	gathered := make([]int, 4)

	var g errgroup.Group
	for i := 0; i < world.Size(); i++ {
		i := i
		g.Go(func() error {
			r := world.Of(i)
			chunk := make([]int, 1)
			Scatter(r, full, chunk, 0)
			require.Equal(t, full[i], chunk[0])

			chunk[0] *= 2
			var out []int
			if i == 0 {
				out = make([]int, 4)
			}
			Gather(r, chunk, out, 0)
			if i == 0 {
				mu.Lock()
				copy(gathered, out)
				mu.Unlock()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, []int{20, 40, 60, 80}, gathered)
}

func TestReduceSum(t *testing.T) {
	world := NewWorld(5)
	var sum float64
	var g errgroup.Group
	for i := 0; i < world.Size(); i++ {
		i := i
		g.Go(func() error {
			r := world.Of(i)
			s := ReduceScalar(r, float64(i+1), 0)
			if i == 0 {
				sum = s
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 15.0, sum) // 1+2+3+4+5
}

func TestSendRecvReplaceRing(t *testing.T) {
	// A ring shift by 1: every rank should end up holding the value that
	// started one position to its right (comm-rank i+1).
	world := NewWorld(4)
	var mu sync.Mutex
	result := make([]int, 4)

	var g errgroup.Group
	for i := 0; i < world.Size(); i++ {
		i := i
		g.Go(func() error {
			r := world.Of(i)
			buf := []int{i}
			dst := (i - 1 + world.Size()) % world.Size()
			src := (i + 1 + world.Size()) % world.Size()
			SendRecvReplace(r, buf, dst, src)
			mu.Lock()
			result[i] = buf[0]
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, []int{1, 2, 3, 0}, result)
}

func TestSplitTopology(t *testing.T) {
	// P=4, C=2: team = rank/2, trank = rank%2.
	world := NewWorld(4)
	const teamSize = 2
	var mu sync.Mutex
	teamRank := make(map[int]int)
	rowRank := make(map[int]int)

	var g errgroup.Group
	for rank := 0; rank < world.Size(); rank++ {
		rank := rank
		g.Go(func() error {
			r := world.Of(rank)
			team := rank / teamSize
			trank := rank % teamSize

			teamR := r.SplitRank(team, rank)
			rowR := r.SplitRank(trank, rank)

			mu.Lock()
			teamRank[rank] = teamR.Me()
			rowRank[rank] = rowR.Me()
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Within team 0 (ranks 0,1), comm-ranks should be 0,1 in rank order.
	require.Equal(t, 0, teamRank[0])
	require.Equal(t, 1, teamRank[1])
	// row_comm groups by trank; row-comm-rank equals team index (P3).
	require.Equal(t, 0, rowRank[0]) // rank 0: team 0, trank 0
	require.Equal(t, 1, rowRank[2]) // rank 2: team 1, trank 0
	require.Equal(t, 0, rowRank[1]) // rank 1: team 0, trank 1
	require.Equal(t, 1, rowRank[3]) // rank 3: team 1, trank 1
}
