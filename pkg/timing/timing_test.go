package timing

import (
	"bytes"
	"testing"
	"time"

	"github.com/gomlx/nbody-scatter/internal/mpi"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestTrackAccumulates(t *testing.T) {
	h := New()
	h.Track(Computation, func() { time.Sleep(time.Millisecond) })
	h.Track(Computation, func() { time.Sleep(time.Millisecond) })
	require.GreaterOrEqual(t, h.Total(Computation), 2*time.Millisecond)
	require.Zero(t, h.Total(Shift))
}

func TestReduceAverageAcrossWorld(t *testing.T) {
	const p = 4
	world := mpi.NewWorld(p)
	var g errgroup.Group
	avgs := make([]time.Duration, p)

	for rank := 0; rank < p; rank++ {
		rank := rank
		g.Go(func() error {
			h := New()
			h.totals[Computation] = time.Duration(rank+1) * time.Second
			avgs[rank] = h.ReduceAverage(world.Of(rank), Computation)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// (1+2+3+4)/4 = 2.5s, only meaningful at master (rank 0).
	require.Equal(t, 2500*time.Millisecond, avgs[0])
}

func TestReportPrint(t *testing.T) {
	h := New()
	world := mpi.NewWorld(1)
	h.totals[Computation] = time.Second
	report := NewReport(h, world.Of(0), "ts", 2*time.Second, false)

	var buf bytes.Buffer
	report.Print(&buf)
	require.Contains(t, buf.String(), "Label\tComputation\tSplit\tShift\tReduce\tWallTime")
	require.Contains(t, buf.String(), "ts\t1s\t0s\t0s\t0s\t2s")
}

func TestReportPrintSTSIncludesSendReceive(t *testing.T) {
	h := New()
	world := mpi.NewWorld(1)
	report := NewReport(h, world.Of(0), "sts", time.Second, true)

	var buf bytes.Buffer
	report.Print(&buf)
	require.Contains(t, buf.String(), "SendReceive")
}
