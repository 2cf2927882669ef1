// Package runner wires C2–C9 together into one full ts/sts invocation,
// simulating Config.P ranks as goroutines within this process (the
// single-process runtime model), for reuse by both cmd/ts and cmd/sts.
package runner

import (
	"fmt"
	"io"
	"time"

	"github.com/gomlx/nbody-scatter/internal/except"
	"github.com/gomlx/nbody-scatter/internal/mpi"
	"github.com/gomlx/nbody-scatter/pkg/distribute"
	"github.com/gomlx/nbody-scatter/pkg/driver"
	"github.com/gomlx/nbody-scatter/pkg/kernel"
	"github.com/gomlx/nbody-scatter/pkg/reduceteam"
	"github.com/gomlx/nbody-scatter/pkg/timing"
	"github.com/gomlx/nbody-scatter/pkg/topology"
	"github.com/gomlx/nbody-scatter/pkg/verify"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Config is one ts/sts invocation's fully-resolved parameters (§6.2/§6.3).
type Config struct {
	N, P, C    int
	Seed       int64
	SourcePath string // empty: generate data from Seed instead of reading files
	ChargePath string
	NoCheck    bool
	Verbose    bool
	DataDir    string // default "data"
	STS        bool
	Label      string // report row label, e.g. "ts" or "sts"
	Out        io.Writer
}

func addFloat64(dst *float64, src float64) { *dst += src }

// Run executes one ts/sts invocation. A precondition violation (I1–I3)
// comes back as an mpi.AbortError; cmd/ts and cmd/sts route that to
// klog.Exitf and any other error to a plain os.Exit(1), per §7.
func Run(cfg Config) error {
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	source, charge, err := loadOrGenerate(cfg)
	if err != nil {
		return errors.Wrap(err, "loading source/charge data")
	}

	exc, caught := except.Try(func() {
		runDistributed(cfg, source, charge)
	})
	if caught {
		return exc
	}
	return nil
}

// GenerateFiles implements the supplemented -gen-only standalone mode
// (original_source/generate.cpp): it writes n generated points/charges to
// sourcePath/chargePath and returns, without running a distributed pass.
func GenerateFiles(seed int64, n int, sourcePath, chargePath string) error {
	source, charge := distribute.Generate(seed, n)
	return distribute.WriteFiles(sourcePath, chargePath, source, charge)
}

func loadOrGenerate(cfg Config) ([]kernel.Point, []float64, error) {
	if cfg.SourcePath != "" {
		return distribute.ReadFiles(cfg.SourcePath, cfg.ChargePath)
	}
	source, charge := distribute.Generate(cfg.Seed, cfg.N)
	return source, charge, nil
}

func runDistributed(cfg Config, source []kernel.Point, charge []float64) {
	if err := topology.Validate(cfg.N, cfg.P, cfg.C); err != nil {
		mpi.Abort("%v", err)
	}

	world := mpi.NewWorld(cfg.P)
	result := make([]float64, cfg.N)
	reports := make([]timing.Report, cfg.P)
	wallStart := time.Now()

	var g errgroup.Group
	for rank := 0; rank < cfg.P; rank++ {
		rank := rank
		g.Go(func() error {
			exc, caught := except.Try(func() {
				reports[rank] = runRank(cfg, world, rank, source, charge, result, wallStart)
			})
			if caught {
				return exc
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ae, ok := err.(mpi.AbortError); ok {
			except.Rethrow(ae)
		}
		klog.Exitf("transport failure: %v", err)
	}

	ker := kernel.InvSq{}
	if !cfg.NoCheck {
		relErr, err := verify.Verify[kernel.Point, float64](ker, ker.Tag(), cfg.DataDir, cfg.Seed, source, charge, result)
		if err != nil {
			klog.Warningf("verification failed: %v", err)
		} else {
			fmt.Fprintf(cfg.Out, "relative error: %.6e\n", relErr)
		}
	}

	report := reports[0]
	if cfg.Verbose {
		report.PrintVerbose(cfg.Out)
	} else {
		report.Print(cfg.Out)
	}
}

func runRank(cfg Config, world *mpi.Comm, rank int, source []kernel.Point, charge []float64, result []float64, wallStart time.Time) timing.Report {
	w := world.Of(rank)

	localN, localC := 0, 0
	if rank == 0 {
		localN, localC = cfg.N, cfg.C
	}
	h := timing.New()
	h.Track(timing.Split, func() { distribute.BroadcastSizes(w, &localN, &localC) })

	co := topology.Derive(rank, cfg.P, localC)
	var comms topology.Comms
	h.Track(timing.Split, func() { comms = topology.BuildComms(w, co) })

	var mySource []kernel.Point
	var myCharge []float64
	if rank == 0 {
		mySource, myCharge = source, charge
	}
	var xI []kernel.Point
	var cI []float64
	h.Track(timing.Split, func() { xI, cI = distribute.Scatter(co, comms, localN, mySource, myCharge) })

	rI := make([]float64, len(xI))
	ker := kernel.InvSq{}
	if cfg.STS {
		driver.RunSTS[kernel.Point, float64, float64](ker, addFloat64, w, comms.Row, co, xI, cI, rI, h)
	} else {
		driver.RunTS[kernel.Point, float64, float64](ker, comms.Row, co, xI, cI, rI, h)
	}

	h.Track(timing.Reduce, func() {
		reduceteam.ReduceAndGather(co, comms.Team, comms.Row, rI, addFloat64, result)
	})

	return timing.NewReport(h, w, cfg.Label, time.Since(wallStart), cfg.STS)
}
