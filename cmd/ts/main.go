// Command ts runs the Team Scatter all-pairs interaction engine over a
// simulated world of P ranks (§6.2).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gomlx/nbody-scatter/internal/mpi"
	"github.com/gomlx/nbody-scatter/pkg/distribute"
	"github.com/gomlx/nbody-scatter/pkg/runner"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagTeamSize = flag.Int("c", 1, "team size C; must divide P, with C^2 <= P")
	flagProcs    = flag.Int("p", 1, "number of simulated ranks P")
	flagNoCheck  = flag.Bool("nocheck", false, "skip the verification pass against the direct O(N^2) reference")
	flagGenOnly  = flag.Bool("gen-only", false, "write NUMPOINTS generated points/charges to -source/-charge and exit")
	flagSeed     = flag.Int64("seed", distribute.DefaultSeed, "random seed for data generation")
	flagVerbose  = flag.Bool("v", false, "print a humanized timing report in addition to the tab-separated one")
	flagSource   = flag.String("source", "", "source points file to read instead of generating (requires -charge)")
	flagCharge   = flag.String("charge", "", "charge file to read instead of generating (requires -source)")
	flagData     = flag.String("data", "data", "directory for the verifier's result cache")
)

func run() error {
	klog.InitFlags(nil)
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		return errors.New("usage: ts NUMPOINTS [-c TEAMSIZE] [-p PROCS] [-nocheck]")
	}
	var n int
	if _, err := fmt.Sscan(args[0], &n); err != nil {
		return errors.Wrapf(err, "parsing NUMPOINTS %q", args[0])
	}
	if (*flagSource == "") != (*flagCharge == "") {
		return errors.New("-source and -charge must both be given, or neither")
	}

	if *flagGenOnly {
		if *flagSource == "" || *flagCharge == "" {
			return errors.New("-gen-only requires -source and -charge")
		}
		return runner.GenerateFiles(*flagSeed, n, *flagSource, *flagCharge)
	}

	cfg := runner.Config{
		N:          n,
		P:          *flagProcs,
		C:          *flagTeamSize,
		Seed:       *flagSeed,
		SourcePath: *flagSource,
		ChargePath: *flagCharge,
		NoCheck:    *flagNoCheck,
		Verbose:    *flagVerbose,
		DataDir:    *flagData,
		STS:        false,
		Label:      "ts",
		Out:        os.Stdout,
	}
	if err := runner.Run(cfg); err != nil {
		if ae, ok := err.(mpi.AbortError); ok {
			klog.Exitf("%s", ae.Error())
		}
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
