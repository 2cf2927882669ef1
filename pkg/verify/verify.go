// Package verify implements the Verifier (C8, §4.8): master-only
// comparison of a gathered result against a direct O(N²) reference,
// cached to disk under a filename derived from (kernel tag, N, seed) so
// repeated runs don't recompute it.
package verify

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/gomlx/nbody-scatter/pkg/kernel"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/floats"
	"k8s.io/klog/v2"
)

// CacheFilename builds the canonical "data/<kernel-tag>_n<N>_s<seed>.txt"
// cache path from §6.3/§4.8.
func CacheFilename(dataDir, kernelTag string, n int, seed int64) string {
	return filepath.Join(dataDir, fmt.Sprintf("%s_n%d_s%d.txt", kernelTag, n, seed))
}

// Exact is the O(N²) reference result, either loaded from cache or freshly
// computed.
type Exact struct {
	Values []float64
	Cached bool
}

// Load reads path as N whitespace-separated float64 values, one per line,
// returning (nil, nil) if the file does not exist.
func Load(path string, n int) (*Exact, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening cache %q", path)
	}
	defer func() { _ = f.Close() }()

	values := make([]float64, 0, n)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		var v float64
		if _, err := fmt.Sscan(line, &v); err != nil {
			return nil, errors.Wrapf(err, "parsing cache %q", path)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading cache %q", path)
	}
	if len(values) != n {
		return nil, errors.Errorf("cache %q holds %d values, want %d", path, len(values), n)
	}
	return &Exact{Values: values, Cached: true}, nil
}

// Save writes exact to path, one value per line. Failure here is
// informational per §7 ("write failure on result cache is tolerated: warn
// and continue") — callers should log and proceed, not abort.
func Save(path string, values []float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating cache directory for %q", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating cache %q", path)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	for _, v := range values {
		if _, err := fmt.Fprintf(w, "%.17g\n", v); err != nil {
			return errors.Wrapf(err, "writing cache %q", path)
		}
	}
	return w.Flush()
}

// Direct computes the O(N²) reference result via a single diagonal p2p call
// over the full arrays (§4.8). When showProgress is set and n >= 2000, an
// indeterminate progress spinner brackets the call.
func Direct[S, Ch any](ker kernel.Kernel[S, Ch, float64], source []S, charge []Ch, showProgress bool) []float64 {
	n := len(source)
	result := make([]float64, n)
	if !showProgress || n < 2000 {
		ker.Diagonal(source, charge, result)
		return result
	}

	// Diagonal doesn't expose per-pair progress, so this is an indeterminate
	// spinner bracketing the one O(N^2) call rather than a counted bar.
	bar := progressbar.Default(-1, "computing direct O(N^2) reference")
	ker.Diagonal(source, charge, result)
	_ = bar.Finish()
	return result
}

// RelativeError computes the RMS of per-element relative differences
// between exact and result (§4.8): sqrt(sum_i ((exact_i-result_i)/exact_i)^2 / m),
// where the sum and m, the count of terms, run over the elements with a
// nonzero exact_i. Elements where exact_i is zero are skipped (a zero
// self-interaction target contributes no relative-error signal).
func RelativeError(exact, result []float64) float64 {
	n := len(exact)
	diff := make([]float64, n)
	copy(diff, exact)
	floats.Sub(diff, result)

	sumSq, count := 0.0, 0
	for i, e := range exact {
		if e == 0 {
			continue
		}
		rel := diff[i] / e
		sumSq += rel * rel
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(sumSq / float64(count))
}

// Verify is the master-side entry point: load the cache if present, else
// compute the direct reference and attempt to save it; report the relative
// error against result either way. dataDir defaults to "data" by
// convention, same as §6.3.
func Verify[S, Ch any](ker kernel.Kernel[S, Ch, float64], kernelTag string, dataDir string, seed int64, source []S, charge []Ch, result []float64) (relErr float64, err error) {
	n := len(result)
	path := CacheFilename(dataDir, kernelTag, n, seed)

	exact, err := Load(path, n)
	if err != nil {
		return 0, err
	}
	if exact == nil {
		values := Direct(ker, source, charge, true)
		if saveErr := Save(path, values); saveErr != nil {
			klog.Warningf("could not write result cache %q: %v", path, saveErr)
		}
		exact = &Exact{Values: values}
	}
	return RelativeError(exact.Values, result), nil
}
