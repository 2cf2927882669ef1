package distribute

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gomlx/nbody-scatter/pkg/kernel"
	"github.com/pkg/errors"
)

// ReadFiles reads sourcePath and chargePath in the whitespace-separated
// one-record-per-line format original_source/serial.cpp's Vec/double stream
// operators produce: each source line holds "x y z", each charge line a
// single float64. It is the file-based counterpart to Generate, used when
// the master is given input files instead of a -seed.
func ReadFiles(sourcePath, chargePath string) (source []kernel.Point, charge []float64, err error) {
	source, err = readPoints(sourcePath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading source file %q", sourcePath)
	}
	charge, err = readFloats(chargePath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading charge file %q", chargePath)
	}
	if len(source) != len(charge) {
		return nil, nil, errors.Errorf("source file has %d points but charge file has %d charges", len(source), len(charge))
	}
	return source, charge, nil
}

func readPoints(path string) ([]kernel.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var points []kernel.Point
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		var p kernel.Point
		if _, err := fmt.Sscan(line, &p.X, &p.Y, &p.Z); err != nil {
			return nil, errors.Wrapf(err, "line %d: %q", lineNo, line)
		}
		points = append(points, p)
	}
	return points, scanner.Err()
}

func readFloats(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var values []float64
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		var v float64
		if _, err := fmt.Sscan(line, &v); err != nil {
			return nil, errors.Wrapf(err, "line %d: %q", lineNo, line)
		}
		values = append(values, v)
	}
	return values, scanner.Err()
}

// WriteFiles writes source and charge in the same format ReadFiles expects.
// It backs the -gen-only standalone mode that supplements
// original_source/generate.cpp.
func WriteFiles(sourcePath, chargePath string, source []kernel.Point, charge []float64) error {
	if err := writeLines(sourcePath, len(source), func(w *bufio.Writer, i int) error {
		_, err := fmt.Fprintf(w, "%v %v %v\n", source[i].X, source[i].Y, source[i].Z)
		return err
	}); err != nil {
		return errors.Wrapf(err, "writing source file %q", sourcePath)
	}
	if err := writeLines(chargePath, len(charge), func(w *bufio.Writer, i int) error {
		_, err := fmt.Fprintf(w, "%v\n", charge[i])
		return err
	}); err != nil {
		return errors.Wrapf(err, "writing charge file %q", chargePath)
	}
	return nil
}

func writeLines(path string, n int, writeLine func(w *bufio.Writer, i int) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	for i := 0; i < n; i++ {
		if err := writeLine(w, i); err != nil {
			return err
		}
	}
	return w.Flush()
}
