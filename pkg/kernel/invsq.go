package kernel

import "gonum.org/v1/gonum/floats"

// Point is a 3-D coordinate, the source and target element type for InvSq.
type Point struct{ X, Y, Z float64 }

func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

func (p Point) normSq() float64 { return p.X*p.X + p.Y*p.Y + p.Z*p.Z }

// InvSq is the inverse-square interaction kernel K(a,b) = 1/|a-b|^2, with
// K(a,a) = 0. It is the kernel original_source/teamscatter.cpp and
// symmetric.cpp exercise, and the default Kernel[Point, float64, float64]
// wired into cmd/ts and cmd/sts.
type InvSq struct{}

// Tag identifies the kernel for the verifier's result-cache filename (§6.3).
func (InvSq) Tag() string { return "invsq" }

func (InvSq) eval(a, b Point) float64 {
	n2 := a.sub(b).normSq()
	if n2 == 0 {
		return 0
	}
	return 1 / n2
}

// Diagonal sweeps the upper triangle of the block and adds each K(a,b) value
// to both r[i] and r[j], the symmetry exploitation §4.1 requires; the
// skipped i==j term is exactly K(a,a) = 0.
func (k InvSq) Diagonal(x []Point, c []float64, r []float64) {
	for i := range x {
		for j := i + 1; j < len(x); j++ {
			v := k.eval(x[i], x[j])
			r[i] += v * c[j]
			r[j] += v * c[i]
		}
	}
}

// Asymmetric accumulates, row by row, the K(t[i], ·) vector's dot product
// against the charge block.
func (k InvSq) Asymmetric(x []Point, c []float64, t []Point, r []float64) {
	row := make([]float64, len(x))
	for i := range t {
		for j := range x {
			row[j] = k.eval(t[i], x[j])
		}
		r[i] += floats.Dot(row, c)
	}
}

// Symmetric evaluates each K(t[i], x[j]) once and applies it to both
// directions: rT[i] from the X side, rX[j] from the T side.
func (k InvSq) Symmetric(x []Point, c []float64, rX []float64, t []Point, cT []float64, rT []float64) {
	for i := range t {
		for j := range x {
			v := k.eval(t[i], x[j])
			rT[i] += v * c[j]
			rX[j] += v * cT[i]
		}
	}
}
