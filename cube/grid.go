package cube

import (
	"github.com/cwbudde/algo-cubefit/errdefs"
	"gonum.org/v1/gonum/mat"
)

// Grid gives the row (II) and column (JJ) index of every spatial cell.
type Grid struct {
	II, JJ *mat.Dense
}

// NewGrid returns the coordinate grid for an ni x nj image: II[i][j] = i and
// JJ[i][j] = j.
func NewGrid(ni, nj int) (Grid, error) {
	if ni <= 0 || nj <= 0 {
		return Grid{}, errdefs.Shapef("grid dimensions must be > 0: %dx%d", ni, nj)
	}
	ii := mat.NewDense(ni, nj, nil)
	jj := mat.NewDense(ni, nj, nil)
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			ii.Set(i, j, float64(i))
			jj.Set(i, j, float64(j))
		}
	}
	return Grid{II: ii, JJ: jj}, nil
}

// NewGridFrom wraps caller-supplied coordinate matrices after checking that
// their shapes match.
func NewGridFrom(ii, jj *mat.Dense) (Grid, error) {
	if ii == nil || jj == nil {
		return Grid{}, errdefs.Shapef("grid components must be non-nil")
	}
	ri, ci := ii.Dims()
	rj, cj := jj.Dims()
	if ri != rj || ci != cj {
		return Grid{}, errdefs.Shapef("grid components differ: %dx%d vs %dx%d", ri, ci, rj, cj)
	}
	return Grid{II: mat.DenseCopyOf(ii), JJ: mat.DenseCopyOf(jj)}, nil
}

// Validate reports a shape error for a zero grid or for components of
// different shape.
func (g Grid) Validate() error {
	if g.II == nil || g.JJ == nil {
		return errdefs.Shapef("grid components must be non-nil")
	}
	ri, ci := g.II.Dims()
	rj, cj := g.JJ.Dims()
	if ri != rj || ci != cj {
		return errdefs.Shapef("grid components differ: %dx%d vs %dx%d", ri, ci, rj, cj)
	}
	return nil
}

// Dims returns the grid shape.
func (g Grid) Dims() (ni, nj int) { return g.II.Dims() }

// Len returns the number of cells.
func (g Grid) Len() int {
	ni, nj := g.Dims()
	return ni * nj
}

// Points returns the row and column coordinates flattened in row-major order.
func (g Grid) Points() (is, js []float64) {
	ni, nj := g.Dims()
	is = make([]float64, 0, ni*nj)
	js = make([]float64, 0, ni*nj)
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			is = append(is, g.II.At(i, j))
			js = append(js, g.JJ.At(i, j))
		}
	}
	return is, js
}
