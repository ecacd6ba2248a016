package projfile

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// projection holds the matrices a fitted model predicts with, in scaled units.
type projection struct {
	// wstar maps a scaled observation to its scores: t = zᵀW*. For PLS it
	// is W(PᵀW)⁻¹, which includes the deflation between components; PCA
	// models without weights use P.
	wstar *mat.Dense
	// coef maps a scaled observation to scaled Y; nil without Y variables.
	coef *mat.Dense
}

func newProjection(def *fileModel) (*projection, error) {
	a := def.components()
	p := denseFromRows(def.Loadings, a)

	pr := &projection{wstar: p}
	if len(def.Weights) > 0 {
		w := denseFromRows(def.Weights, a)
		var pw, inv mat.Dense
		pw.Mul(p.T(), w)
		if err := inv.Inverse(&pw); err != nil {
			return nil, fmt.Errorf("loadings and weights give a singular PᵀW: %w", err)
		}
		pr.wstar = new(mat.Dense)
		pr.wstar.Mul(w, &inv)
	}
	if len(def.YVariables) > 0 {
		pr.coef = denseFromRows(def.Coefficients, len(def.YVariables))
	}
	return pr, nil
}

// scores returns zᵀW* as a row.
func (pr *projection) scores(z *mat.VecDense) *mat.VecDense {
	_, a := pr.wstar.Dims()
	t := mat.NewVecDense(a, nil)
	t.MulVec(pr.wstar.T(), z)
	return t
}

// predictY returns center + scale ∘ (zᵀB).
func (pr *projection) predictY(z *mat.VecDense, center, scale []float64) *mat.VecDense {
	_, ny := pr.coef.Dims()
	y := mat.NewVecDense(ny, nil)
	y.MulVec(pr.coef.T(), z)
	for j := 0; j < ny; j++ {
		y.SetVec(j, center[j]+scale[j]*y.AtVec(j))
	}
	return y
}

// denseFromRows copies validated rows of width cols into a Dense.
func denseFromRows(rows [][]float64, cols int) *mat.Dense {
	data := make([]float64, 0, len(rows)*cols)
	for _, r := range rows {
		data = append(data, r...)
	}
	return mat.NewDense(len(rows), cols, data)
}
