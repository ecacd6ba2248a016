package projfile

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/kamusis/mvx-cli/internal/engine"
)

// request is a single-observation prediction request.
type request struct {
	model   *Model
	values  []float64
	present []bool
}

func (r *request) InputSlots() []engine.Variable {
	out := make([]engine.Variable, len(r.model.def.XVariables))
	for i, name := range r.model.def.XVariables {
		out[i] = engine.Variable{Position: i + 1, Name: name}
	}
	return out
}

// SetQuantitativeValue stores value at position. NaN clears the position.
func (r *request) SetQuantitativeValue(position int, value float64) error {
	if err := engine.CheckIndex("variable", position, len(r.values)); err != nil {
		return err
	}
	r.values[position-1] = value
	r.present[position-1] = !math.IsNaN(value)
	return nil
}

// Run projects the observation onto the model. Missing inputs are replaced
// by the training mean, so they contribute nothing after centering.
func (r *request) Run() (engine.Prediction, error) {
	if err := r.model.ready(); err != nil {
		return nil, err
	}
	def := &r.model.def
	proj := r.model.proj

	z := mat.NewVecDense(len(r.values), nil)
	for k := range r.values {
		if r.present[k] {
			z.SetVec(k, (r.values[k]-def.XCenter[k])/def.XScale[k])
		}
	}

	results := make(map[string]*engine.Matrix, 2)
	t := proj.scores(z)
	tm, err := engine.MatrixFromDense(t.T(), nil, componentNames("t", t.Len()))
	if err != nil {
		return nil, err
	}
	results[engine.ResultScores] = tm

	if proj.coef != nil {
		y := proj.predictY(z, def.YCenter, def.YScale)
		ym, err := engine.MatrixFromDense(y.T(), nil, cloneStrings(def.YVariables))
		if err != nil {
			return nil, err
		}
		results[engine.ResultYPred] = ym
	}
	return &prediction{results: results}, nil
}

type prediction struct {
	results map[string]*engine.Matrix
}

func (p *prediction) ResultNames() []string {
	out := make([]string, 0, len(p.results))
	for name := range p.results {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (p *prediction) Result(name string) (*engine.Matrix, error) {
	m, ok := p.results[name]
	if !ok {
		return nil, fmt.Errorf("result %q: %w", name, engine.ErrNotFound)
	}
	return m, nil
}
