package projfile

import (
	"fmt"

	"github.com/kamusis/mvx-cli/internal/engine"
)

// Model is a model of an open Project.
type Model struct {
	project *Project
	def     fileModel
	proj    *projection // nil for unfitted models
}

var _ engine.Model = (*Model)(nil)

func (m *Model) Number() int        { return m.def.Number }
func (m *Model) Name() string       { return m.def.Name }
func (m *Model) Type() string       { return m.def.Type }
func (m *Model) IsFitted() bool     { return m.def.Fitted }
func (m *Model) NumComponents() int { return m.def.components() }

func (m *Model) NumObservations() int {
	if len(m.def.Scores) > 0 {
		return len(m.def.Scores)
	}
	if d := m.project.dataset(m.def.Dataset); d != nil {
		return len(d.def.Data)
	}
	return 0
}

func (m *Model) XVariables() []string { return cloneStrings(m.def.XVariables) }
func (m *Model) YVariables() []string { return cloneStrings(m.def.YVariables) }

func (m *Model) ready() error {
	if err := m.project.checkOpen(); err != nil {
		return err
	}
	if !m.def.Fitted {
		return fmt.Errorf("model %d: %w", m.def.Number, engine.ErrNotFitted)
	}
	return nil
}

func (m *Model) Scores() (*engine.Matrix, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	if len(m.def.Scores) == 0 {
		return nil, fmt.Errorf("model %d scores: %w", m.def.Number, engine.ErrNotFound)
	}
	rowNames := m.def.Observations
	if len(rowNames) == 0 {
		if d := m.project.dataset(m.def.Dataset); d != nil && len(d.def.Data) == len(m.def.Scores) {
			rowNames = d.primaryIDs()
		}
	}
	return engine.MatrixFromRows(m.def.Scores, cloneStrings(rowNames), componentNames("t", m.NumComponents()))
}

func (m *Model) Loadings() (*engine.Matrix, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	return engine.MatrixFromRows(m.def.Loadings, m.XVariables(), componentNames("p", m.NumComponents()))
}

func (m *Model) FitStatistics() (*engine.FitStatistics, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	fs := &engine.FitStatistics{
		R2X:    cloneFloats(m.def.R2X),
		R2XCum: cumulativeSum(m.def.R2X),
		R2Y:    cloneFloats(m.def.R2Y),
		R2YCum: cumulativeSum(m.def.R2Y),
		Q2:     cloneFloats(m.def.Q2),
		Q2Cum:  cumulativeQ2(m.def.Q2),
	}
	return fs, nil
}

func (m *Model) PreparePrediction() (engine.PredictionRequest, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	n := len(m.def.XVariables)
	return &request{
		model:   m,
		values:  make([]float64, n),
		present: make([]bool, n),
	}, nil
}

// componentNames returns prefix1..prefixN.
func componentNames(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return out
}

func cumulativeSum(in []float64) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	var sum float64
	for i, v := range in {
		sum += v
		out[i] = sum
	}
	return out
}

// cumulativeQ2 combines per-component Q2 as 1 - prod(1 - q2_a).
func cumulativeQ2(in []float64) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	press := 1.0
	for i, v := range in {
		press *= 1 - v
		out[i] = 1 - press
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneFloats(in []float64) []float64 {
	if in == nil {
		return nil
	}
	out := make([]float64, len(in))
	copy(out, in)
	return out
}
