package projfile

import (
	"fmt"
	"math"
)

// fileProject is the on-disk YAML layout of a project.
type fileProject struct {
	Name     string        `yaml:"name"`
	Datasets []fileDataset `yaml:"datasets"`
	Models   []fileModel   `yaml:"models"`
}

type fileObservationID struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

type fileDataset struct {
	Number         int                 `yaml:"number"`
	Name           string              `yaml:"name"`
	ObservationIDs []fileObservationID `yaml:"observation_ids"`
	Variables      []string            `yaml:"variables"`
	Data           [][]float64         `yaml:"data"`
}

type fileModel struct {
	Number       int         `yaml:"number"`
	Name         string      `yaml:"name"`
	Type         string      `yaml:"type"`
	Dataset      int         `yaml:"dataset"`
	Fitted       bool        `yaml:"fitted"`
	XVariables   []string    `yaml:"x_variables"`
	YVariables   []string    `yaml:"y_variables"`
	Observations []string    `yaml:"observations"`
	XCenter      []float64   `yaml:"x_center"`
	XScale       []float64   `yaml:"x_scale"`
	YCenter      []float64   `yaml:"y_center"`
	YScale       []float64   `yaml:"y_scale"`
	Scores       [][]float64 `yaml:"scores"`
	Loadings     [][]float64 `yaml:"loadings"`
	Weights      [][]float64 `yaml:"weights"`
	Coefficients [][]float64 `yaml:"coefficients"`
	R2X          []float64   `yaml:"r2x"`
	R2Y          []float64   `yaml:"r2y"`
	Q2           []float64   `yaml:"q2"`
}

func (fp *fileProject) validate() error {
	datasets := make(map[int]*fileDataset, len(fp.Datasets))
	for i := range fp.Datasets {
		d := &fp.Datasets[i]
		if d.Number == 0 {
			d.Number = i + 1
		}
		if _, dup := datasets[d.Number]; dup {
			return fmt.Errorf("duplicate dataset number %d", d.Number)
		}
		datasets[d.Number] = d
		if err := d.validate(); err != nil {
			return fmt.Errorf("dataset %d: %w", d.Number, err)
		}
	}

	seen := make(map[int]bool, len(fp.Models))
	for i := range fp.Models {
		m := &fp.Models[i]
		if m.Number == 0 {
			m.Number = i + 1
		}
		if seen[m.Number] {
			return fmt.Errorf("duplicate model number %d", m.Number)
		}
		seen[m.Number] = true
		if m.Dataset != 0 {
			if _, ok := datasets[m.Dataset]; !ok {
				return fmt.Errorf("model %d: unknown dataset %d", m.Number, m.Dataset)
			}
		}
		if err := m.validate(); err != nil {
			return fmt.Errorf("model %d: %w", m.Number, err)
		}
	}
	return nil
}

func (d *fileDataset) validate() error {
	for _, row := range d.Data {
		if len(row) != len(d.Variables) {
			return fmt.Errorf("data row has %d values for %d variables", len(row), len(d.Variables))
		}
	}
	for _, id := range d.ObservationIDs {
		if len(id.Values) != len(d.Data) {
			return fmt.Errorf("observation id %q has %d values for %d observations", id.Name, len(id.Values), len(d.Data))
		}
	}
	return nil
}

// components is the number of model components, taken from the loadings.
func (m *fileModel) components() int {
	if len(m.Loadings) == 0 {
		return 0
	}
	return len(m.Loadings[0])
}

func (m *fileModel) validate() error {
	if len(m.XVariables) == 0 {
		return fmt.Errorf("no x variables")
	}
	if !m.Fitted {
		return nil
	}

	nx, ny, a := len(m.XVariables), len(m.YVariables), m.components()
	if a == 0 {
		return fmt.Errorf("fitted model has no loadings")
	}
	if err := checkShape("loadings", m.Loadings, nx, a); err != nil {
		return err
	}
	if len(m.Weights) > 0 {
		if err := checkShape("weights", m.Weights, nx, a); err != nil {
			return err
		}
	}
	if len(m.Scores) > 0 {
		if err := checkShape("scores", m.Scores, len(m.Scores), a); err != nil {
			return err
		}
		if len(m.Observations) > 0 && len(m.Observations) != len(m.Scores) {
			return fmt.Errorf("%d observation names for %d score rows", len(m.Observations), len(m.Scores))
		}
	}
	if err := checkScale("x", m.XCenter, m.XScale, nx); err != nil {
		return err
	}
	if ny > 0 {
		if err := checkShape("coefficients", m.Coefficients, nx, ny); err != nil {
			return err
		}
		if err := checkScale("y", m.YCenter, m.YScale, ny); err != nil {
			return err
		}
	}
	for name, s := range map[string][]float64{"r2x": m.R2X, "r2y": m.R2Y, "q2": m.Q2} {
		if len(s) > 0 && len(s) != a {
			return fmt.Errorf("%s has %d values for %d components", name, len(s), a)
		}
	}
	return nil
}

func checkShape(what string, rows [][]float64, wantRows, wantCols int) error {
	if len(rows) != wantRows {
		return fmt.Errorf("%s has %d rows, want %d", what, len(rows), wantRows)
	}
	for i, r := range rows {
		if len(r) != wantCols {
			return fmt.Errorf("%s row %d has %d values, want %d", what, i+1, len(r), wantCols)
		}
	}
	return nil
}

func checkScale(block string, center, scale []float64, n int) error {
	if len(center) != n || len(scale) != n {
		return fmt.Errorf("%s center/scale need %d values, got %d/%d", block, n, len(center), len(scale))
	}
	for i, s := range scale {
		if s == 0 || math.IsNaN(s) {
			return fmt.Errorf("%s scale %d is not usable: %v", block, i+1, s)
		}
	}
	return nil
}
