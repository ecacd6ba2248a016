package projfile

import (
	"github.com/kamusis/mvx-cli/internal/engine"
)

// Dataset is a dataset of an open Project.
type Dataset struct {
	project *Project
	def     fileDataset
}

var _ engine.Dataset = (*Dataset)(nil)

func (d *Dataset) Number() int { return d.def.Number }
func (d *Dataset) Name() string { return d.def.Name }

func (d *Dataset) ObservationIDNames() []string {
	out := make([]string, len(d.def.ObservationIDs))
	for i, id := range d.def.ObservationIDs {
		out[i] = id.Name
	}
	return out
}

func (d *Dataset) ObservationNames(idIndex int) ([]string, error) {
	if err := engine.CheckIndex("observation id", idIndex, len(d.def.ObservationIDs)); err != nil {
		return nil, err
	}
	vals := d.def.ObservationIDs[idIndex-1].Values
	out := make([]string, len(vals))
	copy(out, vals)
	return out, nil
}

func (d *Dataset) VariableNames() []string {
	out := make([]string, len(d.def.Variables))
	copy(out, d.def.Variables)
	return out
}

func (d *Dataset) Observations() (*engine.Matrix, error) {
	if err := d.project.checkOpen(); err != nil {
		return nil, err
	}
	return engine.MatrixFromRows(d.def.Data, d.primaryIDs(), d.VariableNames())
}

// primaryIDs returns the values of the first observation id, or nil.
func (d *Dataset) primaryIDs() []string {
	if len(d.def.ObservationIDs) == 0 {
		return nil
	}
	out := make([]string, len(d.def.ObservationIDs[0].Values))
	copy(out, d.def.ObservationIDs[0].Values)
	return out
}
