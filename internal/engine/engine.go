// Package engine defines the handle-style contract of the multivariate model
// engine: projects own datasets and models, models hand out prediction
// requests, predictions expose named result matrices. Indices and positions
// are 1-based throughout.
package engine

// Project is an open project file. Close releases it; handles obtained from a
// closed project must not be used.
type Project interface {
	Name() string
	Path() string

	NumDatasets() int
	DatasetNumberFromIndex(index int) (int, error)
	Dataset(number int) (Dataset, error)

	NumModels() int
	ModelNumberFromIndex(index int) (int, error)
	Model(number int) (Model, error)

	Close() error
}

// Dataset is a table of observations by variables.
type Dataset interface {
	Number() int
	Name() string
	// ObservationIDNames lists the observation identifier columns, e.g. "Primary ID".
	ObservationIDNames() []string
	// ObservationNames returns every observation's value for the id at idIndex.
	ObservationNames(idIndex int) ([]string, error)
	VariableNames() []string
	// Observations returns the data with one row per observation and one
	// column per variable.
	Observations() (*Matrix, error)
}

// Model is a PCA or PLS model built on one dataset.
type Model interface {
	Number() int
	Name() string
	Type() string
	IsFitted() bool
	NumComponents() int
	NumObservations() int
	XVariables() []string
	YVariables() []string

	// Scores returns T: one row per observation, one column per component.
	Scores() (*Matrix, error)
	// Loadings returns P: one row per X variable, one column per component.
	Loadings() (*Matrix, error)
	FitStatistics() (*FitStatistics, error)

	PreparePrediction() (PredictionRequest, error)
}

// Variable is one input slot of a prediction request.
type Variable struct {
	Position int
	Name     string
}

// PredictionRequest collects input values for a single observation.
type PredictionRequest interface {
	// InputSlots lists the variables the model needs, ordered by position.
	InputSlots() []Variable
	SetQuantitativeValue(position int, value float64) error
	Run() (Prediction, error)
}

// Result matrix names exposed by every Prediction.
const (
	ResultYPred  = "YPredPS"
	ResultScores = "TPS"
)

// Prediction holds the output of a run request.
type Prediction interface {
	ResultNames() []string
	Result(name string) (*Matrix, error)
}

// FitStatistics holds per-component and cumulative explained variance.
// R2Y is empty for models without Y variables.
type FitStatistics struct {
	R2X    []float64
	R2XCum []float64
	R2Y    []float64
	R2YCum []float64
	Q2     []float64
	Q2Cum  []float64
}
