// Package predict feeds parsed input rows through a model's prediction
// interface, one request per row.
package predict

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kamusis/mvx-cli/internal/engine"
	"github.com/kamusis/mvx-cli/internal/logging"
	"github.com/kamusis/mvx-cli/internal/rowassembly"
)

// Result is the outcome of one prediction request.
type Result struct {
	RequestID string
	// Line is the input line the row came from, 0 for rows built in code.
	Line      int
	Input     rowassembly.Vector
	Slots     []rowassembly.Slot
	Unmatched []string
	Outputs   map[string]*engine.Matrix
}

// Runner predicts rows against one model. The model's input slots are read
// once, when the Runner is built.
type Runner struct {
	model engine.Model
	slots []rowassembly.Slot
	log   *slog.Logger
}

// NewRunner prepares a Runner for a fitted model. A nil logger discards.
func NewRunner(model engine.Model, log *slog.Logger) (*Runner, error) {
	if log == nil {
		log = logging.Discard()
	}
	if !model.IsFitted() {
		return nil, fmt.Errorf("model %d: %w", model.Number(), engine.ErrNotFitted)
	}
	req, err := model.PreparePrediction()
	if err != nil {
		return nil, fmt.Errorf("cannot prepare prediction for model %d: %w", model.Number(), err)
	}
	return &Runner{
		model: model,
		slots: SlotsFrom(req.InputSlots()),
		log:   log.With("model", model.Name()),
	}, nil
}

// SlotsFrom converts engine input variables to assembler slots.
func SlotsFrom(vars []engine.Variable) []rowassembly.Slot {
	out := make([]rowassembly.Slot, len(vars))
	for i, v := range vars {
		out[i] = rowassembly.Slot{Position: v.Position, Name: v.Name}
	}
	return out
}

// Slots returns the model's input slots.
func (r *Runner) Slots() []rowassembly.Slot {
	out := make([]rowassembly.Slot, len(r.slots))
	copy(out, r.slots)
	return out
}

// Predict assembles row, submits every present value and runs the request.
func (r *Runner) Predict(ctx context.Context, row rowassembly.NamedRow) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	log := r.log.With("request", id, "line", row.Line())

	vec := rowassembly.Assemble(r.slots, row)
	unmatched := rowassembly.Unmatched(r.slots, row)
	if len(unmatched) > 0 {
		log.DebugContext(ctx, "ignoring fields with no model variable", "fields", unmatched)
	}
	if missing := vec.Len() - vec.Present(); missing > 0 {
		log.DebugContext(ctx, "model inputs without a value", "missing", missing, "slots", vec.Len())
	}

	req, err := r.model.PreparePrediction()
	if err != nil {
		return nil, fmt.Errorf("cannot prepare prediction: %w", err)
	}
	var setErr error
	vec.Each(func(pos int, v float64) {
		if setErr != nil {
			return
		}
		if err := req.SetQuantitativeValue(pos, v); err != nil {
			setErr = fmt.Errorf("cannot set value for slot %d: %w", pos, err)
		}
	})
	if setErr != nil {
		return nil, setErr
	}

	pred, err := req.Run()
	if err != nil {
		log.ErrorContext(ctx, "prediction failed", "error", err)
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	outputs := make(map[string]*engine.Matrix)
	for _, name := range pred.ResultNames() {
		m, err := pred.Result(name)
		if err != nil {
			return nil, fmt.Errorf("cannot read result %s: %w", name, err)
		}
		outputs[name] = m
	}
	log.DebugContext(ctx, "prediction completed", "present", vec.Present(), "results", len(outputs))

	return &Result{
		RequestID: id,
		Line:      row.Line(),
		Input:     vec,
		Slots:     r.Slots(),
		Unmatched: unmatched,
		Outputs:   outputs,
	}, nil
}

// PredictAll runs rows in order and stops at the first error.
func (r *Runner) PredictAll(ctx context.Context, rows []rowassembly.NamedRow) ([]*Result, error) {
	out := make([]*Result, 0, len(rows))
	for _, row := range rows {
		res, err := r.Predict(ctx, row)
		if err != nil {
			if row.Line() > 0 {
				return out, fmt.Errorf("line %d: %w", row.Line(), err)
			}
			return out, err
		}
		out = append(out, res)
	}
	r.log.InfoContext(ctx, "predictions completed", "rows", len(out))
	return out, nil
}
