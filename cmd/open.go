package cmd

import (
	"fmt"
	"time"

	"github.com/kamusis/mvx-cli/internal/engine"
	"github.com/kamusis/mvx-cli/internal/engine/projfile"
	"github.com/kamusis/mvx-cli/internal/license"
)

// now is replaced by tests.
var now = time.Now

// openProject checks the license and opens the project at path.
func openProject(e *env, path string) (engine.Project, error) {
	if _, err := license.Check(e.cfg.LicensePath, now()); err != nil {
		return nil, fmt.Errorf("%w\nRun 'mvx license' for details.", err)
	}
	p, err := projfile.Open(path)
	if err != nil {
		return nil, err
	}
	e.log.Debug("project opened", "path", path, "name", p.Name())
	return p, nil
}

// openModel opens the project and resolves the model at a 1-based index
// (0 means the configured default). When fitted is true an unfitted model is
// an error. The caller must Close the returned project.
func openModel(e *env, path string, index int, fitted bool) (engine.Project, engine.Model, error) {
	p, err := openProject(e, path)
	if err != nil {
		return nil, nil, err
	}
	if index == 0 {
		index = e.cfg.ModelIndex
	}
	number, err := p.ModelNumberFromIndex(index)
	if err != nil {
		_ = p.Close()
		return nil, nil, fmt.Errorf("cannot locate model: %w", err)
	}
	m, err := p.Model(number)
	if err != nil {
		_ = p.Close()
		return nil, nil, fmt.Errorf("cannot load model %d: %w", number, err)
	}
	if fitted && !m.IsFitted() {
		_ = p.Close()
		return nil, nil, fmt.Errorf("model %s (%d): %w", m.Name(), number, engine.ErrNotFitted)
	}
	e.log.Debug("model loaded", "index", index, "number", number, "name", m.Name())
	return p, m, nil
}

// closeProject closes p and logs a failure; read-only commands have nothing
// to lose at that point.
func closeProject(e *env, p engine.Project) {
	if err := p.Close(); err != nil {
		e.log.Warn("cannot close project", "path", p.Path(), "error", err)
	}
}
