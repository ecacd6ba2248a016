// Package projfile is a reference engine backend that reads projects from YAML
// files. Files ending in .gz, .zst or .lz4 are decompressed on the fly.
//
// An open project holds a shared lock on "<path>.lock" so that a writer taking
// the exclusive lock cannot replace the file underneath it.
package projfile

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/kamusis/mvx-cli/internal/engine"
)

type openOptions struct {
	lock bool
}

// OpenOption configures Open.
type OpenOption func(*openOptions)

// WithoutLock opens the project without taking the shared lock, for projects
// on read-only media.
func WithoutLock() OpenOption {
	return func(o *openOptions) { o.lock = false }
}

// Project is an open project file.
type Project struct {
	path     string
	name     string
	lock     *flock.Flock
	closed   bool
	datasets []*Dataset
	models   []*Model
}

var _ engine.Project = (*Project)(nil)

// LockPath returns the lock file used for the project at path.
func LockPath(path string) string {
	return path + ".lock"
}

// Open reads and validates the project at path.
func Open(path string, opts ...OpenOption) (*Project, error) {
	o := openOptions{lock: true}
	for _, fn := range opts {
		fn(&o)
	}

	p := &Project{path: path}
	if o.lock {
		l := flock.New(LockPath(path))
		locked, err := l.TryRLock()
		if err != nil {
			return nil, fmt.Errorf("cannot lock project %s: %w", path, err)
		}
		if !locked {
			return nil, fmt.Errorf("%w: %s", engine.ErrProjectLocked, path)
		}
		p.lock = l
	}

	if err := p.load(); err != nil {
		_ = p.Close()
		return nil, err
	}
	return p, nil
}

func (p *Project) load() error {
	rc, err := openReader(p.path)
	if err != nil {
		return fmt.Errorf("cannot open project %s: %w", p.path, err)
	}
	defer rc.Close()

	var fp fileProject
	dec := yaml.NewDecoder(rc)
	dec.KnownFields(true)
	if err := dec.Decode(&fp); err != nil {
		return fmt.Errorf("invalid project file %s: %w", p.path, err)
	}
	if err := fp.validate(); err != nil {
		return fmt.Errorf("invalid project file %s: %w", p.path, err)
	}

	p.name = fp.Name
	if p.name == "" {
		p.name = filepath.Base(p.path)
	}
	for i := range fp.Datasets {
		p.datasets = append(p.datasets, &Dataset{project: p, def: fp.Datasets[i]})
	}
	for i := range fp.Models {
		m := &Model{project: p, def: fp.Models[i]}
		if m.def.Fitted {
			if m.proj, err = newProjection(&m.def); err != nil {
				return fmt.Errorf("invalid project file %s: model %d: %w", p.path, m.def.Number, err)
			}
		}
		p.models = append(p.models, m)
	}
	return nil
}

func (p *Project) Name() string { return p.name }
func (p *Project) Path() string { return p.path }

func (p *Project) NumDatasets() int { return len(p.datasets) }

func (p *Project) DatasetNumberFromIndex(index int) (int, error) {
	if err := engine.CheckIndex("dataset", index, len(p.datasets)); err != nil {
		return 0, err
	}
	return p.datasets[index-1].def.Number, nil
}

func (p *Project) Dataset(number int) (engine.Dataset, error) {
	if p.closed {
		return nil, engine.ErrClosed
	}
	for _, d := range p.datasets {
		if d.def.Number == number {
			return d, nil
		}
	}
	return nil, fmt.Errorf("dataset %d: %w", number, engine.ErrNotFound)
}

func (p *Project) NumModels() int { return len(p.models) }

func (p *Project) ModelNumberFromIndex(index int) (int, error) {
	if err := engine.CheckIndex("model", index, len(p.models)); err != nil {
		return 0, err
	}
	return p.models[index-1].def.Number, nil
}

func (p *Project) Model(number int) (engine.Model, error) {
	if p.closed {
		return nil, engine.ErrClosed
	}
	for _, m := range p.models {
		if m.def.Number == number {
			return m, nil
		}
	}
	return nil, fmt.Errorf("model %d: %w", number, engine.ErrNotFound)
}

// Close releases the project lock. Calling Close twice is a no-op.
func (p *Project) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if p.lock == nil {
		return nil
	}
	if err := p.lock.Unlock(); err != nil {
		return fmt.Errorf("cannot unlock project %s: %w", p.path, err)
	}
	return nil
}

// dataset returns the dataset a model was built on, if any.
func (p *Project) dataset(number int) *Dataset {
	for _, d := range p.datasets {
		if d.def.Number == number {
			return d
		}
	}
	return nil
}

func (p *Project) checkOpen() error {
	if p.closed {
		return engine.ErrClosed
	}
	return nil
}
