// Package assets caches sensor model files. A model that fails to load is
// remembered as failed so the viewer draws its placeholder without retrying
// every frame.
package assets

import (
	"errors"
	"fmt"
	"os"

	"sensorsim/internal/logging"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var ErrEmptyModel = errors.New("model has no meshes")

// Loader loads a model from disk. Swappable so the cache can be used without
// a GL context.
type Loader func(path string) (rl.Model, error)

// Unloader frees a model returned by a Loader.
type Unloader func(rl.Model)

func loadModel(path string) (rl.Model, error) {
	if _, err := os.Stat(path); err != nil {
		return rl.Model{}, fmt.Errorf("load model %s: %w", path, err)
	}
	model := rl.LoadModel(path)
	if model.MeshCount == 0 {
		return rl.Model{}, fmt.Errorf("load model %s: %w", path, ErrEmptyModel)
	}
	return model, nil
}

type Manager struct {
	models map[string]rl.Model
	failed map[string]error
	load   Loader
	unload Unloader
	log    *zap.Logger
}

func NewManager(logger *zap.Logger) *Manager {
	return NewManagerWith(loadModel, rl.UnloadModel, logger)
}

func NewManagerWith(load Loader, unload Unloader, logger *zap.Logger) *Manager {
	return &Manager{
		models: make(map[string]rl.Model),
		failed: make(map[string]error),
		load:   load,
		unload: unload,
		log:    logging.OrNop(logger),
	}
}

// Model returns the cached model for path, loading it on first use. False
// means the caller should draw a placeholder.
func (m *Manager) Model(path string) (rl.Model, bool) {
	if path == "" {
		return rl.Model{}, false
	}
	if model, exists := m.models[path]; exists {
		return model, true
	}
	if _, failed := m.failed[path]; failed {
		return rl.Model{}, false
	}

	model, err := m.load(path)
	if err != nil {
		m.failed[path] = err
		m.log.Warn("model unavailable, using placeholder", zap.String("path", path), zap.Error(err))
		return rl.Model{}, false
	}
	m.models[path] = model
	return model, true
}

// Failed returns the load error recorded for path, if any.
func (m *Manager) Failed(path string) error {
	return m.failed[path]
}

func (m *Manager) Unload() {
	for _, model := range m.models {
		m.unload(model)
	}
	m.models = make(map[string]rl.Model)
	m.failed = make(map[string]error)
}
