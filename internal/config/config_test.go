package config

import (
	"os"
	"path/filepath"
	"testing"

	"sensorsim/internal/scan"
	"sensorsim/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 1280, cfg.GetWindowWidth())
	assert.Equal(t, 720, cfg.GetWindowHeight())
	assert.Equal(t, 60, cfg.GetTargetFPS())
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.Equal(t, scan.DefaultMinDistance, cfg.GetMinSampleDistance())
	assert.Equal(t, world.DefaultBounds, cfg.GetBounds())
	assert.NoError(t, cfg.Validate())
}

func TestParsePartial(t *testing.T) {
	cfg, err := Parse([]byte(`
window_width: 1920
log_level: debug
min_sample_distance: 0.05
bounds:
  x_min: -10
  x_max: 10
  y_min: -1
  y_max: 5
  z_min: -10
  z_max: 10
`))
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.GetWindowWidth())
	assert.Equal(t, 720, cfg.GetWindowHeight(), "unset fields keep defaults")
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.Equal(t, float32(0.05), cfg.GetMinSampleDistance())
	assert.Equal(t, float32(-1), cfg.GetBounds().YMin)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.GetTargetFPS())
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "window_widht: 3\n",
		"negative width":  "window_width: -1\n",
		"zero beam":       "beam_radius: 0\n",
		"inverted bounds": "bounds: {x_min: 1, x_max: 0, y_min: 0, y_max: 1, z_min: 0, z_max: 1}\n",
		"not yaml":        "window_width: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target_fps: 30\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.GetTargetFPS())

	_, err = Load(filepath.Join(dir, "app.json"))
	assert.ErrorContains(t, err, "extension")

	cfg, err = LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}
