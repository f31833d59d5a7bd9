package sensors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `[
  {"id": "vlp16", "displayName": "Puck 16", "hFov": 360, "vFov": 30, "maxRange": 100, "channels": 16, "beamLayout": "verticalEven", "model": "models/vlp16.glb"},
  {"id": "tof1", "displayName": "Single ToF", "hFov": 27, "vFov": 0, "maxRange": 12, "channels": 1, "beamLayout": "singlePlane"}
]`

func TestLoadDefinitionsJSON(t *testing.T) {
	c := NewCatalog(nil)
	n, err := c.LoadDefinitions(strings.NewReader(catalogJSON), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	defs := c.GetDefinitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "tof1", defs[0].ID, "ordered by id")
	assert.Equal(t, "vlp16", defs[1].ID)

	d, ok := c.GetDefinitionByID("vlp16")
	require.True(t, ok)
	assert.Equal(t, Definition{
		ID: "vlp16", DisplayName: "Puck 16", HFov: 360, VFov: 30, MaxRange: 100,
		Channels: 16, BeamLayout: LayoutVerticalEven, Model: "models/vlp16.glb",
	}, d)
}

func TestLoadDefinitionsYAML(t *testing.T) {
	src := `
- id: scanner
  displayName: Planar scanner
  hFov: 270
  vFov: 0
  maxRange: 30
  channels: 1
  beamLayout: singlePlane
- id: defaulted
  displayName: No layout given
  hFov: 90
  vFov: 20
  maxRange: 10
  channels: 4
`
	c := NewCatalog(nil)
	n, err := c.LoadDefinitions(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	d, ok := c.GetDefinitionByID("defaulted")
	require.True(t, ok)
	assert.Equal(t, LayoutVerticalEven, d.BeamLayout)
	assert.Equal(t, float32(270), c.GetDefinitions()[1].HFov)
}

func TestLoadDefinitionsLastWriteWins(t *testing.T) {
	c := NewCatalog(nil)
	_, err := c.LoadDefinitions(strings.NewReader(catalogJSON), FormatJSON)
	require.NoError(t, err)

	_, err = c.LoadDefinitions(strings.NewReader(`[{"id":"tof1","hFov":45,"vFov":0,"maxRange":8,"channels":1,"beamLayout":"singlePlane"}]`), FormatJSON)
	require.NoError(t, err)

	d, _ := c.GetDefinitionByID("tof1")
	assert.Equal(t, float32(45), d.HFov)
	assert.Equal(t, 2, c.Len())
}

func TestLoadDefinitionsMalformedPayloadLeavesCatalog(t *testing.T) {
	c := NewCatalog(nil)
	_, err := c.LoadDefinitions(strings.NewReader(catalogJSON), FormatJSON)
	require.NoError(t, err)

	n, err := c.LoadDefinitions(strings.NewReader(`[{"id": "broken"`), FormatJSON)
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 2, c.Len())
}

func TestLoadDefinitionsSkipsBadRecords(t *testing.T) {
	src := `[
	  {"id": "ok1", "hFov": 90, "vFov": 10, "maxRange": 5, "channels": 2, "beamLayout": "verticalEven"},
	  {"id": "zero", "hFov": 90, "vFov": 10, "maxRange": 5, "channels": 0, "beamLayout": "verticalEven"},
	  {"id": "weird", "hFov": 90, "vFov": 10, "maxRange": 5, "channels": 2, "beamLayout": "spiral"},
	  {"id": "typed", "hFov": "wide"},
	  {"id": "ok2", "hFov": 360, "vFov": 0, "maxRange": 5, "channels": 1, "beamLayout": "singlePlane"}
	]`
	c := NewCatalog(nil)
	n, err := c.LoadDefinitions(strings.NewReader(src), FormatJSON)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDefinition)
	assert.Equal(t, 2, n)

	_, ok := c.GetDefinitionByID("ok2")
	assert.True(t, ok, "records after a bad one still load")
	_, ok = c.GetDefinitionByID("zero")
	assert.False(t, ok)
}

func TestLoadDefinitionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sensors.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))

	c := NewCatalog(nil)
	n, err := c.LoadDefinitionsFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = c.LoadDefinitionsFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = c.LoadDefinitionsFile(filepath.Join(dir, "sensors.txt"))
	assert.Error(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestDefinitionValidate(t *testing.T) {
	base := Definition{ID: "x", HFov: 90, VFov: 10, MaxRange: 5, Channels: 1, BeamLayout: LayoutSinglePlane}
	require.NoError(t, base.Validate())

	cases := map[string]func(d *Definition){
		"no id":       func(d *Definition) { d.ID = "" },
		"zero range":  func(d *Definition) { d.MaxRange = 0 },
		"hfov zero":   func(d *Definition) { d.HFov = 0 },
		"hfov 361":    func(d *Definition) { d.HFov = 361 },
		"vfov neg":    func(d *Definition) { d.VFov = -1 },
		"no channels": func(d *Definition) { d.Channels = 0 },
	}
	for name, mutate := range cases {
		d := base
		mutate(&d)
		assert.ErrorIs(t, d.Validate(), ErrInvalidDefinition, name)
	}
}
