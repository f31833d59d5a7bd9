package sensors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sensorsim/internal/logging"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var ErrInvalidDefinition = errors.New("invalid sensor definition")

type BeamLayout string

const (
	// LayoutVerticalEven spreads channels evenly across the vertical field of view.
	LayoutVerticalEven BeamLayout = "verticalEven"
	// LayoutSinglePlane puts every channel on the horizontal plane.
	LayoutSinglePlane BeamLayout = "singlePlane"
)

// Definition describes a sensor type. Definitions are immutable once loaded.
type Definition struct {
	ID          string     `json:"id" yaml:"id"`
	DisplayName string     `json:"displayName" yaml:"displayName"`
	HFov        float32    `json:"hFov" yaml:"hFov"` // degrees
	VFov        float32    `json:"vFov" yaml:"vFov"` // degrees
	MaxRange    float32    `json:"maxRange" yaml:"maxRange"`
	Channels    int        `json:"channels" yaml:"channels"`
	BeamLayout  BeamLayout `json:"beamLayout" yaml:"beamLayout"`
	Model       string     `json:"model,omitempty" yaml:"model,omitempty"`
}

func (d Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDefinition)
	}
	if d.Channels < 1 {
		return fmt.Errorf("%w: %s: channels must be at least 1, got %d", ErrInvalidDefinition, d.ID, d.Channels)
	}
	if d.MaxRange <= 0 {
		return fmt.Errorf("%w: %s: maxRange must be positive, got %g", ErrInvalidDefinition, d.ID, d.MaxRange)
	}
	if d.HFov <= 0 || d.HFov > 360 {
		return fmt.Errorf("%w: %s: hFov must be in (0, 360], got %g", ErrInvalidDefinition, d.ID, d.HFov)
	}
	if d.VFov < 0 || d.VFov > 180 {
		return fmt.Errorf("%w: %s: vFov must be in [0, 180], got %g", ErrInvalidDefinition, d.ID, d.VFov)
	}
	switch d.BeamLayout {
	case LayoutVerticalEven, LayoutSinglePlane:
	default:
		return fmt.Errorf("%w: %s: unknown beamLayout %q", ErrInvalidDefinition, d.ID, d.BeamLayout)
	}
	return nil
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the catalog format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported catalog extension %q", filepath.Ext(path))
	}
}

// Catalog is the set of known sensor definitions keyed by id.
type Catalog struct {
	defs map[string]Definition
	log  *zap.Logger
}

func NewCatalog(logger *zap.Logger) *Catalog {
	return &Catalog{
		defs: make(map[string]Definition),
		log:  logging.OrNop(logger),
	}
}

// LoadDefinitionsFile loads a .json, .yaml or .yml catalog.
func (c *Catalog) LoadDefinitionsFile(path string) (int, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return 0, err
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		c.log.Warn("sensor catalog unavailable", zap.String("path", path), zap.Error(err))
		return 0, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return c.LoadDefinitions(f, format)
}

// LoadDefinitions reads a list of definition records and merges them into the
// catalog, last write winning on duplicate ids. A payload that does not parse
// leaves the catalog unchanged. Individual bad records are skipped and reported
// in the returned error while the remaining records still load.
func (c *Catalog) LoadDefinitions(r io.Reader, format Format) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read catalog: %w", err)
	}

	var decoders []func(*Definition) error
	switch format {
	case FormatJSON:
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			c.log.Warn("sensor catalog malformed", zap.Error(err))
			return 0, fmt.Errorf("parse catalog: %w", err)
		}
		for _, raw := range raws {
			decoders = append(decoders, func(d *Definition) error {
				return json.Unmarshal(raw, d)
			})
		}
	case FormatYAML:
		var nodes []yaml.Node
		if err := yaml.Unmarshal(data, &nodes); err != nil {
			c.log.Warn("sensor catalog malformed", zap.Error(err))
			return 0, fmt.Errorf("parse catalog: %w", err)
		}
		for i := range nodes {
			node := &nodes[i]
			decoders = append(decoders, func(d *Definition) error {
				return node.Decode(d)
			})
		}
	default:
		return 0, fmt.Errorf("unsupported catalog format %q", format)
	}

	loaded := 0
	var errs []error
	for i, decode := range decoders {
		var def Definition
		if err := decode(&def); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if def.BeamLayout == "" {
			def.BeamLayout = LayoutVerticalEven
		}
		if err := def.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		c.defs[def.ID] = def
		loaded++
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		c.log.Warn("sensor catalog records skipped", zap.Int("loaded", loaded), zap.Int("skipped", len(errs)), zap.Error(err))
		return loaded, err
	}
	c.log.Debug("sensor catalog loaded", zap.Int("loaded", loaded), zap.Int("total", len(c.defs)))
	return loaded, nil
}

// GetDefinitions returns every definition ordered by id.
func (c *Catalog) GetDefinitions() []Definition {
	out := make([]Definition, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) GetDefinitionByID(id string) (Definition, bool) {
	d, ok := c.defs[id]
	return d, ok
}

func (c *Catalog) Len() int {
	return len(c.defs)
}
