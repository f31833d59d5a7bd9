package world

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldStartsWithoutGround(t *testing.T) {
	w := New(nil)
	assert.False(t, w.Initialized())
	_, ok := w.Ground()
	assert.False(t, ok)
}

func TestInitializeBuildsGround(t *testing.T) {
	w := New(nil)
	require.NoError(t, w.Initialize(Bounds{XMin: -5, XMax: 5, YMin: 1, YMax: 4, ZMin: -5, ZMax: 5}))

	assert.True(t, w.Initialized())
	assert.Equal(t, float32(1), w.GroundHeight())

	ground, ok := w.Ground()
	require.True(t, ok)
	d, hit := ground.Raycast(rl.Vector3{Y: 3}, rl.Vector3{Y: -1}, 10)
	require.True(t, hit)
	assert.InDelta(t, 2.0, d, 1e-6)
}

func TestInitializeRejectsInvalidBounds(t *testing.T) {
	w := New(nil)
	require.NoError(t, w.Initialize(DefaultBounds))

	err := w.Initialize(Bounds{XMin: 1, XMax: 1, YMin: 0, YMax: 1, ZMin: 0, ZMax: 1})
	assert.ErrorIs(t, err, ErrInvalidBounds)
	assert.Equal(t, DefaultBounds, w.Bounds(), "rejected bounds must not replace the old ones")

	assert.ErrorIs(t, Bounds{XMax: 1, YMin: 2, YMax: 1, ZMax: 1}.Validate(), ErrInvalidBounds)
	assert.ErrorIs(t, Bounds{XMax: 1, YMax: 1, ZMin: 3, ZMax: 1}.Validate(), ErrInvalidBounds)
}

func TestReinitializeReplacesWholesale(t *testing.T) {
	w := New(nil)
	require.NoError(t, w.Initialize(DefaultBounds))
	next := Bounds{XMin: 0, XMax: 2, YMin: -1, YMax: 1, ZMin: 0, ZMax: 2}
	require.NoError(t, w.Initialize(next))
	assert.Equal(t, next, w.Bounds())

	ground, _ := w.Ground()
	_, hit := ground.Raycast(rl.Vector3{X: -10, Y: 0}, rl.Vector3{Y: -1}, 10)
	assert.False(t, hit, "old extents no longer part of the ground")
}

func TestGroundGeometry(t *testing.T) {
	b := Bounds{XMin: -2, XMax: 6, YMin: 1, YMax: 3, ZMin: 0, ZMax: 4}
	assert.Equal(t, rl.Vector3{X: 2, Y: 1, Z: 2}, b.GroundCenter())
	assert.Equal(t, rl.Vector2{X: 8, Y: 4}, b.GroundSize())
}
