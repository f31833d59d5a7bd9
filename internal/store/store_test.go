package store

import (
	"path/filepath"
	"testing"

	"sensorsim/internal/scene"
	"sensorsim/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SceneStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleFile() scene.File {
	return scene.File{
		Bounds: world.DefaultBounds,
		Obstacles: []scene.ObstacleRecord{
			{ID: "crate", Position: [3]float32{5, 0.5, 5}, Dimensions: [3]float32{1, 1, 1}},
		},
		Sensors: []scene.SensorRecord{
			{ID: "front", DefinitionID: "vlp16", Position: [3]float32{0, 1.2, 0}, Rotation: [3]float32{0, -5, 45}, Visible: true},
		},
	}
}

func TestSceneStore_InsertAndGet(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Insert("first layout", sampleFile())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snap, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, snap.SnapshotID)
	assert.Equal(t, "first layout", snap.Name)
	assert.Equal(t, 1, snap.ObstacleCount)
	assert.Equal(t, 1, snap.SensorCount)
	assert.NotZero(t, snap.CreatedAtNs)
	assert.Equal(t, sampleFile(), snap.Scene)
}

func TestSceneStore_ListNewestFirst(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := s.Insert(name, sampleFile())
		require.NoError(t, err)
	}

	snaps, err := s.List()
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, "c", snaps[0].Name)
	assert.Equal(t, "a", snaps[2].Name)

	latest, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, "c", latest.Name)
}

func TestSceneStore_Delete(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Insert("doomed", sampleFile())
	require.NoError(t, err)
	require.NoError(t, s.Delete(id))

	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(id), ErrNotFound)

	_, err = s.Latest()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSceneStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.Insert("kept", sampleFile())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	snap, err := reopened.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "kept", snap.Name)
}
