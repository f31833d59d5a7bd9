// Package store keeps named scene snapshots in a sqlite database so the
// viewer can return to earlier layouts without juggling scene files.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sensorsim/internal/scene"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("snapshot not found")

const schema = `
	CREATE TABLE IF NOT EXISTS scene_snapshots (
		snapshot_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		payload_json TEXT NOT NULL,
		obstacle_count INTEGER NOT NULL,
		sensor_count INTEGER NOT NULL,
		created_at_ns INTEGER NOT NULL
	)
`

// Snapshot is one stored scene.
type Snapshot struct {
	SnapshotID    string     `json:"snapshot_id"`
	Name          string     `json:"name"`
	Scene         scene.File `json:"scene"`
	ObstacleCount int        `json:"obstacle_count"`
	SensorCount   int        `json:"sensor_count"`
	CreatedAtNs   int64      `json:"created_at_ns"`
}

// SceneStore provides persistence for scene snapshots.
type SceneStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
// ":memory:" gives a throwaway store.
func Open(path string) (*SceneStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	// One connection keeps ":memory:" databases from splitting per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot schema: %w", err)
	}
	return &SceneStore{db: db}, nil
}

func (s *SceneStore) Close() error {
	return s.db.Close()
}

// Insert stores f under name and returns the generated snapshot id.
func (s *SceneStore) Insert(name string, f scene.File) (string, error) {
	payload, err := scene.Encode(f)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()

	_, err = s.db.Exec(`
		INSERT INTO scene_snapshots (
			snapshot_id, name, payload_json, obstacle_count, sensor_count, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?)
	`,
		id,
		name,
		string(payload),
		len(f.Obstacles),
		len(f.Sensors),
		time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}
	return id, nil
}

// Get retrieves a snapshot by id.
func (s *SceneStore) Get(id string) (*Snapshot, error) {
	row := s.db.QueryRow(`
		SELECT snapshot_id, name, payload_json, obstacle_count, sensor_count, created_at_ns
		FROM scene_snapshots
		WHERE snapshot_id = ?
	`, id)

	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return snap, nil
}

// List returns every snapshot, newest first.
func (s *SceneStore) List() ([]*Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT snapshot_id, name, payload_json, obstacle_count, sensor_count, created_at_ns
		FROM scene_snapshots
		ORDER BY created_at_ns DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snaps, nil
}

// Latest returns the most recently stored snapshot.
func (s *SceneStore) Latest() (*Snapshot, error) {
	snaps, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, ErrNotFound
	}
	return snaps[0], nil
}

func (s *SceneStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM scene_snapshots WHERE snapshot_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(r rowScanner) (*Snapshot, error) {
	var snap Snapshot
	var payload string
	err := r.Scan(
		&snap.SnapshotID,
		&snap.Name,
		&payload,
		&snap.ObstacleCount,
		&snap.SensorCount,
		&snap.CreatedAtNs,
	)
	if err != nil {
		return nil, err
	}
	f, err := scene.Decode([]byte(payload))
	if err != nil {
		return nil, err
	}
	snap.Scene = f
	return &snap, nil
}
