package schema

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is a persisted inspection result. It lets resolution run
// without a live database connection, e.g. in CI.
type Snapshot struct {
	Dialect     string    `msgpack:"dialect"`
	InspectedAt time.Time `msgpack:"inspected_at"`
	Tables      []*Table  `msgpack:"tables"`
}

// Snapshot inspects the connected schema and returns it as a snapshot.
func (i *Inspector) Snapshot(ctx context.Context) (*Snapshot, error) {
	tables, err := i.Tables(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Dialect:     i.dialect,
		InspectedAt: time.Now().UTC(),
		Tables:      tables,
	}, nil
}

// Resolve checks the expectations against the snapshot's tables.
func (s *Snapshot) Resolve(expects ...*Expectation) error {
	return Resolve(s.Tables, expects...)
}

// WriteSnapshot writes the snapshot to the given path in msgpack format,
// creating parent directories as needed.
func WriteSnapshot(path string, s *Snapshot) error {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return fmt.Errorf("schema: encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("schema: create snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("schema: write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot reads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read snapshot: %w", err)
	}
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("schema: decode snapshot: %w", err)
	}
	return &s, nil
}
