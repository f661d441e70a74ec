/**
 * CONTEXT:   KuzuDB connection lifecycle for the activity graph store
 * INPUT:     A filesystem path for the embedded database (or a temp dir
 *            when none is configured)
 * OUTPUT:    A single managed *kuzu.Connection plus cleanup
 * BUSINESS:  Component C12: a queryable projection of one run's schedule
 *            result, not a pool serving concurrent request traffic, so
 *            the teacher's pooled connection manager is generalized down
 *            to the single-connection case spec.md section 5 calls for
 *            ("one pipeline invocation owns its entity snapshots
 *            exclusively")
 * CHANGE:    Initial graph store connection management
 * RISK:      Medium - embedded database lifetime must track process lifetime
 */

package graphstore

import (
	"fmt"
	"os"

	kuzu "github.com/kuzudb/go-kuzu"
)

// Config controls where the embedded database lives.
type Config struct {
	// DatabasePath is the on-disk location of the KuzuDB database. When
	// empty, Open creates a temporary directory that Close removes,
	// matching spec.md section 6's "no cross-invocation persisted state"
	// for runs that don't pass --store.
	DatabasePath string
}

// Store owns the embedded database and connection for one pipeline run.
type Store struct {
	db   *kuzu.Database
	conn *kuzu.Connection

	tempDir string
}

// Open creates (or attaches to) the database at cfg.DatabasePath and
// applies the schema migration, per spec.md section 6.4.
func Open(cfg Config) (*Store, error) {
	path := cfg.DatabasePath
	tempDir := ""
	if path == "" {
		dir, err := os.MkdirTemp("", "xersched-graphstore-*")
		if err != nil {
			return nil, fmt.Errorf("graphstore: create temp dir: %w", err)
		}
		tempDir = dir
		path = dir
	}

	db, err := kuzu.OpenDatabase(path, kuzu.DefaultSystemConfig())
	if err != nil {
		if tempDir != "" {
			os.RemoveAll(tempDir)
		}
		return nil, fmt.Errorf("graphstore: open database at %s: %w", path, err)
	}

	conn, err := kuzu.NewConnection(db)
	if err != nil {
		db.Close()
		if tempDir != "" {
			os.RemoveAll(tempDir)
		}
		return nil, fmt.Errorf("graphstore: open connection: %w", err)
	}

	s := &Store{db: db, conn: conn, tempDir: tempDir}
	if err := s.migrate(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection and database, and removes the temporary
// directory if Open created one.
func (s *Store) Close() error {
	var errs []error
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.tempDir != "" {
		if err := os.RemoveAll(s.tempDir); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("graphstore: close: %v", errs)
	}
	return nil
}

func (s *Store) query(cypher string) (*kuzu.QueryResult, error) {
	result, err := s.conn.Query(cypher)
	if err != nil {
		return nil, fmt.Errorf("graphstore: query failed: %w\n%s", err, cypher)
	}
	return result, nil
}
