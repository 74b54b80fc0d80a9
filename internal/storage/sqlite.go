package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteCache implements WeightCache using SQLite.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases consistent across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS weights (
		key TEXT PRIMARY KEY,
		corpus TEXT NOT NULL,
		corpus_id TEXT NOT NULL,
		vocabulary_version TEXT NOT NULL,
		policy TEXT NOT NULL,
		rows INTEGER NOT NULL,
		cols INTEGER NOT NULL,
		matrix BLOB NOT NULL,
		centroid BLOB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_weights_corpus ON weights(corpus);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached entry for key.
func (s *SQLiteCache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	var e Entry
	var matrixBlob, centroidBlob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT key, corpus, corpus_id, vocabulary_version, policy, rows, cols, matrix, centroid, created_at
		 FROM weights WHERE key = ?`, key,
	).Scan(&e.Key, &e.Corpus, &e.CorpusID, &e.VocabularyVersion, &e.Policy, &e.Rows, &e.Cols,
		&matrixBlob, &centroidBlob, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	e.Matrix, err = decodeMatrix(matrixBlob, e.Rows, e.Cols)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode matrix %s: %w", key, err)
	}
	e.Centroid, err = decodeVector(centroidBlob)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode centroid %s: %w", key, err)
	}
	if len(e.Centroid) != e.Cols {
		return nil, false, fmt.Errorf("centroid %s has %d terms, want %d", key, len(e.Centroid), e.Cols)
	}
	return &e, true, nil
}

// Put inserts or replaces entry and invalidates older entries of the same corpus.
func (s *SQLiteCache) Put(ctx context.Context, e *Entry) error {
	matrixBlob, err := encodeMatrix(e.Matrix, e.Cols)
	if err != nil {
		return fmt.Errorf("failed to encode matrix: %w", err)
	}
	if len(e.Centroid) != e.Cols {
		return fmt.Errorf("centroid has %d terms, want %d", len(e.Centroid), e.Cols)
	}
	if e.Rows != len(e.Matrix) {
		return fmt.Errorf("matrix has %d rows, want %d", len(e.Matrix), e.Rows)
	}
	e.CreatedAt = time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM weights WHERE corpus = ? AND key != ?`, e.Corpus, e.Key,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO weights
		 (key, corpus, corpus_id, vocabulary_version, policy, rows, cols, matrix, centroid, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Key, e.Corpus, e.CorpusID, e.VocabularyVersion, e.Policy, e.Rows, e.Cols,
		matrixBlob, encodeVector(e.Centroid), e.CreatedAt,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes the entry for key.
func (s *SQLiteCache) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM weights WHERE key = ?`, key)
	return err
}

// DeleteCorpus removes every entry recorded for corpus.
func (s *SQLiteCache) DeleteCorpus(ctx context.Context, corpus string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM weights WHERE corpus = ?`, corpus)
	return err
}

// Count returns the number of cached entries.
func (s *SQLiteCache) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM weights`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteCache) Close() error {
	return s.db.Close()
}
