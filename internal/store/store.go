// Package store handles SQLite persistence of user snippets.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/codetype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a snippet id does not exist.
var ErrNotFound = errors.New("snippet not found")

// Store wraps SQLite access for snippet data.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// StoredSnippet is a user snippet with its creation time.
type StoredSnippet struct {
	model.Snippet
	CreatedAt time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snippets (
			id TEXT PRIMARY KEY,
			lang TEXT NOT NULL,
			lang_key TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snippets_lang_key ON snippets(lang_key);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// AddSnippet stores a snippet under a new id and returns it.
func (s *Store) AddSnippet(ctx context.Context, lang model.Language, text string) (StoredSnippet, error) {
	name := strings.TrimSpace(string(lang))
	if name == "" {
		return StoredSnippet{}, fmt.Errorf("snippet language is empty")
	}
	if strings.TrimSpace(text) == "" {
		return StoredSnippet{}, fmt.Errorf("snippet text is empty")
	}
	snippet := StoredSnippet{
		Snippet: model.Snippet{
			ID:   uuid.NewString(),
			Lang: model.Language(name),
			Text: text,
		},
		CreatedAt: s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snippets (id, lang, lang_key, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		snippet.ID,
		name,
		strings.ToLower(name),
		snippet.Text,
		snippet.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return StoredSnippet{}, err
	}
	return snippet, nil
}

// ListSnippets returns stored snippets in creation order. An empty lang
// returns all languages; otherwise lang is matched case-insensitively.
func (s *Store) ListSnippets(ctx context.Context, lang string) ([]StoredSnippet, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if key := strings.ToLower(strings.TrimSpace(lang)); key != "" {
		clauses = append(clauses, "lang_key = ?")
		args = append(args, key)
	}
	query := fmt.Sprintf(`SELECT id, lang, body, created_at
		FROM snippets
		WHERE %s
		ORDER BY created_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []StoredSnippet
	for rows.Next() {
		var item StoredSnippet
		var lang, createdAt string
		if err := rows.Scan(&item.ID, &lang, &item.Text, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		item.Lang = model.Language(lang)
		item.CreatedAt = parsed
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Snippets returns all stored snippets as catalog entries.
func (s *Store) Snippets(ctx context.Context) ([]model.Snippet, error) {
	stored, err := s.ListSnippets(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]model.Snippet, len(stored))
	for i, item := range stored {
		out[i] = item.Snippet
	}
	return out, nil
}

// DeleteSnippet removes the snippet with the given id.
func (s *Store) DeleteSnippet(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snippets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
