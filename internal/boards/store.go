package boards

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ucimeto/ucimeto/internal/catalog"
	"github.com/ucimeto/ucimeto/internal/db"
)

// Store manages persistence of generated boards.
type Store struct {
	db *db.DB
}

// NewStore creates a new board store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Save inserts or replaces a board. Regenerating a board for the same
// document keeps its id and replaces its questions.
func (s *Store) Save(ctx context.Context, b *Board) error {
	questions, err := json.Marshal(b.Questions)
	if err != nil {
		return fmt.Errorf("encoding questions: %w", err)
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO boards (id, category, page_slug, title, kind, questions, model, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   kind = excluded.kind,
		   questions = excluded.questions,
		   model = excluded.model,
		   updated_at = excluded.updated_at`,
		b.ID, b.Category, b.PageSlug, b.Title, b.Kind, string(questions), b.Model, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving board: %w", err)
	}
	return nil
}

// GetByID retrieves a board, or nil when it does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*Board, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, category, page_slug, title, kind, questions, model, created_at, updated_at
		 FROM boards WHERE id = ?`, id)
	return scanBoard(row)
}

// List returns the boards for a category, newest first.
func (s *Store) List(ctx context.Context, category string) ([]Board, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, page_slug, title, kind, questions, model, created_at, updated_at
		 FROM boards WHERE category = ? ORDER BY updated_at DESC`, category)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	defer rows.Close()

	var out []Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// Delete removes a board.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(row rowScanner) (*Board, error) {
	var b Board
	var kind, questions string
	err := row.Scan(&b.ID, &b.Category, &b.PageSlug, &b.Title, &kind, &questions, &b.Model, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning board: %w", err)
	}
	b.Kind = catalog.DocType(kind)
	if err := json.Unmarshal([]byte(questions), &b.Questions); err != nil {
		return nil, fmt.Errorf("decoding questions: %w", err)
	}
	return &b, nil
}
