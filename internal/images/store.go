package images

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrTooLarge means the payload exceeded the configured upload limit.
	// Nothing is written when it is returned.
	ErrTooLarge = errors.New("image payload exceeds the upload size limit")

	// ErrNotFound means no image exists for the requested id.
	ErrNotFound = errors.New("image not found")
)

// Store persists uploaded images as text payloads (base64 or data-URL) in the
// images table. Rows are immutable once written; there is no update path.
type Store struct {
	db       *sql.DB
	maxBytes int64
}

func NewStore(db *sql.DB, maxBytes int64) *Store {
	return &Store{db: db, maxBytes: maxBytes}
}

func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Insert stores a new image and returns its generated id. The size limit is
// checked before touching the database so an oversized payload never inserts
// a row.
func (s *Store) Insert(ctx context.Context, userID, data, contentType, fileName string) (string, error) {
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w (%d bytes, limit %d)", ErrTooLarge, len(data), s.maxBytes)
	}
	if fileName == "" {
		fileName = "unnamed"
	}

	id := uuid.NewString()

	const q = `
INSERT INTO images (id, user_id, data, content_type, file_name)
VALUES ($1, $2, $3, $4, $5)`

	if _, err := s.db.ExecContext(ctx, q, id, userID, data, contentType, fileName); err != nil {
		return "", fmt.Errorf("insert image: %w", err)
	}
	return id, nil
}

// Get returns the stored payload and content type for id.
func (s *Store) Get(ctx context.Context, id string) (data, contentType string, err error) {
	const q = `
SELECT data, content_type FROM images WHERE id = $1`

	err = s.db.QueryRowContext(ctx, q, id).Scan(&data, &contentType)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("fetch image: %w", err)
	}
	return data, contentType, nil
}
