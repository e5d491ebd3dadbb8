// Package file manages shared file records: persistence, upload
// orchestration, and gated retrieval.
package file

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// File represents a stored file record. StorageURL and PasswordHash are
// never serialized; handlers release the URL only through the download gate.
type File struct {
	ID           string    `json:"id"`
	FileName     string    `json:"fileName"`
	FileSize     int64     `json:"fileSize"`
	FileType     string    `json:"fileType"`
	StorageURL   string    `json:"-"`
	PasswordHash *string   `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Protected reports whether retrieval of this file requires a password.
func (f *File) Protected() bool {
	return f.PasswordHash != nil && *f.PasswordHash != ""
}

// CreateFileParams holds the fields for a new file record. The id and
// created_at are assigned by the database.
type CreateFileParams struct {
	FileName     string
	FileSize     int64
	FileType     string
	StorageURL   string
	PasswordHash *string
}

// ErrNotFound is returned when a file record does not exist.
var ErrNotFound = errors.New("file not found")

// Repository handles all file database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new file record and returns it with the
// database-assigned id and timestamp.
func (r *Repository) Create(ctx context.Context, params CreateFileParams) (*File, error) {
	f := &File{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO files (file_name, file_size, file_type, storage_url, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, file_name, file_size, file_type, storage_url, password_hash, created_at`,
		params.FileName, params.FileSize, params.FileType, params.StorageURL, params.PasswordHash,
	).Scan(&f.ID, &f.FileName, &f.FileSize, &f.FileType, &f.StorageURL, &f.PasswordHash, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create file record: %w", err)
	}
	return f, nil
}

// GetByID fetches a file record by its UUID. Syntactically invalid ids are
// reported as not found rather than as a database error.
func (r *Repository) GetByID(ctx context.Context, id string) (*File, error) {
	f := &File{}
	err := r.db.QueryRow(ctx,
		`SELECT id, file_name, file_size, file_type, storage_url, password_hash, created_at
		 FROM files WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.FileName, &f.FileSize, &f.FileType, &f.StorageURL, &f.PasswordHash, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get file by id: %w", err)
	}
	return f, nil
}

// isInvalidTextRepresentation checks whether an error is a PostgreSQL
// invalid_text_representation (code 22P02), raised for malformed UUIDs.
func isInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
