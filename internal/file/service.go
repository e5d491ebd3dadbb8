package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fileshare/service/internal/auth"
	"github.com/fileshare/service/internal/storage"
)

// uploadTimeout bounds a single object-store write. Uploads exceeding it
// are treated as a storage failure.
const uploadTimeout = 120 * time.Second

// signedUploadExpiry bounds how long a presigned direct-upload URL stays valid.
const signedUploadExpiry = 15 * time.Minute

// ErrNoFile is returned when an upload carries no payload.
var ErrNoFile = errors.New("no file provided")

// ErrUploadFailed is returned when the object store rejects or times out
// on the payload. No metadata record exists in that case.
var ErrUploadFailed = errors.New("object upload failed")

// ErrPersistence is returned when the metadata write fails after a
// successful object upload. The stored object is orphaned; there is no
// compensating delete.
var ErrPersistence = errors.New("metadata persistence failed")

// ErrPasswordRequired is returned by the gate when a protected file is
// requested without a password.
var ErrPasswordRequired = errors.New("password required")

// ErrIncorrectPassword is returned by the gate when the supplied password
// does not match.
var ErrIncorrectPassword = errors.New("incorrect password")

// Store is the metadata persistence interface the service depends on.
// *Repository is the production implementation.
type Store interface {
	Create(ctx context.Context, params CreateFileParams) (*File, error)
	GetByID(ctx context.Context, id string) (*File, error)
}

// UploadInput carries one upload request into the orchestrator.
type UploadInput struct {
	FileName string
	FileSize int64
	FileType string
	Password string // empty means no protection
	Body     io.Reader
}

// DownloadGrant is the gate's release decision for one request.
type DownloadGrant struct {
	StorageURL string
	Protected  bool
}

// Service composes the object store, the credential hasher, and the
// metadata store into the upload and retrieval flows.
type Service struct {
	repo  Store
	store storage.Storage
}

// NewService creates a new file Service.
func NewService(repo Store, store storage.Storage) *Service {
	return &Service{repo: repo, store: store}
}

// SubmitUpload stores the payload and then its metadata record, in that
// order, and returns the new record id. The ordering is the consistency
// contract: a metadata record never points at an object that was not
// fully written. The converse (object stored, metadata write failed) can
// leave an orphaned object behind.
func (s *Service) SubmitUpload(ctx context.Context, in UploadInput) (string, error) {
	if in.Body == nil || in.FileSize <= 0 {
		return "", ErrNoFile
	}

	key := objectKey(in.FileName)

	uctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()
	if err := s.store.Upload(uctx, key, in.Body, in.FileSize, in.FileType); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	var passwordHash *string
	if in.Password != "" {
		hashed, err := auth.HashPassword(in.Password)
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		passwordHash = &hashed
	}

	f, err := s.repo.Create(ctx, CreateFileParams{
		FileName:     in.FileName,
		FileSize:     in.FileSize,
		FileType:     in.FileType,
		StorageURL:   s.store.PublicURL(key),
		PasswordHash: passwordHash,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return f.ID, nil
}

// ResolveDownload decides whether to release the storage URL for id.
// Unprotected files are released unconditionally; a supplied password is
// ignored, not an error. Protected files are released only on a verified
// match. The URL appears on no other path.
func (s *Service) ResolveDownload(ctx context.Context, id, supplied string) (*DownloadGrant, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !f.Protected() {
		return &DownloadGrant{StorageURL: f.StorageURL}, nil
	}

	if supplied == "" {
		return nil, ErrPasswordRequired
	}

	ok, err := auth.VerifyPassword(*f.PasswordHash, supplied)
	if err != nil {
		return nil, fmt.Errorf("verify password for file %s: %w", f.ID, err)
	}
	if !ok {
		return nil, ErrIncorrectPassword
	}

	return &DownloadGrant{StorageURL: f.StorageURL, Protected: true}, nil
}

// GetFile returns the metadata record for id. Callers must not expose
// StorageURL from it when the record is protected; use ResolveDownload.
func (s *Service) GetFile(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

// SignUpload issues a presigned direct-upload URL for a fresh object key,
// letting a client PUT the payload straight to the object store.
func (s *Service) SignUpload(ctx context.Context, fileName string) (uploadURL, key string, err error) {
	key = objectKey(fileName)
	uploadURL, err = s.store.PresignedPut(ctx, key, signedUploadExpiry)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return uploadURL, key, nil
}

// IsNotFound returns true when the error indicates a missing file record.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// objectKey builds a storage key under a fresh random prefix. The prefix
// keeps keys unguessable and collision-free; the base name keeps downloads
// readable. Client-supplied path separators are stripped.
func objectKey(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, `\`, "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	return uuid.NewString() + "/" + base
}
