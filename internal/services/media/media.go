// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package media stores uploaded files on disk under random names.
package media

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/oliverandrich/cms/internal/models"
	"github.com/google/uuid"
)

// Upload constraint errors, mapped to 413/415 by the handler layer.
var (
	ErrTooLarge        = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Store writes uploads to a directory and serves them back by URL.
type Store struct {
	dir     string
	maxSize int64
}

// NewStore creates a store rooted at dir with a size cap in megabytes.
func NewStore(dir string, maxSizeMB int) *Store {
	return &Store{dir: dir, maxSize: int64(maxSizeMB) * 1024 * 1024}
}

// Save validates and persists an uploaded file, returning the media
// record to insert. The stored name is random so client-supplied
// filenames never touch the filesystem.
func (s *Store) Save(file *multipart.FileHeader, alt *string) (*models.Media, error) {
	if file.Size > s.maxSize {
		return nil, ErrTooLarge
	}

	mimeType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrUnsupportedType
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, err
	}

	storedName := uuid.NewString() + filepath.Ext(file.Filename)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	return &models.Media{
		Filename:   file.Filename,
		StoredName: storedName,
		MimeType:   mimeType,
		Size:       file.Size,
		URL:        "/uploads/" + storedName,
		Alt:        alt,
	}, nil
}

// Remove deletes a stored file. A file that is already gone is not an
// error; media rows outlive crashes and manual cleanups.
func (s *Store) Remove(storedName string) error {
	err := os.Remove(filepath.Join(s.dir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
