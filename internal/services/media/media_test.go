// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package media

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadHeader builds a real multipart.FileHeader the way echo would
// hand it to the handler.
func uploadHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 1)

	t.Run("stores an image under a random name", func(t *testing.T) {
		alt := "a pixel"
		item, err := store.Save(uploadHeader(t, "pixel.png", "image/png", []byte("png-bytes")), &alt)
		require.NoError(t, err)

		assert.Equal(t, "pixel.png", item.Filename)
		assert.NotEqual(t, "pixel.png", item.StoredName)
		assert.Equal(t, ".png", filepath.Ext(item.StoredName))
		assert.Equal(t, "image/png", item.MimeType)
		assert.Equal(t, int64(len("png-bytes")), item.Size)
		assert.Equal(t, "/uploads/"+item.StoredName, item.URL)
		assert.Equal(t, "a pixel", *item.Alt)

		data, err := os.ReadFile(filepath.Join(dir, item.StoredName))
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		big := make([]byte, 2<<20)
		_, err := store.Save(uploadHeader(t, "big.png", "image/png", big), nil)
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("rejects non-image types", func(t *testing.T) {
		_, err := store.Save(uploadHeader(t, "doc.pdf", "application/pdf", []byte("%PDF")), nil)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 1)

	item, err := store.Save(uploadHeader(t, "pixel.png", "image/png", []byte("x")), nil)
	require.NoError(t, err)

	require.NoError(t, store.Remove(item.StoredName))
	_, statErr := os.Stat(filepath.Join(dir, item.StoredName))
	assert.True(t, os.IsNotExist(statErr))

	// Removing a missing file is not an error
	assert.NoError(t, store.Remove("already-gone.png"))
}
