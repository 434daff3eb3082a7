package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("resume", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["resume"][0]
}

func TestScratchStorageCreateAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scratch")
	storage := NewScratchStorage(dir, 0)
	require.NoError(t, storage.EnsureDir())

	f, err := storage.CreateTemp("voice", ".wav")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	name := filepath.Base(f.Name())
	assert.True(t, strings.HasPrefix(name, "voice_"))
	assert.True(t, strings.HasSuffix(name, ".wav"))

	require.NoError(t, storage.Remove(f.Name()))
	_, err = os.Stat(f.Name())
	assert.True(t, os.IsNotExist(err))

	// removing twice is not an error
	assert.NoError(t, storage.Remove(f.Name()))
}

func TestScratchStorageReadUpload(t *testing.T) {
	storage := NewScratchStorage(t.TempDir(), 16)

	data, err := storage.ReadUpload(multipartFile(t, "cv.PDF", []byte("%PDF-1.4")))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)

	_, err = storage.ReadUpload(multipartFile(t, "cv.docx", []byte("x")))
	assert.ErrorIs(t, err, ErrInvalidFileType)

	_, err = storage.ReadUpload(multipartFile(t, "big.pdf", bytes.Repeat([]byte("x"), 32)))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
