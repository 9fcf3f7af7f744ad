package service

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edumind/elearn-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memFile adapts a bytes.Reader to multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func uploadFixture(content, contentType string) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: "upload.bin",
		Size:     int64(len(content)),
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
	return memFile{bytes.NewReader([]byte(content))}, header
}

func newMediaService(t *testing.T) (*MediaService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		UploadDir:     dir,
		MaxImageBytes: 1024,
		MaxVideoBytes: 4096,
	}
	return NewMediaService(cfg), dir
}

func TestSaveUploadImage(t *testing.T) {
	svc, dir := newMediaService(t)
	file, header := uploadFixture("png-bytes", "image/png")

	url, err := svc.SaveUpload(file, header, MediaKindImage)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(saved))
}

func TestSaveUploadVideoExtension(t *testing.T) {
	svc, _ := newMediaService(t)
	file, header := uploadFixture("mkv-bytes", "video/x-matroska")

	url, err := svc.SaveUpload(file, header, MediaKindVideo)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".mkv"))
}

func TestSaveUploadRejectsUnsupportedType(t *testing.T) {
	svc, _ := newMediaService(t)

	// A video MIME type is not acceptable where an image is expected.
	file, header := uploadFixture("data", "video/mp4")
	_, err := svc.SaveUpload(file, header, MediaKindImage)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	file, header = uploadFixture("data", "application/octet-stream")
	_, err = svc.SaveUpload(file, header, MediaKindVideo)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestSaveUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := newMediaService(t)
	file, header := uploadFixture("data", "image/jpeg")
	header.Size = 2048

	_, err := svc.SaveUpload(file, header, MediaKindImage)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestSaveUploadUniqueFilenames(t *testing.T) {
	svc, _ := newMediaService(t)

	file1, header1 := uploadFixture("a", "image/png")
	url1, err := svc.SaveUpload(file1, header1, MediaKindImage)
	require.NoError(t, err)

	file2, header2 := uploadFixture("b", "image/png")
	url2, err := svc.SaveUpload(file2, header2, MediaKindImage)
	require.NoError(t, err)

	assert.NotEqual(t, url1, url2)
}
