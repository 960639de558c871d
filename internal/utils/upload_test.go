package utils

import (
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photoHeader(size int64, contentType string) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: "photo.png",
		Header:   header,
		Size:     size,
	}
}

func TestValidatePhoto(t *testing.T) {
	tests := []struct {
		name string
		file *multipart.FileHeader
		want error
	}{
		{"nil file", nil, ErrEmptyFile},
		{"empty file", photoHeader(0, "image/png"), ErrEmptyFile},
		{"too large", photoHeader(MaxPhotoSize+1, "image/png"), ErrFileTooLarge},
		{"exactly at limit", photoHeader(MaxPhotoSize, "image/png"), nil},
		{"jpeg", photoHeader(1024, "image/jpeg"), nil},
		{"png", photoHeader(1024, "image/png"), nil},
		{"gif rejected", photoHeader(1024, "image/gif"), ErrBadFileType},
		{"pdf rejected", photoHeader(1024, "application/pdf"), ErrBadFileType},
		{"missing content type", photoHeader(1024, ""), ErrBadFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePhoto(tt.file))
		})
	}
}

func TestPhotoFilename(t *testing.T) {
	name := PhotoFilename("Holiday Picture.PNG")
	assert.True(t, strings.HasSuffix(name, ".png")) // Extension kept, lowercased
	assert.NotContains(t, name, " ")                // Original name discarded

	other := PhotoFilename("Holiday Picture.PNG")
	assert.NotEqual(t, name, other) // Each upload gets a fresh name

	assert.Equal(t, "", filepath.Ext(PhotoFilename("noextension")))
}

func TestDeletePhoto(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stored.png")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))

	DeletePhoto(dir, "stored.png")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	DeletePhoto(dir, "missing.png") // Missing file is not an error
	DeletePhoto(dir, "")            // Empty name is a no-op
}
