package utils

import (
	"errors"         // Validation errors surfaced to the caller
	"mime/multipart" // Uploaded file headers
	"os"             // File removal
	"path/filepath"  // Path joining and extensions
	"strings"        // Extension normalization

	"github.com/google/uuid"     // Collision-resistant filenames
	"github.com/sirupsen/logrus" // Logging best-effort deletion failures
)

// MaxPhotoSize is the upload limit for profile photos (2 MiB)
const MaxPhotoSize = 2 * 1024 * 1024

// Validation errors for profile photo uploads
var (
	ErrEmptyFile    = errors.New("Please select a file to upload")
	ErrFileTooLarge = errors.New("File size exceeds maximum limit of 2MB")
	ErrBadFileType  = errors.New("Only JPG and PNG files are allowed")
)

// ValidatePhoto checks an uploaded profile photo against the size and
// content-type limits before anything touches disk
func ValidatePhoto(file *multipart.FileHeader) error {
	if file == nil || file.Size == 0 {
		return ErrEmptyFile // Empty payload
	}
	if file.Size > MaxPhotoSize {
		return ErrFileTooLarge // Over the 2 MiB limit
	}
	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		return ErrBadFileType // Only the two image types are accepted
	}
	return nil
}

// PhotoFilename generates a unique stored filename preserving the original extension
func PhotoFilename(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}

// DeletePhoto removes a stored photo file. Deletion is best-effort: failures
// are logged, never returned to the caller.
func DeletePhoto(uploadDir, filename string) {
	if filename == "" {
		return // Nothing stored
	}
	if err := os.Remove(filepath.Join(uploadDir, filename)); err != nil && !os.IsNotExist(err) {
		logrus.WithFields(logrus.Fields{
			"file":  filename,    // Stored filename
			"error": err.Error(), // Error message
		}).Warn("Failed to delete photo") // Log and move on
	}
}
