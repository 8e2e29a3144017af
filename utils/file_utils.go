// utils/file_utils.go
package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const uploadBaseDir = "uploads"

// IsValidImageFile checks if the uploaded file is a valid image
func IsValidImageFile(file *multipart.FileHeader) bool {
	allowedExtensions := []string{".jpg", ".jpeg", ".png", ".gif"}

	filename := strings.ToLower(file.Filename)
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}

	return false
}

// ValidateFileSize rejects uploads over the given limit in bytes
func ValidateFileSize(file *multipart.FileHeader, limit int64) error {
	if file.Size > limit {
		return errors.New("file too large")
	}
	return nil
}

// SaveUploadedImage stores an uploaded image under uploads/<subDir> with a
// generated filename and returns its relative URL path.
func SaveUploadedImage(file *multipart.FileHeader, subDir string) (string, error) {
	if !IsValidImageFile(file) {
		return "", errors.New("invalid image type")
	}
	if err := ValidateFileSize(file, 5*1024*1024); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %v", err)
	}
	defer src.Close()

	filename := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	dir := filepath.Join(uploadBaseDir, subDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %v", dir, err)
	}

	fullPath := filepath.Join(dir, filename)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %v", fullPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}

	return "/" + filepath.ToSlash(fullPath), nil
}

// GenerateImageThumbnail produces a 320px-wide JPEG thumbnail next to the
// stored image and returns the thumbnail's relative URL path.
func GenerateImageThumbnail(imageURL string) (string, error) {
	imagePath := strings.TrimPrefix(imageURL, "/")

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}

	// Resize to max width of 320px while maintaining aspect ratio
	resized := imaging.Resize(img, 320, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %v", err)
	}

	base := filepath.Base(imagePath)
	thumbnailPath := filepath.Join(uploadBaseDir, "thumbnails",
		strings.TrimSuffix(base, filepath.Ext(base))+".jpg")

	if err := os.MkdirAll(filepath.Dir(thumbnailPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %v", err)
	}

	if err := os.WriteFile(thumbnailPath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %v", err)
	}

	return "/" + filepath.ToSlash(thumbnailPath), nil
}
