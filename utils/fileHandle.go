package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveUploadedFile stores an uploaded file under destDir with a unique name
// and returns the stored path.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := uuid.NewString() + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// GetFileURL maps a stored path to its public URL. Files live under
// ./public, which is served at the site root.
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	url := filepath.ToSlash(filePath)
	url = strings.TrimPrefix(url, "./")
	url = strings.TrimPrefix(url, "public")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return url
}

// IsAllowedUpload checks the file extension against a whitelist
func IsAllowedUpload(filename string, allowed ...string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
