package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// StorageService keeps uploaded request assets on local disk under the
// upload directory, which the router serves back at /uploads.
type StorageService struct {
	baseDir string
	baseURL string
}

func NewStorageService(baseDir, baseURL string) *StorageService {
	return &StorageService{baseDir: baseDir, baseURL: baseURL}
}

// SaveFacebookPostImage stores an uploaded image namespaced by the
// employee code and a timestamp, and returns its public URL.
func (ss *StorageService) SaveFacebookPostImage(file *multipart.FileHeader, employeeCode string) (string, error) {
	safeName := unsafeFilenameChars.ReplaceAllString(filepath.Base(file.Filename), "_")
	relPath := filepath.Join("facebook-posts", employeeCode,
		fmt.Sprintf("%d-%s", time.Now().UnixNano(), safeName))

	dstPath := filepath.Join(ss.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("save image: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", ss.baseURL, filepath.ToSlash(relPath)), nil
}
