package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidPath is returned for paths that escape the storage root.
var ErrInvalidPath = errors.New("invalid storage path")

// LocalStorage handles file storage on the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage path: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: abs}, nil
}

// Upload copies r into subDir/YYYY/MM under a generated name that keeps
// filename's extension, and returns the relative path.
func (s *LocalStorage) Upload(r io.Reader, filename, subDir string) (string, error) {
	dir, filePath, err := s.newPath(filename, subDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return s.rel(filePath), nil
}

// UploadFromBytes saves bytes to a file and returns its relative path
func (s *LocalStorage) UploadFromBytes(data []byte, filename, subDir string) (string, error) {
	dir, filePath, err := s.newPath(filename, subDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.rel(filePath), nil
}

// Download returns a file for reading
func (s *LocalStorage) Download(relativePath string) (*os.File, error) {
	filePath, err := s.Resolve(relativePath)
	if err != nil {
		return nil, err
	}
	return os.Open(filePath)
}

// Delete removes a file
func (s *LocalStorage) Delete(relativePath string) error {
	filePath, err := s.Resolve(relativePath)
	if err != nil {
		return err
	}
	return os.Remove(filePath)
}

// Exists checks if a regular file exists
func (s *LocalStorage) Exists(relativePath string) bool {
	filePath, err := s.Resolve(relativePath)
	if err != nil {
		return false
	}
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}

// Resolve maps a relative path to an absolute one inside the storage root.
func (s *LocalStorage) Resolve(relativePath string) (string, error) {
	cleaned := filepath.Clean("/" + strings.TrimSpace(relativePath))
	if cleaned == "/" {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.basePath, cleaned)
	if !strings.HasPrefix(full, s.basePath+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}

func (s *LocalStorage) newPath(filename, subDir string) (string, string, error) {
	dir, err := s.Resolve(filepath.Join(subDir, time.Now().Format("2006/01")))
	if err != nil {
		return "", "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	return dir, filepath.Join(dir, name), nil
}

func (s *LocalStorage) rel(full string) string {
	relPath, _ := filepath.Rel(s.basePath, full)
	return filepath.ToSlash(relPath)
}

// ContentTypeFor returns the MIME type served for a stored file.
func ContentTypeFor(path string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	return "application/octet-stream"
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".html": "text/html",
}

// IsValidContentType checks if the content type is allowed for uploads
func IsValidContentType(contentType string) bool {
	for _, ct := range contentTypes {
		if ct == contentType {
			return true
		}
	}
	return false
}

// MaxFileSize returns the maximum allowed upload size (10MB)
func MaxFileSize() int64 {
	return 10 * 1024 * 1024
}
