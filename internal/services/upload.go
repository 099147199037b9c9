package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
)

var allowedResumeExtensions = []string{".pdf", ".docx", ".txt", ".md"}

// UploadReader reads resume uploads fully into memory. Nothing is written to
// disk.
type UploadReader interface {
	ReadFile(file *multipart.FileHeader) ([]byte, error)
}

type uploadReader struct {
	maxFileSize int64
}

func NewUploadReader(maxFileSize int64) UploadReader {
	return &uploadReader{
		maxFileSize: maxFileSize,
	}
}

func (u *uploadReader) ReadFile(file *multipart.FileHeader) ([]byte, error) {
	// Validate file extensions
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != "" && !slices.Contains(allowedResumeExtensions, ext) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, ext)
	}

	if file.Size > u.maxFileSize {
		return nil, fmt.Errorf("%w: max size is %d bytes", ErrFileTooLarge, u.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// the header size is client supplied, so cap the read as well
	data, err := io.ReadAll(io.LimitReader(src, u.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > u.maxFileSize {
		return nil, fmt.Errorf("%w: max size is %d bytes", ErrFileTooLarge, u.maxFileSize)
	}

	return data, nil
}
