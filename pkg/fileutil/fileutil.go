package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohmanhakim/amp-sanitizer/pkg/failure"
)

// GetFileExtension extracts the lowercased file extension from a path, or empty string if none
func GetFileExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	fullDir := filepath.Join(targetPath...)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return nil
}

// ReadInput reads the whole document from path, or from fallback when path
// is empty or "-".
func ReadInput(path string, fallback io.Reader) ([]byte, failure.ClassifiedError) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		if fallback == nil {
			return nil, &FileError{Message: "no input given", Cause: ErrCauseReadError}
		}
		data, err = io.ReadAll(fallback)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, &FileError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseReadError,
		}
	}
	return data, nil
}
