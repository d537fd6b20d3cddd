package storage

import (
	"fmt"
	"os"
	"path/filepath"

	errs "mastodiary/pkg/errors"
)

// ReadTemplate reads the HTML template the diary is rendered into
func ReadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errs.Wrap(errs.ErrorTypeTemplateRead, fmt.Sprintf("failed to read template %s", path), err)
	}
	return string(data), nil
}

// WriteFileAtomic writes data to path through a temporary file in the same
// directory and a rename, so readers see either the old file or the new one.
// On failure the temporary file is removed and path is left untouched.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errs.Wrap(errs.ErrorTypeOutputWrite, "failed to create output directory", err)
	}

	// Create temporary file first
	out, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errs.Wrap(errs.ErrorTypeOutputWrite, "failed to create temporary file", err)
	}
	tempFile := out.Name()

	_, err = out.Write(data)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return errs.Wrap(errs.ErrorTypeOutputWrite, fmt.Sprintf("failed to write %s", path), err)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return errs.Wrap(errs.ErrorTypeOutputWrite, "failed to close file", closeErr)
	}

	// CreateTemp uses 0600; the output is a public web page
	if err := os.Chmod(tempFile, 0644); err != nil {
		os.Remove(tempFile)
		return errs.Wrap(errs.ErrorTypeOutputWrite, "failed to set file permissions", err)
	}

	// Atomic rename
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return errs.Wrap(errs.ErrorTypeOutputWrite, fmt.Sprintf("failed to replace %s", path), err)
	}

	return nil
}
