package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/erraggy/oafront/internal/fileutil"
)

// WriteFiles writes all generated files to the specified output directory.
// The directory is created if it doesn't exist.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	if err := os.MkdirAll(outputDir, fileutil.DirReadableByAll); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, file := range r.Files {
		filePath, err := safeJoin(outputDir, file.Name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filePath, file.Content, fileutil.ReadableByAll); err != nil {
			return fmt.Errorf("failed to write file %s: %w", file.Name, err)
		}
	}

	return nil
}

// WriteFile writes a single generated file to the specified path.
func (f *GeneratedFile) WriteFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, fileutil.DirReadableByAll); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, f.Content, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Diff compares the generated files with those already in outputDir and
// returns a unified diff. An empty string means the directory is up to date.
// Missing files diff against empty content.
func (r *GenerateResult) Diff(outputDir string) (string, error) {
	var out strings.Builder
	for _, file := range r.Files {
		filePath, err := safeJoin(outputDir, file.Name)
		if err != nil {
			return "", err
		}

		existing, err := os.ReadFile(filePath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		out.WriteString(udiff.Unified(filePath, filePath+" (generated)", string(existing), string(file.Content)))
	}
	return out.String(), nil
}

func safeJoin(dir, name string) (string, error) {
	safeName := filepath.Base(name)
	if safeName != name {
		return "", fmt.Errorf("invalid file name %q: must not contain path separators", name)
	}
	return filepath.Join(dir, safeName), nil
}
