// Package download saves generated archives to the local filesystem.
package download

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ErrInvalidName indicates a filename that cannot be saved as-is.
var ErrInvalidName = errors.New("invalid download filename")

// Artifact is a binary payload to be saved under Name.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Saver triggers a local save of an artifact and returns where it landed.
type Saver interface {
	Save(a Artifact) (string, error)
}

// FileSaver writes artifacts into a directory.
type FileSaver struct {
	dir string
	log logrus.FieldLogger
}

// NewFileSaver creates a FileSaver rooted at dir.
func NewFileSaver(dir string, log logrus.FieldLogger) *FileSaver {
	if dir == "" {
		dir = "."
	}
	return &FileSaver{dir: dir, log: log}
}

// Dir returns the destination directory.
func (s *FileSaver) Dir() string {
	return s.dir
}

// Save writes a.Data to <dir>/<a.Name>, replacing any existing file.
// Data is staged in a temp file that is always released before Save returns.
func (s *FileSaver) Save(a Artifact) (string, error) {
	name, err := cleanName(a.Name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	ref, err := acquire(s.dir, name)
	if err != nil {
		return "", err
	}
	defer ref.release()

	dest := filepath.Join(s.dir, name)
	if err := ref.commit(a.Data, dest); err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"path":         dest,
		"bytes":        len(a.Data),
		"content_type": a.ContentType,
	}).Info("archive saved")

	return dest, nil
}

// cleanName keeps only the final path element so a name cannot escape the directory.
func cleanName(name string) (string, error) {
	base := filepath.Base(filepath.Clean(name))
	if name == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return base, nil
}
