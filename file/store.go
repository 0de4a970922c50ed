package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store stages uploaded documents under a local directory. Staging is an
// intake detail: the pipeline reads the staged bytes once and nothing else
// depends on the files afterwards.
type Store struct {
	dir    string
	logger *zap.Logger
}

func NewStore(dir string, logger *zap.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger,
	}
}

// Save writes the upload to the staging directory, creating it on demand.
// A name collision gets a short unique-ID suffix instead of overwriting the
// existing file.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.dir, filepath.Base(filename))
	if _, err := os.Stat(path); err == nil {
		ext := filepath.Ext(path)
		base := strings.TrimSuffix(filepath.Base(path), ext)
		suffix := uuid.NewString()[:8]
		path = filepath.Join(s.dir, fmt.Sprintf("%s_%s%s", base, suffix, ext))
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write staged file: %w", err)
	}

	s.logger.Info("document staged", zap.String("path", path))
	return path, nil
}
