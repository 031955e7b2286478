package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"

	"quote-scraper/internal/failure"
	"quote-scraper/internal/models"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// JSONPersister saves a result set as one indented JSON array.
type JSONPersister struct {
	path string // Destination file, overwritten on every save
}

const (
	defaultOutputPath = "data.json"
	indent            = "    "
)

// New creates a new JSONPersister with an optional custom output path.
//
// Parameters:
//   - path: Optional variadic parameter for the file path. Uses defaultOutputPath if not provided.
//
// Returns:
//   - A pointer to a new JSONPersister instance.
func New(path ...string) *JSONPersister {
	p := defaultOutputPath
	if len(path) > 0 && path[0] != "" {
		p = path[0]
	}
	return &JSONPersister{path: p}
}

// Path returns the destination file.
func (jp *JSONPersister) Path() string {
	return jp.path
}

// Save writes quotes to the destination path.
//
// The data goes to a temporary file in the same directory which is renamed
// over the destination, so a failed save leaves any previous file intact.
//
// Parameters:
//   - quotes: Result set. nil is written as an empty array.
//   - logger: Logger for logging progress and errors.
//
// Returns:
//   - A Write error if the file could not be produced, nil otherwise.
func (jp *JSONPersister) Save(quotes []models.Quote, logger *zap.Logger) (err error) {
	if quotes == nil {
		quotes = []models.Quote{}
	}

	dir := filepath.Dir(jp.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return failure.New(failure.Write, "create output dir", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(jp.path)+".*.tmp")
	if err != nil {
		return failure.New(failure.Write, "create temp file", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
				logger.Warn("failed to remove temp file", zap.String("filepath", tmpName), zap.Error(rmErr))
			}
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	encErr := enc.Encode(quotes)
	if encErr = multierr.Append(encErr, tmp.Close()); encErr != nil {
		return failure.New(failure.Write, "write "+tmpName, encErr)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		return failure.New(failure.Write, "chmod "+tmpName, err)
	}
	if err := os.Rename(tmpName, jp.path); err != nil {
		return failure.New(failure.Write, "rename to "+jp.path, err)
	}

	logger.Info("saved quotes",
		zap.String("filepath", jp.path),
		zap.Int("count", len(quotes)))
	return nil
}
