package filereader

import (
	"bufio"
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
)

// FileReader reads the list of quote URLs from a text file, one per line.
type FileReader struct {
	path string
}

// New creates a new FileReader
func New(path string) *FileReader {
	return &FileReader{path: path}
}

// ReadURLs returns the URLs in file order. Blank lines and lines starting with
// '#' are skipped, as is a leading "url" or "urls" header line.
func (fr *FileReader) ReadURLs(ctx context.Context, logger *zap.Logger) ([]string, error) {
	file, err := os.Open(fr.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	urls := []string{}
	first := true

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			logger.Warn("file reading interrupted", zap.Error(err))
			return nil, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if first {
			first = false
			if h := strings.ToLower(line); h == "url" || h == "urls" {
				continue
			}
		}
		logger.Debug("read URL", zap.String("url", line))
		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logger.Info("finished reading URLs", zap.Int("total_urls", len(urls)), zap.String("path", fr.path))
	return urls, nil
}
