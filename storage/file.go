package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

type fileCatalogSource struct {
	path string
}

func NewFileCatalogSource(path string) (CatalogSource, error) {
	if path == "" {
		return nil, errors.New("catalog file path is required")
	}
	return &fileCatalogSource{path: path}, nil
}

func (s *fileCatalogSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", s.path, err)
	}
	return f, nil
}

func (s *fileCatalogSource) Describe() string {
	return "file:" + s.path
}
