package source

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads a local spec document.
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file %s: %w", s.Path, err)
	}
	return data, nil
}
