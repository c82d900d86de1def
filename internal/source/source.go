// Package source retrieves raw pipeline specification documents. The
// loader itself never touches the filesystem or the network; anything
// that can produce document bytes implements Source.
package source

import (
	"context"
	"strings"
)

// Source retrieves the raw bytes of a pipeline specification document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// ForRef picks a source for a reference string: http(s) URLs fetch over
// the network, everything else is treated as a local file path.
func ForRef(ref string) Source {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return &HTTPSource{URL: ref}
	}
	return &FileSource{Path: ref}
}
