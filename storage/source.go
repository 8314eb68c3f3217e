package storage

import (
	"context"
	"io"
)

// CatalogSource supplies the raw fixture catalog document. The engine never
// cares where the bytes come from; deployments pick a local file or an
// object-storage bucket through configuration.
type CatalogSource interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)

	// Describe identifies the source for logging.
	Describe() string
}
