package ports

import (
	"context"

	"agriyield/domain/forecast"
)

// ArtifactStorePort persists and reloads the artifact bundle as one unit.
// Load either returns a complete, mutually-consistent bundle or fails; it
// never yields a partially-initialized bundle.
type ArtifactStorePort interface {
	// Save persists all bundle members plus the manifest
	Save(ctx context.Context, bundle *forecast.ArtifactBundle) error

	// Load reads the bundle back. A missing member yields
	// core.ErrArtifactNotFound; an inconsistent one core.ErrSchemaMismatch.
	Load(ctx context.Context) (*forecast.ArtifactBundle, error)
}
