package domain

import "context"

// CatalogSource loads the static provider catalog.
type CatalogSource interface {
	Load(ctx context.Context) ([]Provider, error)
}
