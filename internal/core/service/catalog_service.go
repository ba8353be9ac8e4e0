package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

// CatalogService serves the consumables catalog and seeds it from a JSON file
// on first startup.
type CatalogService struct {
	catalog ports.CatalogRepository
}

func NewCatalogService(catalog ports.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// List returns every catalog item.
func (s *CatalogService) List(ctx context.Context) ([]domain.Consumable, error) {
	return s.catalog.List(ctx)
}

// Seed loads the catalog file into the store when the collection is empty.
// Re-running against a populated store is a no-op.
func (s *CatalogService) Seed(ctx context.Context, path string) (int, error) {
	n, err := s.catalog.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var items []domain.Consumable
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	if err := s.catalog.InsertMany(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}
