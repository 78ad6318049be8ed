package repository

import (
	"context"

	"github.com/patas-felizes/grooming-api/internal/infra"
	"github.com/patas-felizes/grooming-api/internal/infra/db"

	"github.com/google/uuid"
)

type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// UpdatePrice changes the catalog price going forward. Past
// appointments keep their snapshotted prices untouched.
func (r *CatalogRepository) UpdatePrice(ctx context.Context, tx db.DBTX, serviceID uuid.UUID, priceCents int64) error {
	tag, err := tx.Exec(ctx, `UPDATE services SET price_cents = $2, updated_at = now() WHERE id = $1`, serviceID, priceCents)
	if err != nil {
		return infra.WrapRepoErr("failed to update service price", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}
