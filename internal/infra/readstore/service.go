package readstore

import (
	"context"

	"github.com/patas-felizes/grooming-api/internal/infra"
	"github.com/patas-felizes/grooming-api/internal/infra/db"
	"github.com/patas-felizes/grooming-api/internal/pkg/pgconv"
	"github.com/patas-felizes/grooming-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type ServiceReadStore struct {
	db db.DBTX
}

func NewServiceReadStore(db db.DBTX) *ServiceReadStore {
	return &ServiceReadStore{db: db}
}

func (s *ServiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	var snap shared.ServiceSnapshot
	err := s.db.QueryRow(ctx, `
SELECT id, name, price_cents, duration_minutes FROM services WHERE id = $1`, id).
		Scan(&snap.ID, &snap.Name, &snap.PriceCents, &snap.DurationMinutes)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service", err)
	}
	return &snap, nil
}
