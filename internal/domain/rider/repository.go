package rider

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for rider repository operations
type Repository interface {
	Create(ctx context.Context, rider *Rider) error
	GetByID(ctx context.Context, riderID uuid.UUID) (*Rider, error)
	Update(ctx context.Context, rider *Rider) error
	Delete(ctx context.Context, riderID uuid.UUID) error
	List(ctx context.Context, activeOnly bool, page, pageSize int) ([]*Rider, int64, error)
}
