package repository

import (
	"context"

	"github.com/alexanderramin/rueda/internal/domain"
)

// RunRepo stores finished scheduling runs. Runs are written once and never
// updated.
type RunRepo interface {
	Create(ctx context.Context, run *domain.Run) error
	// GetByID accepts a full ID or an unambiguous prefix.
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	// List returns run summaries, newest first, without slots or meetings.
	List(ctx context.Context, limit int) ([]*domain.Run, error)
	Delete(ctx context.Context, id string) error
}
