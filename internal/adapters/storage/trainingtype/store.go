package trainingtype

import (
	"context"

	domain "gymtracker/internal/domain/trainingtype"
)

// Store persists TrainingType state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.TrainingType, error)
	// GetByName is the pre-insert existence check backing name uniqueness.
	// Race-prone under concurrent writers; uniqueness is advisory.
	GetByName(ctx context.Context, name string) (domain.TrainingType, error)
	Save(ctx context.Context, value domain.TrainingType) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.TrainingType, error)
}
