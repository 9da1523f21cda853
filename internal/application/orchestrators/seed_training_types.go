package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymtracker/internal/domain/trainingtype"

	"github.com/google/uuid"
)

// SeedTrainingTypesDeps holds dependencies for SeedTrainingTypes.
type SeedTrainingTypesDeps struct {
	TrainingTypeStore TrainingTypeStore

	Now        func() time.Time
	GenerateID func() string
}

// ExecuteSeedTrainingTypes creates the default training categories if none exist.
func ExecuteSeedTrainingTypes(ctx context.Context, deps SeedTrainingTypesDeps) error {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	generateID := func() string { return uuid.New().String() }
	if deps.GenerateID != nil {
		generateID = deps.GenerateID
	}

	existing, err := deps.TrainingTypeStore.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil // Already seeded
	}

	for _, name := range trainingtype.DefaultNames {
		tt := trainingtype.TrainingType{
			ID:        generateID(),
			Name:      name,
			CreatedAt: now(),
		}
		if err := deps.TrainingTypeStore.Save(ctx, tt); err != nil {
			return err
		}
	}

	slog.Info("seed_event", "event", "training_types_seeded", "count", len(trainingtype.DefaultNames))
	return nil
}
