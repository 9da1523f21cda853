package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gymtracker/internal/domain/trainingtype"

	"github.com/google/uuid"
)

// TrainingTypeStore defines the interface for training type persistence.
type TrainingTypeStore interface {
	GetByID(ctx context.Context, id string) (trainingtype.TrainingType, error)
	GetByName(ctx context.Context, name string) (trainingtype.TrainingType, error)
	Save(ctx context.Context, tt trainingtype.TrainingType) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]trainingtype.TrainingType, error)
}

// AddTrainingTypeDeps holds dependencies for AddTrainingType.
type AddTrainingTypeDeps struct {
	TrainingTypeStore TrainingTypeStore

	Now           func() time.Time
	GenerateID    func() string
	NotifyChanged func()
}

// ExecuteAddTrainingType creates a new training category.
// PRE: name is non-empty after trimming
// POST: Category created unless the name is already taken. The check is a
// pre-insert read, not a schema constraint, so a concurrent insert can
// still slip a duplicate through.
func ExecuteAddTrainingType(ctx context.Context, name string, deps AddTrainingTypeDeps) (string, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	generateID := func() string { return uuid.New().String() }
	if deps.GenerateID != nil {
		generateID = deps.GenerateID
	}

	tt := trainingtype.TrainingType{
		ID:        generateID(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now(),
	}
	if err := tt.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := deps.TrainingTypeStore.GetByName(ctx, tt.Name); err == nil {
		return "", trainingtype.ErrDuplicate
	} else if err != trainingtype.ErrNotFound {
		return "", err
	}

	if err := deps.TrainingTypeStore.Save(ctx, tt); err != nil {
		return "", err
	}

	slog.Info("training_type_event", "event", "training_type_added", "training_type_id", tt.ID, "name", tt.Name)
	if deps.NotifyChanged != nil {
		deps.NotifyChanged()
	}
	return tt.ID, nil
}
