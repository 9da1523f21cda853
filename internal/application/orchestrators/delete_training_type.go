package orchestrators

import (
	"context"
	"log/slog"

	"gymtracker/internal/domain/trainingtype"
)

// DeleteTrainingTypeDeps holds dependencies for DeleteTrainingType.
type DeleteTrainingTypeDeps struct {
	TrainingTypeStore TrainingTypeStore
	MemberStore       MemberStore

	NotifyChanged func()
}

// ExecuteDeleteTrainingType removes a training category.
// PRE: Category exists
// POST: Category deleted unless any member currently references it by name.
// The in-use check reads the member list; members keep their stored
// category string, so deleting a category never rewrites member rows.
func ExecuteDeleteTrainingType(ctx context.Context, id string, deps DeleteTrainingTypeDeps) error {
	tt, err := deps.TrainingTypeStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	members, err := deps.MemberStore.List(ctx)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m.TrainingType == tt.Name {
			slog.Info("training_type_event", "event", "delete_refused_in_use", "training_type_id", id, "name", tt.Name)
			return trainingtype.ErrInUse
		}
	}

	if err := deps.TrainingTypeStore.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("training_type_event", "event", "training_type_deleted", "training_type_id", id, "name", tt.Name)
	if deps.NotifyChanged != nil {
		deps.NotifyChanged()
	}
	return nil
}
