package projections

import (
	"context"

	domainMember "gymtracker/internal/domain/member"
	domainTrainingType "gymtracker/internal/domain/trainingtype"
)

// MemberStore interface for member queries.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (domainMember.Member, error)
	// ListOrdered returns members sorted by creation timestamp, or
	// ErrOrderingUnsupported when the backing store cannot sort.
	ListOrdered(ctx context.Context) ([]domainMember.Member, error)
	List(ctx context.Context) ([]domainMember.Member, error)
}

// TrainingTypeStore interface for training category queries.
type TrainingTypeStore interface {
	List(ctx context.Context) ([]domainTrainingType.TrainingType, error)
}
