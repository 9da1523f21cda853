package member

import (
	"context"
	"errors"

	domain "gymtracker/internal/domain/member"
)

// ErrOrderingUnsupported classifies subscription-read failures caused by the
// backend not supporting creation-timestamp ordering (e.g. a database created
// before the created_at column existed). Callers fall back to the unordered
// read and sort client-side; any other error is a connectivity failure.
var ErrOrderingUnsupported = errors.New("ordering by creation timestamp unsupported")

// IsOrderingUnsupported reports whether err is an ordering-unsupported error.
func IsOrderingUnsupported(err error) bool {
	return errors.Is(err, ErrOrderingUnsupported)
}

// Store persists Member state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
	Save(ctx context.Context, value domain.Member) error
	// SetPaymentWindow is the partial update used by the paid toggle and the
	// reconciliation sweep: it touches only payment_status and paid_until.
	SetPaymentWindow(ctx context.Context, id string, paid bool, paidUntil string) error
	Delete(ctx context.Context, id string) error
	// ListOrdered returns the full collection ordered by creation timestamp
	// ascending. Fails with ErrOrderingUnsupported when the backend cannot
	// order by created_at.
	ListOrdered(ctx context.Context) ([]domain.Member, error)
	// List returns the full collection with no ordering guarantee.
	List(ctx context.Context) ([]domain.Member, error)
}
