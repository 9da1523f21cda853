package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gymtracker/internal/domain/billing"
	"gymtracker/internal/domain/member"

	"github.com/google/uuid"
)

// MemberStore defines the interface for member persistence.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	Save(ctx context.Context, m member.Member) error
	SetPaymentWindow(ctx context.Context, id string, paid bool, paidUntil string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]member.Member, error)
}

// ErrInvalidInput wraps domain validation failures so handlers can separate
// a bad request from a store failure. The registry deliberately has no
// uniqueness rule on member names: homonyms are real people.
var ErrInvalidInput = errors.New("invalid input")

// AddMemberInput carries input for the orchestrator.
type AddMemberInput struct {
	FirstName     string
	LastName      string
	JoinDate      string // "YYYY-MM-DD"; defaults to today when empty
	TrainingType  string
	PaymentStatus bool
	PaymentAmount float64
	Notes         string
}

// AddMemberDeps holds dependencies for AddMember.
type AddMemberDeps struct {
	MemberStore MemberStore

	// Now is injected for tests; defaults to time.Now.
	Now func() time.Time
	// GenerateID is injected for tests; defaults to uuid.New().String.
	GenerateID func() string
	// NotifyChanged, if set, is called after a successful write.
	NotifyChanged func()
}

// ExecuteAddMember coordinates member registration.
// PRE: Non-empty names between 1 and 100 chars, valid training type
// POST: Member created; if paid, the billing window end is computed from
// the join date relative to today
func ExecuteAddMember(ctx context.Context, input AddMemberInput, deps AddMemberDeps) (string, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	generateID := func() string { return uuid.New().String() }
	if deps.GenerateID != nil {
		generateID = deps.GenerateID
	}

	joinDate := strings.TrimSpace(input.JoinDate)
	if joinDate == "" {
		joinDate = billing.Today(now()).Format(billing.DateLayout)
	}

	m := member.Member{
		ID:            generateID(),
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		JoinDate:      joinDate,
		TrainingType:  input.TrainingType,
		PaymentStatus: input.PaymentStatus,
		PaymentAmount: input.PaymentAmount,
		Notes:         input.Notes,
		CreatedAt:     now(),
	}
	if m.PaymentStatus {
		m.PaidUntil = billing.NextBillingDate(m.JoinDate, billing.Today(now()).Format(billing.DateLayout))
	}

	if err := m.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return "", err
	}

	slog.Info("member_event", "event", "member_added", "member_id", m.ID, "training_type", m.TrainingType, "paid", m.PaymentStatus)
	if deps.NotifyChanged != nil {
		deps.NotifyChanged()
	}
	return m.ID, nil
}
