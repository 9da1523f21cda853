package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// EditMemberInput carries the editable fields for a member. Payment status
// and the billing window are deliberately absent: those change only through
// the paid toggle and the reconciliation sweep.
type EditMemberInput struct {
	ID            string
	FirstName     string
	LastName      string
	JoinDate      string
	TrainingType  string
	PaymentAmount float64
	Notes         string
}

// EditMemberDeps holds dependencies for EditMember.
type EditMemberDeps struct {
	MemberStore MemberStore

	NotifyChanged func()
}

// ExecuteEditMember replaces a member's editable fields.
// PRE: Member exists; input passes domain validation
// POST: Names, join date, training type, amount, and notes replaced; ID,
// creation timestamp, payment status, and billing window preserved
func ExecuteEditMember(ctx context.Context, input EditMemberInput, deps EditMemberDeps) error {
	current, err := deps.MemberStore.GetByID(ctx, input.ID)
	if err != nil {
		return err
	}

	updated := current
	updated.FirstName = strings.TrimSpace(input.FirstName)
	updated.LastName = strings.TrimSpace(input.LastName)
	updated.JoinDate = input.JoinDate
	updated.TrainingType = input.TrainingType
	updated.PaymentAmount = input.PaymentAmount
	updated.Notes = input.Notes

	if err := updated.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := deps.MemberStore.Save(ctx, updated); err != nil {
		return err
	}

	slog.Info("member_event", "event", "member_edited", "member_id", updated.ID)
	if deps.NotifyChanged != nil {
		deps.NotifyChanged()
	}
	return nil
}
