package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymtracker/internal/domain/billing"
)

// TogglePaymentDeps holds dependencies for TogglePayment.
type TogglePaymentDeps struct {
	MemberStore MemberStore

	Now           func() time.Time
	NotifyChanged func()
}

// TogglePaymentResult reports the member's payment state after the toggle.
type TogglePaymentResult struct {
	PaymentStatus bool
	PaidUntil     string
}

// ExecuteTogglePayment flips a member's payment status.
// PRE: Member exists
// POST: Unpaid -> paid grants a window ending at the next billing date
// computed from the join date relative to today; paid -> unpaid clears
// the window
func ExecuteTogglePayment(ctx context.Context, memberID string, deps TogglePaymentDeps) (TogglePaymentResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	m, err := deps.MemberStore.GetByID(ctx, memberID)
	if err != nil {
		return TogglePaymentResult{}, err
	}

	var result TogglePaymentResult
	if m.PaymentStatus {
		result = TogglePaymentResult{PaymentStatus: false, PaidUntil: ""}
	} else {
		today := billing.Today(now()).Format(billing.DateLayout)
		result = TogglePaymentResult{
			PaymentStatus: true,
			PaidUntil:     billing.NextBillingDate(m.JoinDate, today),
		}
	}

	if err := deps.MemberStore.SetPaymentWindow(ctx, memberID, result.PaymentStatus, result.PaidUntil); err != nil {
		return TogglePaymentResult{}, err
	}

	slog.Info("member_event", "event", "payment_toggled", "member_id", memberID, "paid", result.PaymentStatus, "paid_until", result.PaidUntil)
	if deps.NotifyChanged != nil {
		deps.NotifyChanged()
	}
	return result, nil
}
