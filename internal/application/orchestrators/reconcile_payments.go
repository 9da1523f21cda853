package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gymtracker/internal/adapters/email"
	"gymtracker/internal/domain/billing"
)

// ReconcilePaymentsDeps provides the dependencies for the payment sweep.
type ReconcilePaymentsDeps struct {
	MemberStore MemberStore

	// EmailSender and NotifyTo enable the expiry summary mail. Both must be
	// set for a mail to go out.
	EmailSender email.Sender
	NotifyTo    string

	Now           func() time.Time
	NotifyChanged func()
}

// ReconcileResult summarises one sweep run.
type ReconcileResult struct {
	Checked int
	Expired int
	Failed  int
}

// ExecuteReconcilePayments expires members whose billing window has lapsed.
// A paid member whose window end has passed is marked unpaid and the window
// is cleared. A paid member with no readable window end is inconsistent
// state and is expired too, with a warning, rather than being granted a
// window it never paid for.
// PRE: Deps are valid and store is connected
// POST: Every eligible member processed; one member's failure never stops
// the sweep. Idempotent: a second run over the same data changes nothing.
func ExecuteReconcilePayments(ctx context.Context, deps ReconcilePaymentsDeps) (ReconcileResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	members, err := deps.MemberStore.List(ctx)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("list members for sweep: %w", err)
	}

	result := ReconcileResult{Checked: len(members)}
	var expiredNames []string

	for _, m := range members {
		if !m.WindowExpired(now()) {
			continue
		}
		if m.PaidUntil == "" {
			slog.Warn("sweep_event", "event", "missing_paid_until", "member_id", m.ID)
		} else if _, ok := billing.ParseDate(m.PaidUntil); !ok {
			slog.Warn("sweep_event", "event", "unreadable_paid_until", "member_id", m.ID, "paid_until", m.PaidUntil)
		}

		if err := deps.MemberStore.SetPaymentWindow(ctx, m.ID, false, ""); err != nil {
			result.Failed++
			slog.Error("sweep_event", "event", "expire_failed", "member_id", m.ID, "error", err)
			continue
		}
		result.Expired++
		expiredNames = append(expiredNames, m.FullName())
		slog.Info("sweep_event", "event", "member_expired", "member_id", m.ID, "paid_until", m.PaidUntil)
	}

	if result.Expired > 0 {
		if deps.NotifyChanged != nil {
			deps.NotifyChanged()
		}
		sendExpirySummary(ctx, deps, now(), expiredNames)
	}

	slog.Info("sweep_event", "event", "sweep_complete", "checked", result.Checked, "expired", result.Expired, "failed", result.Failed)
	return result, nil
}

// sendExpirySummary mails the operator a list of members expired by this run.
// Best effort: a send failure is logged and otherwise ignored.
func sendExpirySummary(ctx context.Context, deps ReconcilePaymentsDeps, now time.Time, names []string) {
	if deps.EmailSender == nil || deps.NotifyTo == "" {
		return
	}

	var body strings.Builder
	body.WriteString("<p>The following memberships expired on ")
	body.WriteString(billing.Today(now).Format(billing.DateLayout))
	body.WriteString(":</p><ul>")
	for _, name := range names {
		body.WriteString("<li>")
		body.WriteString(name)
		body.WriteString("</li>")
	}
	body.WriteString("</ul>")

	_, err := deps.EmailSender.Send(ctx, email.SendRequest{
		To:      []string{deps.NotifyTo},
		Subject: fmt.Sprintf("%d membership(s) expired", len(names)),
		HTML:    body.String(),
	})
	if err != nil {
		slog.Error("sweep_event", "event", "summary_email_failed", "error", err)
	}
}

// SweepConfig holds configuration for the background sweep scheduler.
type SweepConfig struct {
	Interval time.Duration
	Enabled  bool

	// Changes, when set, triggers an extra sweep whenever the member
	// collection changes. Safe to feed from the sweep's own NotifyChanged:
	// the follow-up run finds a consistent set and writes nothing.
	Changes <-chan struct{}
}

// DefaultSweepConfig returns sensible defaults: hourly, enabled.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Interval: time.Hour,
		Enabled:  true,
	}
}

// StartSweepScheduler runs the payment sweep once immediately and then on a
// ticker until the returned cancel function is called.
// PRE: Context is valid, deps are initialized
// POST: Goroutine started, returns cancel function
func StartSweepScheduler(ctx context.Context, deps ReconcilePaymentsDeps, cfg SweepConfig) func() {
	if !cfg.Enabled {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)

	go func() {
		if _, err := ExecuteReconcilePayments(ctx, deps); err != nil {
			slog.Error("sweep_scheduler_error", "error", err)
		}

		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := ExecuteReconcilePayments(ctx, deps); err != nil {
					slog.Error("sweep_scheduler_error", "error", err)
				}
			case <-cfg.Changes:
				if _, err := ExecuteReconcilePayments(ctx, deps); err != nil {
					slog.Error("sweep_scheduler_error", "error", err)
				}
			}
		}
	}()

	return cancel
}
