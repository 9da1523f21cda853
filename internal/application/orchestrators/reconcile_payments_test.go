package orchestrators

import (
	"context"
	"strings"
	"testing"

	"gymtracker/internal/adapters/email"
	"gymtracker/internal/domain/member"
)

// recordingSender captures sent mail for assertions.
type recordingSender struct {
	sent []email.SendRequest
}

func (r *recordingSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	r.sent = append(r.sent, req)
	return email.SendResult{MessageID: "rec-1"}, nil
}

func paidMember(id, until string) member.Member {
	return member.Member{
		ID: id, FirstName: "Ana", LastName: "Petrova",
		JoinDate: "2026-01-10", TrainingType: "Karate",
		PaymentStatus: true, PaidUntil: until,
	}
}

// TestReconcile_ExpiresLapsedWindow verifies a past window is expired and
// cleared.
func TestReconcile_ExpiresLapsedWindow(t *testing.T) {
	store := newMockMemberStore()
	store.members["m1"] = paidMember("m1", "2026-03-14") // fixedNow is 2026-03-15

	res, err := ExecuteReconcilePayments(context.Background(), ReconcilePaymentsDeps{
		MemberStore: store,
		Now:         fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Expired != 1 {
		t.Errorf("Expired = %d, want 1", res.Expired)
	}
	got := store.members["m1"]
	if got.PaymentStatus {
		t.Error("member still paid after sweep")
	}
	if got.PaidUntil != "" {
		t.Errorf("paidUntil = %q, want cleared", got.PaidUntil)
	}
}

// TestReconcile_WindowEndingTodayStillValid verifies the boundary: a window
// ending today has not lapsed.
func TestReconcile_WindowEndingTodayStillValid(t *testing.T) {
	store := newMockMemberStore()
	store.members["m1"] = paidMember("m1", "2026-03-15")

	res, err := ExecuteReconcilePayments(context.Background(), ReconcilePaymentsDeps{
		MemberStore: store,
		Now:         fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Expired != 0 {
		t.Errorf("Expired = %d, want 0", res.Expired)
	}
	if !store.members["m1"].PaymentStatus {
		t.Error("member expired on the boundary day")
	}
}

// TestReconcile_PaidWithoutWindowIsExpired verifies inconsistent rows are
// expired rather than granted a window they never paid for.
func TestReconcile_PaidWithoutWindowIsExpired(t *testing.T) {
	store := newMockMemberStore()
	store.members["m1"] = paidMember("m1", "")

	res, err := ExecuteReconcilePayments(context.Background(), ReconcilePaymentsDeps{
		MemberStore: store,
		Now:         fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Expired != 1 {
		t.Errorf("Expired = %d, want 1", res.Expired)
	}
	got := store.members["m1"]
	if got.PaymentStatus {
		t.Error("member with no window still paid after sweep")
	}
	if got.PaidUntil != "" {
		t.Errorf("sweep must never backfill a window, got %q", got.PaidUntil)
	}
}

// TestReconcile_UnpaidMembersUntouched verifies unpaid members are skipped.
func TestReconcile_UnpaidMembersUntouched(t *testing.T) {
	store := newMockMemberStore()
	store.members["m1"] = member.Member{
		ID: "m1", FirstName: "Boris", LastName: "Iliev",
		JoinDate: "2026-01-10", TrainingType: "Gym",
	}

	res, err := ExecuteReconcilePayments(context.Background(), ReconcilePaymentsDeps{
		MemberStore: store,
		Now:         fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Expired != 0 {
		t.Errorf("Expired = %d, want 0", res.Expired)
	}
}

// TestReconcile_Idempotent verifies a second run changes nothing.
func TestReconcile_Idempotent(t *testing.T) {
	store := newMockMemberStore()
	store.members["m1"] = paidMember("m1", "2026-03-01")

	deps := ReconcilePaymentsDeps{MemberStore: store, Now: fixedNow}
	first, err := ExecuteReconcilePayments(context.Background(), deps)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Expired != 1 {
		t.Fatalf("first run Expired = %d, want 1", first.Expired)
	}

	second, err := ExecuteReconcilePayments(context.Background(), deps)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Expired != 0 {
		t.Errorf("second run Expired = %d, want 0", second.Expired)
	}
}

// TestReconcile_FailureIsolation verifies one failing member does not stop
// the sweep.
func TestReconcile_FailureIsolation(t *testing.T) {
	store := newMockMemberStore()
	store.members["a"] = paidMember("a", "2026-03-01")
	store.members["b"] = paidMember("b", "2026-03-01")
	store.failSetPaymentFor = "a"

	res, err := ExecuteReconcilePayments(context.Background(), ReconcilePaymentsDeps{
		MemberStore: store,
		Now:         fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Failed != 1 {
		t.Errorf("Failed = %d, want 1", res.Failed)
	}
	if res.Expired != 1 {
		t.Errorf("Expired = %d, want 1", res.Expired)
	}
	if store.members["b"].PaymentStatus {
		t.Error("member b not expired despite member a failing")
	}
}

// TestReconcile_SummaryEmail verifies the operator mail lists expired members.
func TestReconcile_SummaryEmail(t *testing.T) {
	store := newMockMemberStore()
	store.members["m1"] = paidMember("m1", "2026-03-01")
	sender := &recordingSender{}

	_, err := ExecuteReconcilePayments(context.Background(), ReconcilePaymentsDeps{
		MemberStore: store,
		EmailSender: sender,
		NotifyTo:    "owner@example.org",
		Now:         fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(sender.sent))
	}
	mail := sender.sent[0]
	if mail.To[0] != "owner@example.org" {
		t.Errorf("To = %v", mail.To)
	}
	if !strings.Contains(mail.HTML, "Ana Petrova") {
		t.Errorf("summary body missing member name: %s", mail.HTML)
	}
}

// TestReconcile_NoEmailWhenNothingExpired verifies silence on a clean sweep.
func TestReconcile_NoEmailWhenNothingExpired(t *testing.T) {
	store := newMockMemberStore()
	store.members["m1"] = paidMember("m1", "2026-12-31")
	sender := &recordingSender{}

	_, err := ExecuteReconcilePayments(context.Background(), ReconcilePaymentsDeps{
		MemberStore: store,
		EmailSender: sender,
		NotifyTo:    "owner@example.org",
		Now:         fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d mails, want 0", len(sender.sent))
	}
}
