package member_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"gymtracker/internal/adapters/storage"
	memberStore "gymtracker/internal/adapters/storage/member"
	domain "gymtracker/internal/domain/member"
)

func newTestStore(t *testing.T) *memberStore.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return memberStore.NewSQLiteStore(db)
}

func testMember(id string, createdAt time.Time) domain.Member {
	return domain.Member{
		ID:            id,
		FirstName:     "Ana",
		LastName:      "Petrova",
		JoinDate:      "2024-01-31",
		TrainingType:  "Karate",
		PaymentStatus: true,
		PaymentAmount: 40,
		PaidUntil:     "2026-03-31",
		CreatedAt:     createdAt,
	}
}

// TestSaveAndGetRoundTrip verifies all fields survive a save/load cycle.
func TestSaveAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)
	m := testMember("m1", created)
	m.Notes = "prefers *morning* sessions"
	if err := store.Save(ctx, m); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FirstName != "Ana" || got.LastName != "Petrova" {
		t.Errorf("name = %q %q", got.FirstName, got.LastName)
	}
	if !got.PaymentStatus || got.PaidUntil != "2026-03-31" {
		t.Errorf("payment = %v until %q", got.PaymentStatus, got.PaidUntil)
	}
	if got.PaymentAmount != 40 {
		t.Errorf("amount = %v, want 40", got.PaymentAmount)
	}
	if got.Notes != "prefers *morning* sessions" {
		t.Errorf("notes = %q", got.Notes)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("createdAt = %v, want %v", got.CreatedAt, created)
	}
}

// TestGetByIDNotFound verifies the not-found sentinel.
func TestGetByIDNotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetByID(context.Background(), "ghost"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestSetPaymentWindow verifies the partial update touches only payment fields.
func TestSetPaymentWindow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testMember("m1", time.Now())); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.SetPaymentWindow(ctx, "m1", false, ""); err != nil {
		t.Fatalf("SetPaymentWindow: %v", err)
	}

	got, err := store.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PaymentStatus {
		t.Error("payment status still true after clear")
	}
	if got.PaidUntil != "" {
		t.Errorf("paidUntil = %q, want empty", got.PaidUntil)
	}
	if got.TrainingType != "Karate" || got.PaymentAmount != 40 {
		t.Error("non-payment fields were modified")
	}

	if err := store.SetPaymentWindow(ctx, "ghost", true, "2026-04-30"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

// TestListOrderedByCreation verifies creation-timestamp ordering with
// timestampless rows sorting first.
func TestListOrderedByCreation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, time.February, 1, 8, 0, 0, 0, time.UTC)
	second := testMember("b", base.Add(time.Hour))
	first := testMember("a", base)
	pending := testMember("z", time.Time{}) // created_at not yet assigned

	for _, m := range []domain.Member{second, first, pending} {
		if err := store.Save(ctx, m); err != nil {
			t.Fatalf("Save(%s): %v", m.ID, err)
		}
	}

	got, err := store.ListOrdered(ctx)
	if err != nil {
		t.Fatalf("ListOrdered: %v", err)
	}
	wantOrder := []string{"z", "a", "b"}
	if len(got) != len(wantOrder) {
		t.Fatalf("len = %d, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, id)
		}
	}
}

// TestDelete verifies removal.
func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testMember("m1", time.Now())); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "m1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByID(ctx, "m1"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
