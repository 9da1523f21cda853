package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymtracker/internal/domain/account"
)

// mockAccountStore implements AccountStoreForLogin and AccountStoreForSeed.
type mockAccountStore struct {
	accounts map[string]account.Account // keyed by email
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := m.accounts[email]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.Email] = a
	return nil
}

func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.accounts), nil
}

func seededAccount(t *testing.T, email, password string) account.Account {
	t.Helper()
	a := account.Account{
		ID:        "acc-1",
		Email:     email,
		Role:      account.RoleAdmin,
		CreatedAt: fixedTime,
	}
	if err := a.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	return a
}

// TestExecuteLogin_Success verifies a valid credential pair.
func TestExecuteLogin_Success(t *testing.T) {
	store := newMockAccountStore()
	store.accounts["admin@example.org"] = seededAccount(t, "admin@example.org", "correct-horse-battery")

	res, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@example.org",
		Password: "correct-horse-battery",
	}, LoginDeps{AccountStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AccountID != "acc-1" || res.Role != account.RoleAdmin {
		t.Errorf("unexpected result: %+v", res)
	}
}

// TestExecuteLogin_WrongPassword verifies the failure path records the attempt.
func TestExecuteLogin_WrongPassword(t *testing.T) {
	store := newMockAccountStore()
	store.accounts["admin@example.org"] = seededAccount(t, "admin@example.org", "correct-horse-battery")

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@example.org",
		Password: "wrong",
	}, LoginDeps{AccountStore: store, Now: fixedNow})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if store.accounts["admin@example.org"].FailedLogins != 1 {
		t.Errorf("FailedLogins = %d, want 1", store.accounts["admin@example.org"].FailedLogins)
	}
}

// TestExecuteLogin_UnknownEmail verifies unknown accounts get the same error
// as a wrong password.
func TestExecuteLogin_UnknownEmail(t *testing.T) {
	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "ghost@example.org",
		Password: "whatever-password",
	}, LoginDeps{AccountStore: newMockAccountStore(), Now: fixedNow})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// TestExecuteLogin_LockedAccount verifies locked accounts are rejected even
// with the right password.
func TestExecuteLogin_LockedAccount(t *testing.T) {
	store := newMockAccountStore()
	a := seededAccount(t, "admin@example.org", "correct-horse-battery")
	a.LockedUntil = fixedTime.Add(10 * time.Minute)
	store.accounts["admin@example.org"] = a

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@example.org",
		Password: "correct-horse-battery",
	}, LoginDeps{AccountStore: store, Now: fixedNow})
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("expected ErrAccountLocked, got %v", err)
	}
}

// --- ExecuteSeedAdmin tests ---

// TestExecuteSeedAdmin_FirstBoot verifies the operator account is created.
func TestExecuteSeedAdmin_FirstBoot(t *testing.T) {
	store := newMockAccountStore()
	err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{
		Email:    "admin@example.org",
		Password: "correct-horse-battery",
	}, SeedAdminDeps{AccountStore: store, Now: fixedNow, GenerateID: fixedID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, ok := store.accounts["admin@example.org"]
	if !ok {
		t.Fatal("admin not created")
	}
	if a.Role != account.RoleAdmin {
		t.Errorf("Role = %q, want admin", a.Role)
	}
	if err := a.CheckPassword("correct-horse-battery"); err != nil {
		t.Errorf("seeded password does not verify: %v", err)
	}
}

// TestExecuteSeedAdmin_SkipsWhenAccountsExist verifies the no-op path.
func TestExecuteSeedAdmin_SkipsWhenAccountsExist(t *testing.T) {
	store := newMockAccountStore()
	store.accounts["existing@example.org"] = seededAccount(t, "existing@example.org", "correct-horse-battery")

	err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{
		Email:    "admin@example.org",
		Password: "another-long-password",
	}, SeedAdminDeps{AccountStore: store, Now: fixedNow, GenerateID: fixedID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.accounts) != 1 {
		t.Errorf("accounts = %d, want 1 (seed must be skipped)", len(store.accounts))
	}
}

// TestExecuteSeedAdmin_MissingCredentials verifies the misconfiguration error.
func TestExecuteSeedAdmin_MissingCredentials(t *testing.T) {
	err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{}, SeedAdminDeps{
		AccountStore: newMockAccountStore(),
		Now:          fixedNow,
		GenerateID:   fixedID,
	})
	if err == nil {
		t.Fatal("expected error for empty first-boot credentials")
	}
}
