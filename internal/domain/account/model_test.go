package account_test

import (
	"testing"
	"time"

	"gymtracker/internal/domain/account"
)

// TestAccountValidate tests validation of Account.
func TestAccountValidate(t *testing.T) {
	tests := []struct {
		name    string
		acct    account.Account
		wantErr bool
	}{
		{"valid", account.Account{Email: "op@gym.example", Role: account.RoleAdmin}, false},
		{"empty email", account.Account{Email: "", Role: account.RoleAdmin}, true},
		{"email without at", account.Account{Email: "op.gym.example", Role: account.RoleAdmin}, true},
		{"unknown role", account.Account{Email: "op@gym.example", Role: "coach"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.acct.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestPasswordRoundTrip tests SetPassword/CheckPassword.
func TestPasswordRoundTrip(t *testing.T) {
	a := account.Account{Email: "op@gym.example", Role: account.RoleAdmin}

	if err := a.SetPassword("short"); err != account.ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := a.SetPassword(""); err != account.ErrEmptyPassword {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}

	if err := a.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if err := a.CheckPassword("correct horse battery"); err != nil {
		t.Errorf("CheckPassword rejected correct password: %v", err)
	}
	if err := a.CheckPassword("wrong password!!"); err != account.ErrWrongPassword {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

// TestLockout tests the failed-login lockout window.
func TestLockout(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	a := account.Account{Email: "op@gym.example", Role: account.RoleAdmin}

	for i := 0; i < 4; i++ {
		a.RecordFailedLogin(now)
	}
	if a.IsLocked(now) {
		t.Error("account locked before 5th failure")
	}
	a.RecordFailedLogin(now)
	if !a.IsLocked(now) {
		t.Error("account not locked after 5 failures")
	}
	if a.IsLocked(now.Add(16 * time.Minute)) {
		t.Error("lock did not expire after 15 minutes")
	}

	a.ResetFailedLogins()
	if a.FailedLogins != 0 || a.IsLocked(now) {
		t.Error("ResetFailedLogins did not clear state")
	}
}
