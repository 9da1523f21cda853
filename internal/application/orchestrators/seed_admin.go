package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gymtracker/internal/domain/account"

	"github.com/google/uuid"
)

// AccountStoreForSeed defines the store interface needed by SeedAdmin.
type AccountStoreForSeed interface {
	Count(ctx context.Context) (int, error)
	Save(ctx context.Context, a account.Account) error
}

// SeedAdminInput carries the bootstrap credentials.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeed

	Now        func() time.Time
	GenerateID func() string
}

// ExecuteSeedAdmin creates the operator account on first boot.
// PRE: input credentials come from configuration
// POST: No-op when any account already exists; otherwise one admin is created
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	generateID := func() string { return uuid.New().String() }
	if deps.GenerateID != nil {
		generateID = deps.GenerateID
	}

	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Already bootstrapped
	}

	if input.Email == "" || input.Password == "" {
		return errors.New("admin email and password must be configured for first boot")
	}

	acct := account.Account{
		ID:        generateID(),
		Email:     input.Email,
		Role:      account.RoleAdmin,
		CreatedAt: now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return err
	}
	if err := acct.Validate(); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("seed_event", "event", "admin_seeded", "email", acct.Email)
	return nil
}
