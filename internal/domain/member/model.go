package member

import (
	"errors"
	"strings"
	"time"

	"gymtracker/internal/domain/billing"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 100
	MaxNotesLength = 2000
)

// Domain errors
var (
	ErrNotFound = errors.New("member not found")
)

// Member holds state for a gym member. TrainingType is a denormalized copy of
// a TrainingType name, not a foreign key: renaming a type does not cascade.
type Member struct {
	ID            string
	FirstName     string
	LastName      string
	JoinDate      string // "YYYY-MM-DD" calendar date
	TrainingType  string
	PaymentStatus bool
	PaymentAmount float64
	PaidUntil     string // "YYYY-MM-DD"; empty when no payment window is open
	Notes         string
	CreatedAt     time.Time // assigned on first save; zero until then
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: PaymentStatus=true implies PaidUntil holds a date >= today,
// enforced asynchronously by the reconciliation sweep
func (m *Member) Validate() error {
	if strings.TrimSpace(m.FirstName) == "" {
		return errors.New("member first name cannot be empty")
	}
	if strings.TrimSpace(m.LastName) == "" {
		return errors.New("member last name cannot be empty")
	}
	if len(m.FirstName) > MaxNameLength || len(m.LastName) > MaxNameLength {
		return errors.New("member name cannot exceed 100 characters")
	}
	if _, ok := billing.ParseDate(m.JoinDate); !ok {
		return errors.New("member join date must be a YYYY-MM-DD date")
	}
	if strings.TrimSpace(m.TrainingType) == "" {
		return errors.New("member training type cannot be empty")
	}
	if m.PaymentAmount < 0 {
		return errors.New("payment amount cannot be negative")
	}
	if m.PaidUntil != "" {
		if _, ok := billing.ParseDate(m.PaidUntil); !ok {
			return errors.New("paid-until must be a YYYY-MM-DD date")
		}
	}
	if len(m.Notes) > MaxNotesLength {
		return errors.New("member notes cannot exceed 2000 characters")
	}
	return nil
}

// FullName returns "First Last", the string the search filter matches against.
// INVARIANT: Member fields are not mutated
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// WindowExpired reports whether the member's payment window has lapsed as of
// now. A paid member with no recorded window counts as expired: windows are
// only granted by explicit paid actions, so a missing one is inconsistent
// state, never a grace period.
// POST: false for unpaid members regardless of PaidUntil
func (m *Member) WindowExpired(now time.Time) bool {
	if !m.PaymentStatus {
		return false
	}
	until, ok := billing.ParseDate(m.PaidUntil)
	if !ok {
		return true
	}
	return until.Before(billing.Today(now))
}
