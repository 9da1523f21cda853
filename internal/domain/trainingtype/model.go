package trainingtype

import (
	"errors"
	"strings"
	"time"
)

// MaxNameLength bounds the user-editable name field.
const MaxNameLength = 100

// Domain errors
var (
	ErrNotFound  = errors.New("training type not found")
	ErrDuplicate = errors.New("training type already exists")
	ErrInUse     = errors.New("training type is referenced by existing members")
)

// TrainingType is a named category members enroll in. Members reference it by
// name (denormalized), so uniqueness of Name matters but is enforced by a
// pre-insert existence check rather than a database constraint.
type TrainingType struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Validate checks if the TrainingType has valid data.
// POST: returns nil if valid, error describing the violation otherwise
func (t *TrainingType) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("training type name cannot be empty")
	}
	if len(t.Name) > MaxNameLength {
		return errors.New("training type name cannot exceed 100 characters")
	}
	return nil
}

// DefaultNames is the set seeded when the collection is empty.
var DefaultNames = []string{"Karate", "Gym", "Taekwondo", "Gymnastics"}
