package member

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gymtracker/internal/adapters/storage"
	domain "gymtracker/internal/domain/member"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

const memberColumns = "id, first_name, last_name, join_date, training_type, payment_status, payment_amount, paid_until, notes, created_at"

// scanMember reads one member row. paid_until and created_at are nullable:
// a member has no paid_until while unpaid, and no created_at until the write
// path assigns one.
func scanMember(scan func(dest ...any) error) (domain.Member, error) {
	var entity domain.Member
	var paymentStatus int
	var paidUntil, createdAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.FirstName,
		&entity.LastName,
		&entity.JoinDate,
		&entity.TrainingType,
		&paymentStatus,
		&entity.PaymentAmount,
		&paidUntil,
		&entity.Notes,
		&createdAt,
	)
	if err != nil {
		return domain.Member{}, err
	}
	entity.PaymentStatus = paymentStatus != 0
	if paidUntil.Valid {
		entity.PaidUntil = paidUntil.String
	}
	if createdAt.Valid {
		if t, perr := time.Parse(time.RFC3339, createdAt.String); perr == nil {
			entity.CreatedAt = t
		}
	}
	return entity, nil
}

// GetByID retrieves a Member by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Member, error) {
	query := "SELECT " + memberColumns + " FROM member WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanMember(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Member{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists a Member to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "first_name", "last_name", "join_date", "training_type", "payment_status", "payment_amount", "paid_until", "notes", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"first_name=excluded.first_name", "last_name=excluded.last_name",
		"join_date=excluded.join_date", "training_type=excluded.training_type",
		"payment_status=excluded.payment_status", "payment_amount=excluded.payment_amount",
		"paid_until=excluded.paid_until", "notes=excluded.notes",
		"created_at=excluded.created_at",
	}

	query := fmt.Sprintf(
		"INSERT INTO member (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var paidUntil any
	if entity.PaidUntil != "" {
		paidUntil = entity.PaidUntil
	}
	var createdAt any
	if !entity.CreatedAt.IsZero() {
		createdAt = entity.CreatedAt.UTC().Format(time.RFC3339)
	}
	paymentStatus := 0
	if entity.PaymentStatus {
		paymentStatus = 1
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.FirstName,
		entity.LastName,
		entity.JoinDate,
		entity.TrainingType,
		paymentStatus,
		entity.PaymentAmount,
		paidUntil,
		entity.Notes,
		createdAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// SetPaymentWindow updates only the payment fields of a member.
// PRE: id is non-empty; paidUntil is "" or a YYYY-MM-DD date
// POST: payment_status and paid_until are updated; other fields untouched
func (s *SQLiteStore) SetPaymentWindow(ctx context.Context, id string, paid bool, paidUntil string) error {
	paymentStatus := 0
	if paid {
		paymentStatus = 1
	}
	var until any
	if paidUntil != "" {
		until = paidUntil
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE member SET payment_status = ?, paid_until = ? WHERE id = ?",
		paymentStatus, until, id,
	)
	if err != nil {
		return err
	}
	if n, rerr := res.RowsAffected(); rerr == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a Member from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM member WHERE id = ?", id)
	return err
}

// ListOrdered retrieves all members ordered by creation timestamp ascending.
// Rows without a timestamp sort first (they predate server assignment).
// POST: Returns all members, or ErrOrderingUnsupported when the schema
// cannot order by created_at
func (s *SQLiteStore) ListOrdered(ctx context.Context) ([]domain.Member, error) {
	query := "SELECT " + memberColumns + " FROM member ORDER BY created_at ASC, id ASC"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		if strings.Contains(err.Error(), "no such column") {
			return nil, fmt.Errorf("%w: %v", ErrOrderingUnsupported, err)
		}
		return nil, err
	}
	defer rows.Close()
	return collectMembers(rows)
}

// List retrieves all members with no ordering guarantee.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Member, error) {
	query := "SELECT " + memberColumns + " FROM member"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMembers(rows)
}

func collectMembers(rows *sql.Rows) ([]domain.Member, error) {
	var results []domain.Member
	for rows.Next() {
		entity, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
