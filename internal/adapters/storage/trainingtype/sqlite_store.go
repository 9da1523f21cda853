package trainingtype

import (
	"context"
	"database/sql"
	"time"

	"gymtracker/internal/adapters/storage"
	domain "gymtracker/internal/domain/trainingtype"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new training type store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

func scanTrainingType(scan func(dest ...any) error) (domain.TrainingType, error) {
	var entity domain.TrainingType
	var createdAt string
	if err := scan(&entity.ID, &entity.Name, &createdAt); err != nil {
		return domain.TrainingType{}, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		entity.CreatedAt = t
	}
	return entity, nil
}

// GetByID retrieves a TrainingType by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.TrainingType, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, created_at FROM training_type WHERE id = ?", id)
	entity, err := scanTrainingType(row.Scan)
	if err == sql.ErrNoRows {
		return domain.TrainingType{}, domain.ErrNotFound
	}
	return entity, err
}

// GetByName retrieves a TrainingType by exact name.
// PRE: name is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.TrainingType, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, created_at FROM training_type WHERE name = ?", name)
	entity, err := scanTrainingType(row.Scan)
	if err == sql.ErrNoRows {
		return domain.TrainingType{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists a TrainingType to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.TrainingType) error {
	createdAt := entity.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO training_type (id, name, created_at) VALUES (?, ?, ?) ON CONFLICT(id) DO UPDATE SET name=excluded.name",
		entity.ID, entity.Name, createdAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Delete removes a TrainingType from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM training_type WHERE id = ?", id)
	return err
}

// List retrieves all training types ordered by creation timestamp.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.TrainingType, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at FROM training_type ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TrainingType
	for rows.Next() {
		entity, err := scanTrainingType(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
