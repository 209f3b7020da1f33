package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ideiatech/smartleader-api/internal/domain"
	"github.com/ideiatech/smartleader-api/internal/platform/logger"
	"github.com/ideiatech/smartleader-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// PersonStore implements the store.PersonStore interface using a
// PostgreSQL database as the storage backend.
type PersonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPersonStore creates a new PostgreSQL implementation of the
// store.PersonStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
func NewPersonStore(db store.DBTX, logger *slog.Logger) *PersonStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PersonStore{
		db:     db,
		logger: logger.With(slog.String("component", "person_store")),
	}
}

// Ensure PersonStore implements store.PersonStore.
var _ store.PersonStore = (*PersonStore)(nil)

const personColumns = `id, email, username, full_name, hashed_password, role, is_active,
		is_verified, department, position, manager_id, capacity, current_load,
		created_at, updated_at, last_login`

// Create implements store.PersonStore.Create.
func (s *PersonStore) Create(ctx context.Context, person *domain.Person) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := person.Validate(); err != nil {
		log.Warn("person validation failed during create",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return err
	}

	query := `
		INSERT INTO persons (id, email, username, full_name, hashed_password, role,
			is_active, is_verified, department, position, manager_id, capacity,
			current_load, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := s.db.ExecContext(ctx, query,
		person.ID,
		person.Email,
		person.Username,
		person.FullName,
		person.HashedPassword,
		person.Role,
		person.IsActive,
		person.IsVerified,
		nullString(person.Department),
		nullString(person.Position),
		person.ManagerID,
		person.Capacity,
		person.CurrentLoad,
		person.CreatedAt,
		person.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("unique violation during person creation",
				slog.String("error", err.Error()),
				slog.String("email", person.Email))
			return uniqueViolationError(err)
		}

		log.Error("failed to create person",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return MapError(err)
	}

	log.Info("person created successfully",
		slog.String("person_id", person.ID.String()),
		slog.String("role", string(person.Role)))
	return nil
}

// GetByID implements store.PersonStore.GetByID.
func (s *PersonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	query := fmt.Sprintf(`SELECT %s FROM persons WHERE id = $1`, personColumns)
	return s.scanPerson(s.db.QueryRowContext(ctx, query, id))
}

// GetByEmail implements store.PersonStore.GetByEmail.
func (s *PersonStore) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	query := fmt.Sprintf(`SELECT %s FROM persons WHERE email = $1`, personColumns)
	return s.scanPerson(s.db.QueryRowContext(ctx, query, email))
}

// Update implements store.PersonStore.Update.
func (s *PersonStore) Update(ctx context.Context, person *domain.Person) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := person.Validate(); err != nil {
		log.Warn("person validation failed during update",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return err
	}

	query := `
		UPDATE persons
		SET email = $2, username = $3, full_name = $4, hashed_password = $5,
			role = $6, is_active = $7, is_verified = $8, department = $9,
			position = $10, manager_id = $11, capacity = $12, current_load = $13,
			updated_at = NOW(), last_login = $14
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		person.ID,
		person.Email,
		person.Username,
		person.FullName,
		person.HashedPassword,
		person.Role,
		person.IsActive,
		person.IsVerified,
		nullString(person.Department),
		nullString(person.Position),
		person.ManagerID,
		person.Capacity,
		person.CurrentLoad,
		person.LastLogin,
	)
	if err != nil {
		log.Error("failed to update person",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "person"); err != nil {
		return fmt.Errorf("%w", store.ErrPersonNotFound)
	}

	return nil
}

// Delete implements store.PersonStore.Delete.
func (s *PersonStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete person",
			slog.String("error", err.Error()),
			slog.String("person_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "person"); err != nil {
		return fmt.Errorf("%w", store.ErrPersonNotFound)
	}

	log.Info("person deleted successfully", slog.String("person_id", id.String()))
	return nil
}

// ListTeam implements store.PersonStore.ListTeam.
func (s *PersonStore) ListTeam(ctx context.Context, managerID uuid.UUID) ([]*domain.Person, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM persons
		WHERE manager_id = $1 AND is_active = TRUE
		ORDER BY full_name
	`, personColumns)

	rows, err := s.db.QueryContext(ctx, query, managerID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return s.collectPersons(rows)
}

// ListActiveContributors implements store.PersonStore.ListActiveContributors.
func (s *PersonStore) ListActiveContributors(ctx context.Context, managerID *uuid.UUID) ([]*domain.Person, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if managerID != nil {
		query := fmt.Sprintf(`
			SELECT %s FROM persons
			WHERE role = $1 AND is_active = TRUE AND manager_id = $2
			ORDER BY full_name
		`, personColumns)
		rows, err = s.db.QueryContext(ctx, query, domain.RoleContributor, *managerID)
	} else {
		query := fmt.Sprintf(`
			SELECT %s FROM persons
			WHERE role = $1 AND is_active = TRUE
			ORDER BY full_name
		`, personColumns)
		rows, err = s.db.QueryContext(ctx, query, domain.RoleContributor)
	}
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return s.collectPersons(rows)
}

// ListSkillNames implements store.PersonStore.ListSkillNames.
func (s *PersonStore) ListSkillNames(ctx context.Context, personID uuid.UUID) ([]string, error) {
	query := `
		SELECT sk.name
		FROM person_skills ps
		JOIN skills sk ON sk.id = ps.skill_id
		WHERE ps.person_id = $1
		ORDER BY sk.name
	`

	rows, err := s.db.QueryContext(ctx, query, personID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, MapError(err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return names, nil
}

// WithTx implements store.PersonStore.WithTx.
func (s *PersonStore) WithTx(tx *sql.Tx) store.PersonStore {
	return &PersonStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanPerson scans a single person row.
func (s *PersonStore) scanPerson(row *sql.Row) (*domain.Person, error) {
	var (
		person     domain.Person
		department sql.NullString
		position   sql.NullString
	)

	err := row.Scan(
		&person.ID,
		&person.Email,
		&person.Username,
		&person.FullName,
		&person.HashedPassword,
		&person.Role,
		&person.IsActive,
		&person.IsVerified,
		&department,
		&position,
		&person.ManagerID,
		&person.Capacity,
		&person.CurrentLoad,
		&person.CreatedAt,
		&person.UpdatedAt,
		&person.LastLogin,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, store.ErrPersonNotFound
		}
		return nil, MapError(err)
	}

	person.Department = department.String
	person.Position = position.String
	return &person, nil
}

// collectPersons scans all person rows from a result set.
func (s *PersonStore) collectPersons(rows *sql.Rows) ([]*domain.Person, error) {
	persons := make([]*domain.Person, 0)
	for rows.Next() {
		var (
			person     domain.Person
			department sql.NullString
			position   sql.NullString
		)

		err := rows.Scan(
			&person.ID,
			&person.Email,
			&person.Username,
			&person.FullName,
			&person.HashedPassword,
			&person.Role,
			&person.IsActive,
			&person.IsVerified,
			&department,
			&position,
			&person.ManagerID,
			&person.Capacity,
			&person.CurrentLoad,
			&person.CreatedAt,
			&person.UpdatedAt,
			&person.LastLogin,
		)
		if err != nil {
			return nil, MapError(err)
		}

		person.Department = department.String
		person.Position = position.String
		persons = append(persons, &person)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return persons, nil
}

// nullString converts an empty string to a NULL database value.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// uniqueViolationError maps a unique violation to the entity-specific
// duplicate error based on the violated constraint.
func uniqueViolationError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		case strings.Contains(pgErr.ConstraintName, "username"):
			return fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
		}
	}
	return MapError(err)
}
