package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ideiatech/smartleader-api/internal/domain"
	"github.com/ideiatech/smartleader-api/internal/platform/logger"
	"github.com/ideiatech/smartleader-api/internal/store"
)

// WellbeingStore implements the store.WellbeingStore interface using a
// PostgreSQL database as the storage backend.
type WellbeingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewWellbeingStore creates a new PostgreSQL implementation of the
// store.WellbeingStore interface.
func NewWellbeingStore(db store.DBTX, logger *slog.Logger) *WellbeingStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &WellbeingStore{
		db:     db,
		logger: logger.With(slog.String("component", "wellbeing_store")),
	}
}

// Ensure WellbeingStore implements store.WellbeingStore.
var _ store.WellbeingStore = (*WellbeingStore)(nil)

const wellbeingColumns = `id, person_id, mood, energy, note, ai_sentiment_score,
		ai_burnout_risk, ai_recommendations, created_at`

// Create implements store.WellbeingStore.Create.
func (s *WellbeingStore) Create(ctx context.Context, check *domain.WellbeingCheck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := check.Validate(); err != nil {
		log.Warn("wellbeing check validation failed during create",
			slog.String("error", err.Error()),
			slog.String("check_id", check.ID.String()))
		return err
	}

	query := `
		INSERT INTO wellbeing_checks (id, person_id, mood, energy, note,
			ai_sentiment_score, ai_burnout_risk, ai_recommendations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		check.ID,
		check.PersonID,
		check.Mood,
		check.Energy,
		nullString(check.Note),
		check.AISentimentScore,
		check.AIBurnoutRisk,
		nullRawMessage(check.AIRecommendations),
		check.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during wellbeing check creation",
				slog.String("error", err.Error()),
				slog.String("person_id", check.PersonID.String()))
			return fmt.Errorf("%w: person not found", store.ErrInvalidEntity)
		}

		log.Error("failed to create wellbeing check",
			slog.String("error", err.Error()),
			slog.String("check_id", check.ID.String()))
		return MapError(err)
	}

	log.Info("wellbeing check created successfully",
		slog.String("check_id", check.ID.String()),
		slog.String("person_id", check.PersonID.String()))
	return nil
}

// GetByID implements store.WellbeingStore.GetByID.
func (s *WellbeingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.WellbeingCheck, error) {
	query := fmt.Sprintf(`SELECT %s FROM wellbeing_checks WHERE id = $1`, wellbeingColumns)
	return s.scanCheck(s.db.QueryRowContext(ctx, query, id))
}

// GetLatestForPerson implements store.WellbeingStore.GetLatestForPerson.
func (s *WellbeingStore) GetLatestForPerson(ctx context.Context, personID uuid.UUID) (*domain.WellbeingCheck, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM wellbeing_checks
		WHERE person_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, wellbeingColumns)
	return s.scanCheck(s.db.QueryRowContext(ctx, query, personID))
}

// ListForPersonSince implements store.WellbeingStore.ListForPersonSince.
func (s *WellbeingStore) ListForPersonSince(ctx context.Context, personID uuid.UUID, since time.Time) ([]*domain.WellbeingCheck, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM wellbeing_checks
		WHERE person_id = $1 AND created_at >= $2
		ORDER BY created_at
	`, wellbeingColumns)

	rows, err := s.db.QueryContext(ctx, query, personID, since)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	checks := make([]*domain.WellbeingCheck, 0)
	for rows.Next() {
		check, err := scanCheckRow(rows)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return checks, nil
}

// UpdateAIFields implements store.WellbeingStore.UpdateAIFields.
func (s *WellbeingStore) UpdateAIFields(ctx context.Context, id uuid.UUID, sentimentScore, burnoutRisk int, recommendations json.RawMessage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE wellbeing_checks
		SET ai_sentiment_score = $2, ai_burnout_risk = $3, ai_recommendations = $4
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id, sentimentScore, burnoutRisk, nullRawMessage(recommendations))
	if err != nil {
		log.Error("failed to update wellbeing check AI fields",
			slog.String("error", err.Error()),
			slog.String("check_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "wellbeing check"); err != nil {
		return fmt.Errorf("%w", store.ErrWellbeingCheckNotFound)
	}

	return nil
}

// WithTx implements store.WellbeingStore.WithTx.
func (s *WellbeingStore) WithTx(tx *sql.Tx) store.WellbeingStore {
	return &WellbeingStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *WellbeingStore) scanCheck(row *sql.Row) (*domain.WellbeingCheck, error) {
	check, err := scanCheckRow(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, store.ErrWellbeingCheckNotFound
		}
		return nil, err
	}
	return check, nil
}

func scanCheckRow(row rowScanner) (*domain.WellbeingCheck, error) {
	var (
		check           domain.WellbeingCheck
		note            sql.NullString
		recommendations []byte
	)

	err := row.Scan(
		&check.ID,
		&check.PersonID,
		&check.Mood,
		&check.Energy,
		&note,
		&check.AISentimentScore,
		&check.AIBurnoutRisk,
		&recommendations,
		&check.CreatedAt,
	)
	if err != nil {
		return nil, MapError(err)
	}

	check.Note = note.String
	if len(recommendations) > 0 {
		check.AIRecommendations = json.RawMessage(recommendations)
	}
	return &check, nil
}

// nullRawMessage converts an empty raw JSON value to a NULL database value.
func nullRawMessage(m json.RawMessage) any {
	if len(m) == 0 {
		return nil
	}
	return []byte(m)
}
