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

// WorkItemStore implements the store.WorkItemStore interface using a
// PostgreSQL database as the storage backend.
type WorkItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewWorkItemStore creates a new PostgreSQL implementation of the
// store.WorkItemStore interface.
func NewWorkItemStore(db store.DBTX, logger *slog.Logger) *WorkItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &WorkItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "work_item_store")),
	}
}

// Ensure WorkItemStore implements store.WorkItemStore.
var _ store.WorkItemStore = (*WorkItemStore)(nil)

const workItemColumns = `id, title, description, status, priority, assignee_id, creator_id,
		estimated_hours, actual_hours, required_skills, due_date, started_at,
		completed_at, ai_match_score, ai_recommendation_reason, created_at, updated_at`

// priorityRankSQL orders the textual priority column by urgency.
const priorityRankSQL = `
		CASE priority
			WHEN 'urgent' THEN 4
			WHEN 'high' THEN 3
			WHEN 'medium' THEN 2
			ELSE 1
		END`

// Create implements store.WorkItemStore.Create.
func (s *WorkItemStore) Create(ctx context.Context, item *domain.WorkItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("work item validation failed during create",
			slog.String("error", err.Error()),
			slog.String("work_item_id", item.ID.String()))
		return err
	}

	query := `
		INSERT INTO work_items (id, title, description, status, priority, assignee_id,
			creator_id, estimated_hours, actual_hours, required_skills, due_date,
			started_at, completed_at, ai_match_score, ai_recommendation_reason,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		nullString(item.Description),
		item.Status,
		item.Priority,
		item.AssigneeID,
		item.CreatorID,
		item.EstimatedHours,
		item.ActualHours,
		encodeSkills(item.RequiredSkills),
		item.DueDate,
		item.StartedAt,
		item.CompletedAt,
		item.MatchScore,
		nullString(item.RecommendationReason),
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during work item creation",
				slog.String("error", err.Error()),
				slog.String("work_item_id", item.ID.String()))
			return fmt.Errorf("%w: referenced person not found", store.ErrInvalidEntity)
		}

		log.Error("failed to create work item",
			slog.String("error", err.Error()),
			slog.String("work_item_id", item.ID.String()))
		return MapError(err)
	}

	log.Info("work item created successfully",
		slog.String("work_item_id", item.ID.String()),
		slog.String("priority", string(item.Priority)))
	return nil
}

// GetByID implements store.WorkItemStore.GetByID.
func (s *WorkItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_items WHERE id = $1`, workItemColumns)

	item, err := scanWorkItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, store.ErrWorkItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// Update implements store.WorkItemStore.Update.
func (s *WorkItemStore) Update(ctx context.Context, item *domain.WorkItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("work item validation failed during update",
			slog.String("error", err.Error()),
			slog.String("work_item_id", item.ID.String()))
		return err
	}

	query := `
		UPDATE work_items
		SET title = $2, description = $3, status = $4, priority = $5,
			assignee_id = $6, estimated_hours = $7, actual_hours = $8,
			required_skills = $9, due_date = $10, started_at = $11,
			completed_at = $12, ai_match_score = $13,
			ai_recommendation_reason = $14, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		nullString(item.Description),
		item.Status,
		item.Priority,
		item.AssigneeID,
		item.EstimatedHours,
		item.ActualHours,
		encodeSkills(item.RequiredSkills),
		item.DueDate,
		item.StartedAt,
		item.CompletedAt,
		item.MatchScore,
		nullString(item.RecommendationReason),
	)
	if err != nil {
		log.Error("failed to update work item",
			slog.String("error", err.Error()),
			slog.String("work_item_id", item.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "work item"); err != nil {
		return fmt.Errorf("%w", store.ErrWorkItemNotFound)
	}

	return nil
}

// Delete implements store.WorkItemStore.Delete.
func (s *WorkItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM work_items WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete work item",
			slog.String("error", err.Error()),
			slog.String("work_item_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "work item"); err != nil {
		return fmt.Errorf("%w", store.ErrWorkItemNotFound)
	}

	log.Info("work item deleted successfully", slog.String("work_item_id", id.String()))
	return nil
}

// ListForAssignee implements store.WorkItemStore.ListForAssignee.
func (s *WorkItemStore) ListForAssignee(ctx context.Context, personID uuid.UUID) ([]*domain.WorkItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM work_items
		WHERE assignee_id = $1
		ORDER BY created_at DESC
	`, workItemColumns)

	return s.queryWorkItems(ctx, query, personID)
}

// ListPendingForAssignee implements store.WorkItemStore.ListPendingForAssignee.
func (s *WorkItemStore) ListPendingForAssignee(ctx context.Context, personID uuid.UUID) ([]*domain.WorkItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM work_items
		WHERE assignee_id = $1 AND status = $2
		ORDER BY %s DESC, created_at
	`, workItemColumns, priorityRankSQL)

	return s.queryWorkItems(ctx, query, personID, domain.StatusPending)
}

// ListForAssigneeSince implements store.WorkItemStore.ListForAssigneeSince.
func (s *WorkItemStore) ListForAssigneeSince(ctx context.Context, personID uuid.UUID, since time.Time) ([]*domain.WorkItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM work_items
		WHERE assignee_id = $1 AND updated_at >= $2
		ORDER BY updated_at DESC
	`, workItemColumns)

	return s.queryWorkItems(ctx, query, personID, since)
}

// WithTx implements store.WorkItemStore.WithTx.
func (s *WorkItemStore) WithTx(tx *sql.Tx) store.WorkItemStore {
	return &WorkItemStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *WorkItemStore) queryWorkItems(ctx context.Context, query string, args ...any) ([]*domain.WorkItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*domain.WorkItem, 0)
	for rows.Next() {
		item, err := scanWorkItemRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return items, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkItem(row *sql.Row) (*domain.WorkItem, error) {
	return scanWorkItemRow(row)
}

func scanWorkItemRow(row rowScanner) (*domain.WorkItem, error) {
	var (
		item        domain.WorkItem
		description sql.NullString
		skills      []byte
		reason      sql.NullString
	)

	err := row.Scan(
		&item.ID,
		&item.Title,
		&description,
		&item.Status,
		&item.Priority,
		&item.AssigneeID,
		&item.CreatorID,
		&item.EstimatedHours,
		&item.ActualHours,
		&skills,
		&item.DueDate,
		&item.StartedAt,
		&item.CompletedAt,
		&item.MatchScore,
		&reason,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, MapError(err)
	}

	item.Description = description.String
	item.RecommendationReason = reason.String
	item.RequiredSkills = decodeSkills(skills)
	return &item, nil
}

// encodeSkills serializes a skill list to the JSONB required_skills column.
// A nil slice is stored as an empty array rather than NULL.
func encodeSkills(skills []string) []byte {
	if skills == nil {
		skills = []string{}
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return []byte("[]")
	}
	return data
}

// decodeSkills deserializes the JSONB required_skills column.
func decodeSkills(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var skills []string
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil
	}
	return skills
}
