package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ideiatech/smartleader-api/internal/domain"
	"github.com/ideiatech/smartleader-api/internal/oracle"
	"github.com/ideiatech/smartleader-api/internal/platform/logger"
	"github.com/ideiatech/smartleader-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	personStore    store.PersonStore
	workItemStore  store.WorkItemStore
	wellbeingStore store.WellbeingStore
	generator      oracle.Generator
	txRunner       store.TxRunner
	maxMoveItems   int
	logger         *slog.Logger
}

// NewService creates a new assignment Service implementation.
// maxMoveItems caps how many pending items per overloaded member a single
// rebalance pass will consider moving.
func NewService(
	personStore store.PersonStore,
	workItemStore store.WorkItemStore,
	wellbeingStore store.WellbeingStore,
	generator oracle.Generator,
	txRunner store.TxRunner,
	maxMoveItems int,
	logger *slog.Logger,
) Service {
	if personStore == nil {
		panic("personStore cannot be nil")
	}
	if workItemStore == nil {
		panic("workItemStore cannot be nil")
	}
	if wellbeingStore == nil {
		panic("wellbeingStore cannot be nil")
	}
	if generator == nil {
		panic("generator cannot be nil")
	}
	if txRunner == nil {
		panic("txRunner cannot be nil")
	}
	if maxMoveItems < 1 {
		panic("maxMoveItems must be at least 1")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		personStore:    personStore,
		workItemStore:  workItemStore,
		wellbeingStore: wellbeingStore,
		generator:      generator,
		txRunner:       txRunner,
		maxMoveItems:   maxMoveItems,
		logger:         logger.With(slog.String("component", "assignment_service")),
	}
}

// RecommendAssignee implements Service.RecommendAssignee.
func (s *serviceImpl) RecommendAssignee(
	ctx context.Context,
	workItemID uuid.UUID,
	teamScope *uuid.UUID,
) (*Recommendation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := s.workItemStore.GetByID(ctx, workItemID)
	if err != nil {
		if errors.Is(err, store.ErrWorkItemNotFound) {
			return nil, err
		}
		log.Error("failed to load work item for recommendation",
			slog.String("error", err.Error()),
			slog.String("work_item_id", workItemID.String()))
		return nil, NewRecommendError("failed to load work item", err)
	}

	candidates, team, err := s.buildCandidates(ctx, teamScope)
	if err != nil {
		return nil, NewRecommendError("failed to build candidate pool", err)
	}
	if len(candidates) == 0 {
		log.Debug("no eligible candidates for work item",
			slog.String("work_item_id", workItemID.String()))
		return nil, ErrNoEligibleCandidates
	}

	rec := s.recommend(ctx, item, candidates, team)

	log.Info("assignee recommendation produced",
		slog.String("work_item_id", workItemID.String()),
		slog.String("person_id", rec.PersonID.String()),
		slog.Float64("match_score", rec.MatchScore),
		slog.Bool("from_fallback", rec.FromFallback))
	return rec, nil
}

// AutoDistribute implements Service.AutoDistribute.
func (s *serviceImpl) AutoDistribute(
	ctx context.Context,
	workItemID uuid.UUID,
	autoAssign bool,
) (*Recommendation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rec, err := s.RecommendAssignee(ctx, workItemID, nil)
	if err != nil {
		return nil, err
	}

	if !autoAssign {
		return rec, nil
	}

	// The oracle call above ran outside any transaction; only the write
	// is transactional.
	if err := s.applyAssignment(ctx, workItemID, rec); err != nil {
		log.Error("failed to apply assignment",
			slog.String("error", err.Error()),
			slog.String("work_item_id", workItemID.String()),
			slog.String("person_id", rec.PersonID.String()))
		return nil, NewRecommendError("failed to apply assignment", err)
	}

	rec.Applied = true
	log.Info("work item auto-assigned",
		slog.String("work_item_id", workItemID.String()),
		slog.String("person_id", rec.PersonID.String()))
	return rec, nil
}

// RebalanceTeam implements Service.RebalanceTeam.
func (s *serviceImpl) RebalanceTeam(
	ctx context.Context,
	managerID uuid.UUID,
	apply bool,
) (*RebalanceReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.personStore.GetByID(ctx, managerID); err != nil {
		if errors.Is(err, store.ErrPersonNotFound) {
			return nil, err
		}
		return nil, NewRebalanceError("failed to load manager", err)
	}

	team, err := s.personStore.ListTeam(ctx, managerID)
	if err != nil {
		return nil, NewRebalanceError("failed to load team", err)
	}

	var overloaded, underloaded []*domain.Person
	for _, member := range team {
		switch {
		case member.IsOverloaded():
			overloaded = append(overloaded, member)
		case member.LoadPercentage() < 70:
			underloaded = append(underloaded, member)
		}
	}

	report := &RebalanceReport{
		ManagerID:        managerID,
		TeamSize:         len(team),
		OverloadedCount:  len(overloaded),
		UnderloadedCount: len(underloaded),
		Moves:            []ProposedMove{},
	}

	if len(overloaded) == 0 {
		report.Summary = "No overloaded team members; nothing to rebalance."
		return report, nil
	}

	// Recommendations run over the whole team, not just the underloaded
	// subset: the oracle may still pick a moderately loaded member when
	// they are clearly better suited.
	candidates, teamCtx, err := s.buildCandidates(ctx, &managerID)
	if err != nil {
		return nil, NewRebalanceError("failed to build candidate pool", err)
	}
	if len(candidates) == 0 {
		report.Summary = "Team is overloaded but has no eligible candidates to move work to."
		return report, nil
	}

	for _, member := range overloaded {
		items, err := s.workItemStore.ListPendingForAssignee(ctx, member.ID)
		if err != nil {
			return nil, NewRebalanceError("failed to load pending items", err)
		}

		if len(items) > s.maxMoveItems {
			items = items[:s.maxMoveItems]
		}

		for _, item := range items {
			rec := s.recommend(ctx, item, candidates, teamCtx)
			if rec.PersonID == member.ID {
				continue
			}

			report.Moves = append(report.Moves, ProposedMove{
				WorkItemID:    item.ID,
				WorkItemTitle: item.Title,
				FromID:        member.ID,
				FromName:      member.FullName,
				ToID:          rec.PersonID,
				ToName:        rec.PersonName,
				MatchScore:    rec.MatchScore,
				Reasoning:     rec.Reasoning,
			})
		}
	}

	if !apply || len(report.Moves) == 0 {
		report.Summary = fmt.Sprintf("%d overloaded, %d underloaded, %d moves proposed (dry run).",
			report.OverloadedCount, report.UnderloadedCount, len(report.Moves))
		return report, nil
	}

	if err := s.applyMoves(ctx, report.Moves); err != nil {
		log.Error("failed to apply rebalance moves",
			slog.String("error", err.Error()),
			slog.String("manager_id", managerID.String()),
			slog.Int("move_count", len(report.Moves)))
		return nil, NewRebalanceError("failed to apply moves", err)
	}

	report.Applied = true
	report.Summary = fmt.Sprintf("%d overloaded, %d underloaded, %d moves applied.",
		report.OverloadedCount, report.UnderloadedCount, len(report.Moves))

	log.Info("team rebalanced",
		slog.String("manager_id", managerID.String()),
		slog.Int("move_count", len(report.Moves)))
	return report, nil
}

// recommend runs the oracle path over a non-empty candidate set and falls
// back deterministically on any failure. It never returns nil and never
// persists anything.
func (s *serviceImpl) recommend(
	ctx context.Context,
	item *domain.WorkItem,
	candidates []Candidate,
	team *TeamContext,
) *Recommendation {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt := buildAssignmentPrompt(item, candidates, team)

	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Warn("oracle generation failed, using fallback",
			slog.String("error", err.Error()),
			slog.String("work_item_id", item.ID.String()))
		return fallbackRecommendation(candidates)
	}

	rec, err := parseAssignmentReply(reply, candidates)
	if err != nil {
		log.Warn("oracle reply rejected, using fallback",
			slog.String("error", err.Error()),
			slog.String("work_item_id", item.ID.String()))
		return fallbackRecommendation(candidates)
	}

	return rec
}

// buildCandidates runs the eligibility filter and builds candidate
// snapshots: active contributors, optionally scoped to one manager, with
// available hours > 0. It also derives the team context from the unscoped
// contributor pool. An empty candidate list is a valid outcome.
func (s *serviceImpl) buildCandidates(
	ctx context.Context,
	teamScope *uuid.UUID,
) ([]Candidate, *TeamContext, error) {
	persons, err := s.personStore.ListActiveContributors(ctx, teamScope)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list contributors: %w", err)
	}

	team := &TeamContext{Size: len(persons)}
	var totalLoad float64
	for _, p := range persons {
		totalLoad += p.LoadPercentage()
		if p.IsOverloaded() {
			team.OverloadedCount++
		}
	}
	if len(persons) > 0 {
		team.AverageLoad = totalLoad / float64(len(persons))
	}

	candidates := make([]Candidate, 0, len(persons))
	for _, p := range persons {
		if p.AvailableHours() <= 0 {
			continue
		}

		snapshot, err := s.snapshotCandidate(ctx, p)
		if err != nil {
			return nil, nil, err
		}
		candidates = append(candidates, snapshot)
	}

	return candidates, team, nil
}

// snapshotCandidate projects one person into a candidate snapshot, pulling
// skill names and the latest wellbeing check. A person with no checks
// defaults to neutral mood and medium energy.
func (s *serviceImpl) snapshotCandidate(ctx context.Context, p *domain.Person) (Candidate, error) {
	skills, err := s.personStore.ListSkillNames(ctx, p.ID)
	if err != nil {
		return Candidate{}, fmt.Errorf("failed to list skills for %s: %w", p.ID, err)
	}

	mood := domain.MoodNeutral
	energy := domain.EnergyMedium
	check, err := s.wellbeingStore.GetLatestForPerson(ctx, p.ID)
	switch {
	case err == nil:
		mood = check.Mood
		energy = check.Energy
	case errors.Is(err, store.ErrWellbeingCheckNotFound):
		// No check-ins yet; keep the neutral defaults.
	default:
		return Candidate{}, fmt.Errorf("failed to load latest check for %s: %w", p.ID, err)
	}

	return Candidate{
		ID:             p.ID,
		FullName:       p.FullName,
		Username:       p.Username,
		Position:       p.Position,
		Skills:         skills,
		LoadPercentage: p.LoadPercentage(),
		AvailableHours: p.AvailableHours(),
		Mood:           mood,
		Energy:         energy,
	}, nil
}

// applyAssignment commits a recommendation in one transaction: assignee
// set, status pending, provenance recorded, and the item's estimated hours
// added to the assignee's load.
func (s *serviceImpl) applyAssignment(ctx context.Context, workItemID uuid.UUID, rec *Recommendation) error {
	return s.txRunner.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		itemStore := s.workItemStore.WithTx(tx)
		personStore := s.personStore.WithTx(tx)

		item, err := itemStore.GetByID(ctx, workItemID)
		if err != nil {
			return fmt.Errorf("failed to load work item: %w", err)
		}

		assignee, err := personStore.GetByID(ctx, rec.PersonID)
		if err != nil {
			return fmt.Errorf("failed to load assignee: %w", err)
		}

		item.AssigneeID = &assignee.ID
		item.Status = domain.StatusPending
		score := rec.MatchScore
		item.MatchScore = &score
		item.RecommendationReason = rec.Reasoning
		if err := itemStore.Update(ctx, item); err != nil {
			return fmt.Errorf("failed to update work item: %w", err)
		}

		assignee.CurrentLoad += item.EffortHours()
		if err := personStore.Update(ctx, assignee); err != nil {
			return fmt.Errorf("failed to update assignee load: %w", err)
		}

		return nil
	})
}

// applyMoves executes every proposed move in a single transaction: the
// item is reassigned and its estimated hours move from the source's load to
// the destination's. Either the whole run commits or none of it does.
func (s *serviceImpl) applyMoves(ctx context.Context, moves []ProposedMove) error {
	return s.txRunner.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		itemStore := s.workItemStore.WithTx(tx)
		personStore := s.personStore.WithTx(tx)

		for _, move := range moves {
			item, err := itemStore.GetByID(ctx, move.WorkItemID)
			if err != nil {
				return fmt.Errorf("failed to load work item %s: %w", move.WorkItemID, err)
			}

			// Re-read both persons per move so repeated sources or
			// destinations accumulate correctly within the transaction.
			source, err := personStore.GetByID(ctx, move.FromID)
			if err != nil {
				return fmt.Errorf("failed to load source person %s: %w", move.FromID, err)
			}
			dest, err := personStore.GetByID(ctx, move.ToID)
			if err != nil {
				return fmt.Errorf("failed to load destination person %s: %w", move.ToID, err)
			}

			hours := item.EffortHours()

			item.AssigneeID = &dest.ID
			item.MatchScore = &move.MatchScore
			item.RecommendationReason = move.Reasoning
			if err := itemStore.Update(ctx, item); err != nil {
				return fmt.Errorf("failed to reassign work item %s: %w", item.ID, err)
			}

			source.CurrentLoad -= hours
			if err := personStore.Update(ctx, source); err != nil {
				return fmt.Errorf("failed to update source load: %w", err)
			}

			dest.CurrentLoad += hours
			if err := personStore.Update(ctx, dest); err != nil {
				return fmt.Errorf("failed to update destination load: %w", err)
			}
		}

		return nil
	})
}
