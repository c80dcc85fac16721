package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/repository"
)

var (
	ErrGoalNotFound = repository.ErrGoalNotFound
)

type GoalRepository interface {
	Create(ctx context.Context, goal domain.Goal) (domain.Goal, error)
	FindByID(ctx context.Context, id uint) (domain.Goal, error)
	ListByStudent(ctx context.Context, studentID uint, kind domain.GoalKind) ([]domain.Goal, error)
	Update(ctx context.Context, goal domain.Goal) (domain.Goal, error)
	Delete(ctx context.Context, id uint) error
}

type GoalPointsRepository interface {
	TotalForStudent(ctx context.Context, studentID uint) (int, error)
}

// GoalWithProgress pairs a goal with its derived progress for read views.
type GoalWithProgress struct {
	domain.Goal
	Progress float64 `json:"progress"`
}

type GoalService struct {
	repo   GoalRepository
	points GoalPointsRepository
}

func NewGoalService(repo GoalRepository, points GoalPointsRepository) *GoalService {
	return &GoalService{
		repo:   repo,
		points: points,
	}
}

func (s *GoalService) CreateGoal(ctx context.Context, caller domain.User, goal domain.Goal) (domain.Goal, error) {
	if caller.Role != domain.RoleStudent {
		return domain.Goal{}, ErrNotAuthorized
	}

	goal.StudentID = caller.ID
	goal.Completed = false
	if goal.Kind == domain.GoalLongTerm {
		// Long-term goals have no deadline; progress is derived instead.
		goal.Deadline = nil
	}

	created, err := s.repo.Create(ctx, goal)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ListGoals returns the student's goals, long-term ones annotated with
// progress derived from their point credits.
func (s *GoalService) ListGoals(ctx context.Context, caller domain.User, kind domain.GoalKind) ([]GoalWithProgress, error) {
	if caller.Role != domain.RoleStudent {
		return nil, ErrNotAuthorized
	}

	goals, err := s.repo.ListByStudent(ctx, caller.ID, kind)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByStudent -> %w", err)
	}

	total := 0
	for _, goal := range goals {
		if goal.Kind == domain.GoalLongTerm {
			total, err = s.points.TotalForStudent(ctx, caller.ID)
			if err != nil {
				return nil, fmt.Errorf("s.points.TotalForStudent -> %w", err)
			}
			break
		}
	}

	out := make([]GoalWithProgress, len(goals))
	for i, goal := range goals {
		out[i] = GoalWithProgress{Goal: goal, Progress: goal.Progress(total)}
	}

	return out, nil
}

func (s *GoalService) UpdateGoal(ctx context.Context, caller domain.User, goal domain.Goal) (domain.Goal, error) {
	existing, err := s.ownedGoal(ctx, caller, goal.ID)
	if err != nil {
		return domain.Goal{}, err
	}

	goal.StudentID = existing.StudentID
	goal.Kind = existing.Kind
	goal.CreatedAt = existing.CreatedAt
	if goal.Kind == domain.GoalLongTerm {
		goal.Deadline = nil
	}

	updated, err := s.repo.Update(ctx, goal)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, caller domain.User, goalID uint) error {
	if _, err := s.ownedGoal(ctx, caller, goalID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, goalID); err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return ErrGoalNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *GoalService) ownedGoal(ctx context.Context, caller domain.User, goalID uint) (domain.Goal, error) {
	if caller.Role != domain.RoleStudent {
		return domain.Goal{}, ErrNotAuthorized
	}

	goal, err := s.repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return domain.Goal{}, ErrGoalNotFound
		}

		return domain.Goal{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if goal.StudentID != caller.ID {
		return domain.Goal{}, ErrNotAuthorized
	}

	return goal, nil
}
