package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/repository"
)

var (
	ErrAlreadyAssigned = domain.ErrAlreadyAssigned
	ErrTransient       = repository.ErrTransient
)

// assignRetries bounds how many times a lost serialisation race is retried
// before the transient failure is surfaced. Retrying is safe: assignment is
// idempotent by its point-status precondition.
const assignRetries = 3

type PointsRepository interface {
	Assign(ctx context.Context, eventID uint) (domain.AssignmentResult, error)
	TotalForStudent(ctx context.Context, studentID uint) (int, error)
	ListForStudent(ctx context.Context, studentID uint) ([]domain.PointCredit, error)
}

type PointsEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type PointsService struct {
	repo   PointsRepository
	events PointsEventRepository
}

func NewPointsService(repo PointsRepository, events PointsEventRepository) *PointsService {
	return &PointsService{
		repo:   repo,
		events: events,
	}
}

// AssignPoints credits every pending attendee of a completed event exactly
// once, atomically with the event's point-status flip. Preconditions are
// re-checked inside the store transaction; failures here change nothing.
func (s *PointsService) AssignPoints(ctx context.Context, caller domain.User, eventID uint) (domain.AssignmentResult, error) {
	if caller.Role != domain.RoleAdmin {
		return domain.AssignmentResult{}, &domain.AssignmentRefusedError{Reason: domain.RefusalNotAdmin}
	}

	var (
		result domain.AssignmentResult
		err    error
	)

	for attempt := 0; attempt < assignRetries; attempt++ {
		result, err = s.repo.Assign(ctx, eventID)
		if !errors.Is(err, repository.ErrTransient) {
			break
		}
	}

	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			return domain.AssignmentResult{}, ErrEventNotFound
		case errors.Is(err, repository.ErrEventNotCompleted):
			return domain.AssignmentResult{}, &domain.AssignmentRefusedError{Reason: domain.RefusalNotCompleted}
		case errors.Is(err, repository.ErrPointsAssigned):
			return domain.AssignmentResult{}, ErrAlreadyAssigned
		case errors.Is(err, repository.ErrTransient):
			return domain.AssignmentResult{}, ErrTransient
		}

		return domain.AssignmentResult{}, fmt.Errorf("s.repo.Assign -> %w", err)
	}

	return result, nil
}

// MyPoints computes the student's total by summing credits. Totals are
// never cached; the credits are the single source of truth.
func (s *PointsService) MyPoints(ctx context.Context, caller domain.User) (int, error) {
	if caller.Role != domain.RoleStudent {
		return 0, ErrNotAuthorized
	}

	total, err := s.repo.TotalForStudent(ctx, caller.ID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.TotalForStudent -> %w", err)
	}

	return total, nil
}

// MyCredits lists the student's credits with event titles attached for
// display.
func (s *PointsService) MyCredits(ctx context.Context, caller domain.User) ([]domain.PointCredit, error) {
	if caller.Role != domain.RoleStudent {
		return nil, ErrNotAuthorized
	}

	credits, err := s.repo.ListForStudent(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListForStudent -> %w", err)
	}

	titles := make(map[uint]string)
	for i, credit := range credits {
		title, ok := titles[credit.EventID]
		if !ok {
			event, err := s.events.FindByID(ctx, credit.EventID)
			if err != nil {
				if errors.Is(err, repository.ErrEventNotFound) {
					continue
				}

				return nil, fmt.Errorf("s.events.FindByID -> %w", err)
			}
			title = event.Title
			titles[credit.EventID] = title
		}

		credits[i].EventTitle = title
	}

	return credits, nil
}

// TotalForStudent is the unauthenticated-total variant used by the goal
// tracker to derive progress.
func (s *PointsService) TotalForStudent(ctx context.Context, studentID uint) (int, error) {
	total, err := s.repo.TotalForStudent(ctx, studentID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.TotalForStudent -> %w", err)
	}

	return total, nil
}
