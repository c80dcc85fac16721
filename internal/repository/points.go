package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/repository/dao"
)

var (
	ErrEventNotCompleted = dao.ErrEventNotCompleted
	ErrPointsAssigned    = dao.ErrPointsAssigned
	ErrTransient         = dao.ErrTransient
)

type PointsDAO interface {
	AssignPoints(ctx context.Context, eventID uint) (int, int, error)
	SumByStudentID(ctx context.Context, studentID uint) (int, error)
	SumAll(ctx context.Context) (int, error)
	FindByStudentID(ctx context.Context, studentID uint) ([]dao.PointCredit, error)
	FindCreatedSince(ctx context.Context, cutoff time.Time) ([]dao.PointCredit, error)
}

type PointsRepository struct {
	dao PointsDAO
}

func NewPointsRepository(dao PointsDAO) *PointsRepository {
	return &PointsRepository{
		dao: dao,
	}
}

// Assign runs the atomic credit batch for one event and reports how many
// students were credited and at what amount.
func (r *PointsRepository) Assign(ctx context.Context, eventID uint) (domain.AssignmentResult, error) {
	credited, perPerson, err := r.dao.AssignPoints(ctx, eventID)
	if err != nil {
		switch {
		case errors.Is(err, dao.ErrEventNotFound):
			return domain.AssignmentResult{}, ErrEventNotFound
		case errors.Is(err, dao.ErrEventNotCompleted):
			return domain.AssignmentResult{}, ErrEventNotCompleted
		case errors.Is(err, dao.ErrPointsAssigned):
			return domain.AssignmentResult{}, ErrPointsAssigned
		case errors.Is(err, dao.ErrTransient):
			return domain.AssignmentResult{}, ErrTransient
		}

		return domain.AssignmentResult{}, fmt.Errorf("r.dao.AssignPoints -> %w", err)
	}

	return domain.AssignmentResult{
		EventID:          eventID,
		PointsPerPerson:  perPerson,
		StudentsCredited: credited,
	}, nil
}

func (r *PointsRepository) TotalForStudent(ctx context.Context, studentID uint) (int, error) {
	total, err := r.dao.SumByStudentID(ctx, studentID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumByStudentID -> %w", err)
	}

	return total, nil
}

func (r *PointsRepository) TotalAwarded(ctx context.Context) (int, error) {
	total, err := r.dao.SumAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumAll -> %w", err)
	}

	return total, nil
}

func (r *PointsRepository) ListForStudent(ctx context.Context, studentID uint) ([]domain.PointCredit, error) {
	found, err := r.dao.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudentID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *PointsRepository) ListCreatedSince(ctx context.Context, cutoff time.Time) ([]domain.PointCredit, error) {
	found, err := r.dao.FindCreatedSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCreatedSince -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *PointsRepository) daosToDomain(credits []dao.PointCredit) []domain.PointCredit {
	out := make([]domain.PointCredit, len(credits))
	for i, c := range credits {
		out[i] = domain.PointCredit{
			ID:        c.ID,
			StudentID: c.StudentID,
			EventID:   c.EventID,
			Amount:    c.Amount,
			CreatedAt: c.CreatedAt,
		}
	}

	return out
}
