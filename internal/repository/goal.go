package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/repository/dao"
)

var (
	ErrGoalNotFound = dao.ErrGoalNotFound
)

type GoalDAO interface {
	Insert(ctx context.Context, goal dao.Goal) (dao.Goal, error)
	FindByID(ctx context.Context, id uint) (dao.Goal, error)
	FindByStudentID(ctx context.Context, studentID uint, kind string) ([]dao.Goal, error)
	Update(ctx context.Context, goal dao.Goal) (dao.Goal, error)
	Delete(ctx context.Context, id uint) error
}

type GoalRepository struct {
	dao GoalDAO
}

func NewGoalRepository(dao GoalDAO) *GoalRepository {
	return &GoalRepository{
		dao: dao,
	}
}

func (r *GoalRepository) Create(ctx context.Context, goal domain.Goal) (domain.Goal, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(goal))
	if err != nil {
		return domain.Goal{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *GoalRepository) FindByID(ctx context.Context, id uint) (domain.Goal, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrGoalNotFound) {
			return domain.Goal{}, ErrGoalNotFound
		}

		return domain.Goal{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *GoalRepository) ListByStudent(ctx context.Context, studentID uint, kind domain.GoalKind) ([]domain.Goal, error) {
	found, err := r.dao.FindByStudentID(ctx, studentID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudentID -> %w", err)
	}

	goals := make([]domain.Goal, len(found))
	for i, g := range found {
		goals[i] = r.daoToDomain(g)
	}

	return goals, nil
}

func (r *GoalRepository) Update(ctx context.Context, goal domain.Goal) (domain.Goal, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(goal))
	if err != nil {
		return domain.Goal{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *GoalRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		if errors.Is(err, dao.ErrGoalNotFound) {
			return ErrGoalNotFound
		}

		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *GoalRepository) domainToDao(g domain.Goal) dao.Goal {
	return dao.Goal{
		ID:           g.ID,
		StudentID:    g.StudentID,
		Kind:         string(g.Kind),
		Title:        g.Title,
		TargetPoints: g.TargetPoints,
		Deadline:     g.Deadline,
		Milestones:   strings.Join(g.Milestones, "\n"),
		Completed:    g.Completed,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

func (r *GoalRepository) daoToDomain(g dao.Goal) domain.Goal {
	var milestones []string
	if g.Milestones != "" {
		milestones = strings.Split(g.Milestones, "\n")
	}

	return domain.Goal{
		ID:           g.ID,
		StudentID:    g.StudentID,
		Kind:         domain.GoalKind(g.Kind),
		Title:        g.Title,
		TargetPoints: g.TargetPoints,
		Deadline:     g.Deadline,
		Milestones:   milestones,
		Completed:    g.Completed,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}
