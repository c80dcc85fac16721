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
	ErrReminderNotFound = dao.ErrReminderNotFound
)

type ReminderDAO interface {
	Insert(ctx context.Context, reminder dao.Reminder) (dao.Reminder, error)
	FindByID(ctx context.Context, id uint) (dao.Reminder, error)
	FindByStudentID(ctx context.Context, studentID uint) ([]dao.Reminder, error)
	FindUpcoming(ctx context.Context, studentID uint, cutoff time.Time) ([]dao.Reminder, error)
	Update(ctx context.Context, reminder dao.Reminder) (dao.Reminder, error)
	Delete(ctx context.Context, id uint) error
}

type ReminderRepository struct {
	dao ReminderDAO
}

func NewReminderRepository(dao ReminderDAO) *ReminderRepository {
	return &ReminderRepository{
		dao: dao,
	}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder domain.Reminder) (domain.Reminder, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(reminder))
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, id uint) (domain.Reminder, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrReminderNotFound) {
			return domain.Reminder{}, ErrReminderNotFound
		}

		return domain.Reminder{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ReminderRepository) ListByStudent(ctx context.Context, studentID uint) ([]domain.Reminder, error) {
	found, err := r.dao.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudentID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ReminderRepository) ListUpcoming(ctx context.Context, studentID uint, cutoff time.Time) ([]domain.Reminder, error) {
	found, err := r.dao.FindUpcoming(ctx, studentID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUpcoming -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ReminderRepository) Update(ctx context.Context, reminder domain.Reminder) (domain.Reminder, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(reminder))
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		if errors.Is(err, dao.ErrReminderNotFound) {
			return ErrReminderNotFound
		}

		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ReminderRepository) domainToDao(rem domain.Reminder) dao.Reminder {
	return dao.Reminder{
		ID:        rem.ID,
		StudentID: rem.StudentID,
		Name:      rem.Name,
		Date:      rem.Date,
		Time:      rem.Time,
		Venue:     rem.Venue,
		Notes:     rem.Notes,
		CreatedAt: rem.CreatedAt,
		UpdatedAt: rem.UpdatedAt,
	}
}

func (r *ReminderRepository) daoToDomain(rem dao.Reminder) domain.Reminder {
	return domain.Reminder{
		ID:        rem.ID,
		StudentID: rem.StudentID,
		Name:      rem.Name,
		Date:      rem.Date,
		Time:      rem.Time,
		Venue:     rem.Venue,
		Notes:     rem.Notes,
		CreatedAt: rem.CreatedAt,
		UpdatedAt: rem.UpdatedAt,
	}
}

func (r *ReminderRepository) daosToDomain(reminders []dao.Reminder) []domain.Reminder {
	out := make([]domain.Reminder, len(reminders))
	for i, rem := range reminders {
		out[i] = r.daoToDomain(rem)
	}

	return out
}
