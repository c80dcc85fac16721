package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/repository"
)

var (
	ErrReminderNotFound = repository.ErrReminderNotFound
	ErrReminderInPast   = errors.New("reminder date must not be in the past")
)

type ReminderRepository interface {
	Create(ctx context.Context, reminder domain.Reminder) (domain.Reminder, error)
	FindByID(ctx context.Context, id uint) (domain.Reminder, error)
	ListByStudent(ctx context.Context, studentID uint) ([]domain.Reminder, error)
	ListUpcoming(ctx context.Context, studentID uint, cutoff time.Time) ([]domain.Reminder, error)
	Update(ctx context.Context, reminder domain.Reminder) (domain.Reminder, error)
	Delete(ctx context.Context, id uint) error
}

type ReminderService struct {
	repo ReminderRepository
	now  func() time.Time
}

func NewReminderService(repo ReminderRepository) *ReminderService {
	return &ReminderService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *ReminderService) CreateReminder(ctx context.Context, caller domain.User, reminder domain.Reminder) (domain.Reminder, error) {
	if caller.Role != domain.RoleStudent {
		return domain.Reminder{}, ErrNotAuthorized
	}

	if reminder.Date.Before(s.today()) {
		return domain.Reminder{}, ErrReminderInPast
	}

	reminder.StudentID = caller.ID

	created, err := s.repo.Create(ctx, reminder)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ReminderService) ListReminders(ctx context.Context, caller domain.User) ([]domain.Reminder, error) {
	if caller.Role != domain.RoleStudent {
		return nil, ErrNotAuthorized
	}

	reminders, err := s.repo.ListByStudent(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByStudent -> %w", err)
	}

	return reminders, nil
}

// UpcomingReminders returns reminders dated today or later, soonest first.
func (s *ReminderService) UpcomingReminders(ctx context.Context, caller domain.User) ([]domain.Reminder, error) {
	if caller.Role != domain.RoleStudent {
		return nil, ErrNotAuthorized
	}

	reminders, err := s.repo.ListUpcoming(ctx, caller.ID, s.today())
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListUpcoming -> %w", err)
	}

	return reminders, nil
}

func (s *ReminderService) UpdateReminder(ctx context.Context, caller domain.User, reminder domain.Reminder) (domain.Reminder, error) {
	existing, err := s.ownedReminder(ctx, caller, reminder.ID)
	if err != nil {
		return domain.Reminder{}, err
	}

	if reminder.Date.Before(s.today()) {
		return domain.Reminder{}, ErrReminderInPast
	}

	reminder.StudentID = existing.StudentID
	reminder.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, reminder)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ReminderService) DeleteReminder(ctx context.Context, caller domain.User, reminderID uint) error {
	if _, err := s.ownedReminder(ctx, caller, reminderID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, reminderID); err != nil {
		if errors.Is(err, repository.ErrReminderNotFound) {
			return ErrReminderNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *ReminderService) ownedReminder(ctx context.Context, caller domain.User, reminderID uint) (domain.Reminder, error) {
	if caller.Role != domain.RoleStudent {
		return domain.Reminder{}, ErrNotAuthorized
	}

	reminder, err := s.repo.FindByID(ctx, reminderID)
	if err != nil {
		if errors.Is(err, repository.ErrReminderNotFound) {
			return domain.Reminder{}, ErrReminderNotFound
		}

		return domain.Reminder{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if reminder.StudentID != caller.ID {
		return domain.Reminder{}, ErrNotAuthorized
	}

	return reminder, nil
}

// today is local midnight; "upcoming" and the past-date check both hinge
// on the date, not the time of day.
func (s *ReminderService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
