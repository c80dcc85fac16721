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
	ErrEventNotFound = dao.ErrEventNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindByToken(ctx context.Context, token string) (dao.Event, error)
	FindByStatus(ctx context.Context, status string) ([]dao.Event, error)
	FindByClubID(ctx context.Context, clubID uint, status string) ([]dao.Event, error)
	UpdateStatus(ctx context.Context, id uint, from, to, token string) (dao.Event, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	FindCreatedSince(ctx context.Context, cutoff time.Time) ([]dao.Event, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindByToken(ctx context.Context, token string) (domain.Event, error) {
	found, err := r.dao.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, dao.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("r.dao.FindByToken -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) List(ctx context.Context, status domain.EventStatus) ([]domain.Event, error) {
	found, err := r.dao.FindByStatus(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStatus -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) ListByClub(ctx context.Context, clubID uint, status domain.EventStatus) ([]domain.Event, error) {
	found, err := r.dao.FindByClubID(ctx, clubID, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByClubID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

// UpdateStatus performs the compare-and-set status flip. A stale read
// surfaces as an invalid transition, matching what a fresh caller would see.
func (r *EventRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.EventStatus, token string) (domain.Event, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(from), string(to), token)
	if err != nil {
		switch {
		case errors.Is(err, dao.ErrEventNotFound):
			return domain.Event{}, ErrEventNotFound
		case errors.Is(err, dao.ErrStaleEventStatus):
			return domain.Event{}, domain.ErrInvalidTransition
		}

		return domain.Event{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) CountByStatus(ctx context.Context, status domain.EventStatus) (int, error) {
	count, err := r.dao.CountByStatus(ctx, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return int(count), nil
}

func (r *EventRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	counts, err := r.dao.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByCategory -> %w", err)
	}

	out := make(map[string]int, len(counts))
	for category, count := range counts {
		out[category] = int(count)
	}

	return out, nil
}

func (r *EventRepository) ListCreatedSince(ctx context.Context, cutoff time.Time) ([]domain.Event, error) {
	found, err := r.dao.FindCreatedSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCreatedSince -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                e.ID,
		ClubID:            e.ClubID,
		Title:             e.Title,
		Description:       e.Description,
		Category:          e.Category,
		Date:              e.Date,
		ProposedPoints:    e.ProposedPoints,
		ExpectedAttendees: e.ExpectedAttendees,
		Status:            string(e.Status),
		PointStatus:       string(e.PointStatus),
		AttachmentURL:     e.AttachmentURL,
		AttendanceToken:   e.AttendanceToken,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:                e.ID,
		ClubID:            e.ClubID,
		Title:             e.Title,
		Description:       e.Description,
		Category:          e.Category,
		Date:              e.Date,
		ProposedPoints:    e.ProposedPoints,
		ExpectedAttendees: e.ExpectedAttendees,
		Status:            domain.EventStatus(e.Status),
		PointStatus:       domain.PointStatus(e.PointStatus),
		AttachmentURL:     e.AttachmentURL,
		AttendanceToken:   e.AttendanceToken,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func (r *EventRepository) daosToDomain(events []dao.Event) []domain.Event {
	out := make([]domain.Event, len(events))
	for i, e := range events {
		out[i] = r.daoToDomain(e)
	}

	return out
}
