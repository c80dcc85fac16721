package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/pkg/attendlink"
	"github.com/usmcsd/mycsd-api/internal/repository"
)

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrNotAuthorized     = domain.ErrNotAuthorized
	ErrInvalidTransition = domain.ErrInvalidTransition
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	List(ctx context.Context, status domain.EventStatus) ([]domain.Event, error)
	ListByClub(ctx context.Context, clubID uint, status domain.EventStatus) ([]domain.Event, error)
	UpdateStatus(ctx context.Context, id uint, from, to domain.EventStatus, token string) (domain.Event, error)
}

type EventService struct {
	repo    EventRepository
	baseURL string
}

func NewEventService(repo EventRepository, baseURL string) *EventService {
	return &EventService{
		repo:    repo,
		baseURL: baseURL,
	}
}

// SubmitProposal creates an event in the pending state, owned by the
// calling club.
func (s *EventService) SubmitProposal(ctx context.Context, caller domain.User, event domain.Event) (domain.Event, error) {
	if caller.Role != domain.RoleClub {
		return domain.Event{}, ErrNotAuthorized
	}

	event.ClubID = caller.ID
	event.Status = domain.EventPending
	event.PointStatus = domain.PointsPending
	event.AttendanceToken = ""

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Decide approves or rejects a pending proposal. Approval mints the
// attendance token the QR flow is built on.
func (s *EventService) Decide(ctx context.Context, caller domain.User, eventID uint, decision domain.EventStatus) (domain.Event, error) {
	if caller.Role != domain.RoleAdmin {
		return domain.Event{}, ErrNotAuthorized
	}
	if decision != domain.EventApproved && decision != domain.EventRejected {
		return domain.Event{}, ErrInvalidTransition
	}

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	from := event.Status
	if err := event.Transition(decision); err != nil {
		return domain.Event{}, ErrInvalidTransition
	}

	token := ""
	if decision == domain.EventApproved {
		token = attendlink.NewToken()
	}

	updated, err := s.repo.UpdateStatus(ctx, eventID, from, decision, token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return domain.Event{}, ErrInvalidTransition
		}

		return domain.Event{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return updated, nil
}

// MarkCompleted is the club-driven edge. Only the owning club may complete
// its own approved event.
func (s *EventService) MarkCompleted(ctx context.Context, caller domain.User, eventID uint) (domain.Event, error) {
	if caller.Role != domain.RoleClub {
		return domain.Event{}, ErrNotAuthorized
	}

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if event.ClubID != caller.ID {
		return domain.Event{}, ErrNotAuthorized
	}

	from := event.Status
	if err := event.Transition(domain.EventCompleted); err != nil {
		return domain.Event{}, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, eventID, from, domain.EventCompleted, "")
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return domain.Event{}, ErrInvalidTransition
		}

		return domain.Event{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return updated, nil
}

// ListAll is the admin view over every club's events.
func (s *EventService) ListAll(ctx context.Context, caller domain.User, status domain.EventStatus) ([]domain.Event, error) {
	if caller.Role != domain.RoleAdmin {
		return nil, ErrNotAuthorized
	}

	events, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return events, nil
}

// ListOwn scopes the listing to the calling club.
func (s *EventService) ListOwn(ctx context.Context, caller domain.User, status domain.EventStatus) ([]domain.Event, error) {
	if caller.Role != domain.RoleClub {
		return nil, ErrNotAuthorized
	}

	events, err := s.repo.ListByClub(ctx, caller.ID, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByClub -> %w", err)
	}

	return events, nil
}

// AttendanceQR renders the event's attendance link as a PNG QR code.
func (s *EventService) AttendanceQR(ctx context.Context, caller domain.User, eventID uint, size int) ([]byte, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if caller.Role != domain.RoleAdmin && !(caller.Role == domain.RoleClub && event.ClubID == caller.ID) {
		return nil, ErrNotAuthorized
	}

	if event.AttendanceToken == "" {
		return nil, ErrEventNotFound
	}

	png, err := attendlink.QRPNG(s.baseURL, event.AttendanceToken, size)
	if err != nil {
		return nil, fmt.Errorf("attendlink.QRPNG -> %w", err)
	}

	return png, nil
}

// ValidStatusFilter guards list endpoints against unknown filter values.
func ValidStatusFilter(status string) (domain.EventStatus, bool) {
	switch domain.EventStatus(status) {
	case "", domain.EventPending, domain.EventApproved, domain.EventRejected, domain.EventCompleted:
		return domain.EventStatus(status), true
	default:
		return "", false
	}
}
