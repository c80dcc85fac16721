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
	ErrAlreadyRecorded  = repository.ErrAlreadyRecorded
	ErrAttendanceClosed = domain.ErrAttendanceClosed
)

type AttendanceEventRepository interface {
	FindByToken(ctx context.Context, token string) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type AttendanceRepository interface {
	Append(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error)
	ListByEvent(ctx context.Context, eventID uint) ([]domain.AttendanceRecord, error)
}

type AttendanceService struct {
	events      AttendanceEventRepository
	attendances AttendanceRepository
	profiles    ProfileRepository
}

func NewAttendanceService(events AttendanceEventRepository, attendances AttendanceRepository, profiles ProfileRepository) *AttendanceService {
	return &AttendanceService{
		events:      events,
		attendances: attendances,
		profiles:    profiles,
	}
}

// ResolveEvent maps an attendance token to the minimal event view shown on
// the check-in page. Unknown tokens are indistinguishable from expired ones.
func (s *AttendanceService) ResolveEvent(ctx context.Context, token string) (domain.EventView, error) {
	event, err := s.events.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.EventView{}, ErrEventNotFound
		}

		return domain.EventView{}, fmt.Errorf("s.events.FindByToken -> %w", err)
	}

	return domain.EventView{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Category:    event.Category,
		Date:        event.Date,
		Status:      event.Status,
	}, nil
}

// RecordAttendance appends exactly one record per (event, student). The
// student's name and matric are denormalised at capture time so attendee
// views never join back to profiles.
func (s *AttendanceService) RecordAttendance(ctx context.Context, caller domain.User, token string) (domain.AttendanceRecord, error) {
	if caller.Role != domain.RoleStudent {
		return domain.AttendanceRecord{}, ErrNotAuthorized
	}

	event, err := s.events.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.AttendanceRecord{}, ErrEventNotFound
		}

		return domain.AttendanceRecord{}, fmt.Errorf("s.events.FindByToken -> %w", err)
	}

	if !event.AcceptsAttendance() {
		return domain.AttendanceRecord{}, ErrAttendanceClosed
	}

	student, err := s.profiles.FindStudentByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return domain.AttendanceRecord{}, ErrProfileNotFound
		}

		return domain.AttendanceRecord{}, fmt.Errorf("s.profiles.FindStudentByUserID -> %w", err)
	}

	record, err := s.attendances.Append(ctx, domain.AttendanceRecord{
		EventID:     event.ID,
		StudentID:   caller.ID,
		StudentName: student.Name,
		Matric:      student.Matric,
		Credited:    domain.PointsPending,
		RecordedAt:  time.Now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyRecorded) {
			return domain.AttendanceRecord{}, ErrAlreadyRecorded
		}

		return domain.AttendanceRecord{}, fmt.Errorf("s.attendances.Append -> %w", err)
	}

	return record, nil
}

// Attendees returns an event's attendance records for the owning club or
// the admin participants dialog.
func (s *AttendanceService) Attendees(ctx context.Context, caller domain.User, eventID uint) ([]domain.AttendanceRecord, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	if caller.Role != domain.RoleAdmin && !(caller.Role == domain.RoleClub && event.ClubID == caller.ID) {
		return nil, ErrNotAuthorized
	}

	records, err := s.attendances.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.attendances.ListByEvent -> %w", err)
	}

	return records, nil
}
