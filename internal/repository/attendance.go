package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/repository/dao"
)

var (
	ErrAlreadyRecorded = dao.ErrAlreadyRecorded
)

type AttendanceDAO interface {
	Insert(ctx context.Context, record dao.Attendance) (dao.Attendance, error)
	FindByEventID(ctx context.Context, eventID uint) ([]dao.Attendance, error)
}

type AttendanceRepository struct {
	dao AttendanceDAO
}

func NewAttendanceRepository(dao AttendanceDAO) *AttendanceRepository {
	return &AttendanceRepository{
		dao: dao,
	}
}

func (r *AttendanceRepository) Append(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(record))
	if err != nil {
		if errors.Is(err, dao.ErrAlreadyRecorded) {
			return domain.AttendanceRecord{}, ErrAlreadyRecorded
		}

		return domain.AttendanceRecord{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AttendanceRepository) ListByEvent(ctx context.Context, eventID uint) ([]domain.AttendanceRecord, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	records := make([]domain.AttendanceRecord, len(found))
	for i, record := range found {
		records[i] = r.daoToDomain(record)
	}

	return records, nil
}

func (r *AttendanceRepository) domainToDao(record domain.AttendanceRecord) dao.Attendance {
	return dao.Attendance{
		ID:          record.ID,
		EventID:     record.EventID,
		StudentID:   record.StudentID,
		StudentName: record.StudentName,
		Matric:      record.Matric,
		Credited:    string(record.Credited),
		RecordedAt:  record.RecordedAt,
	}
}

func (r *AttendanceRepository) daoToDomain(record dao.Attendance) domain.AttendanceRecord {
	return domain.AttendanceRecord{
		ID:          record.ID,
		EventID:     record.EventID,
		StudentID:   record.StudentID,
		StudentName: record.StudentName,
		Matric:      record.Matric,
		Credited:    domain.PointStatus(record.Credited),
		RecordedAt:  record.RecordedAt,
	}
}
