package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAlreadyRecorded = errors.New("attendance already recorded")
)

type Attendance struct {
	ID uint `gorm:"primaryKey"`

	EventID   uint `gorm:"not null;uniqueIndex:idx_attendance_event_student"`
	StudentID uint `gorm:"not null;uniqueIndex:idx_attendance_event_student"`

	StudentName string `gorm:"not null"`
	Matric      string `gorm:"not null"`

	Credited string `gorm:"not null"` // "pending" or "assigned"

	RecordedAt time.Time `gorm:"not null"`
}

type AttendanceDAO struct {
	db *gorm.DB
}

func NewAttendanceDAO(db *gorm.DB) *AttendanceDAO {
	return &AttendanceDAO{
		db: db,
	}
}

// Insert appends an attendance record at most once per (event, student).
// The unique index linearises concurrent scans: exactly one insert wins,
// the rest see ErrAlreadyRecorded.
func (d *AttendanceDAO) Insert(ctx context.Context, record Attendance) (Attendance, error) {
	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).
		Create(&record)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return Attendance{}, ErrAlreadyRecorded
		}

		return Attendance{}, result.Error
	}

	if result.RowsAffected == 0 {
		return Attendance{}, ErrAlreadyRecorded
	}

	return record, nil
}

func (d *AttendanceDAO) FindByEventID(ctx context.Context, eventID uint) ([]Attendance, error) {
	var records []Attendance

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("recorded_at ASC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}
