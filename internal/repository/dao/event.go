package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEventNotFound = errors.New("event not found")
)

type Event struct {
	ID     uint `gorm:"primaryKey"`
	ClubID uint `gorm:"not null;index"`

	Title             string `gorm:"not null"`
	Description       string `gorm:"not null"`
	Category          string
	Date              time.Time `gorm:"not null"`
	ProposedPoints    int       `gorm:"not null"`
	ExpectedAttendees int       `gorm:"not null"`

	Status      string `gorm:"not null;index"`
	PointStatus string `gorm:"not null"`

	AttachmentURL   string
	AttendanceToken string `gorm:"index"`

	Attendees []Attendance `gorm:"foreignKey:EventID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByToken(ctx context.Context, token string) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, "attendance_token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindByStatus lists events, newest first. An empty status means all.
func (d *EventDAO) FindByStatus(ctx context.Context, status string) ([]Event, error) {
	var events []Event

	query := d.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByClubID(ctx context.Context, clubID uint, status string) ([]Event, error) {
	var events []Event

	query := d.db.WithContext(ctx).Where("club_id = ?", clubID).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// UpdateStatus flips the event status and, on approval, stores the
// generated attendance token. The read-check-write runs under a row lock
// so concurrent decisions cannot race past the state machine.
func (d *EventDAO) UpdateStatus(ctx context.Context, id uint, from, to, token string) (Event, error) {
	var event Event

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return result.Error
		}

		if event.Status != from {
			return ErrStaleEventStatus
		}

		updates := map[string]interface{}{"status": to}
		if token != "" {
			updates["attendance_token"] = token
		}

		if err := tx.Model(&event).Updates(updates).Error; err != nil {
			return err
		}

		event.Status = to
		if token != "" {
			event.AttendanceToken = token
		}

		return nil
	})
	if err != nil {
		return Event{}, err
	}

	return event, nil
}

// ErrStaleEventStatus means the row moved on between the caller's read and
// the locked re-read. The caller maps it to an invalid-transition error.
var ErrStaleEventStatus = errors.New("event status changed concurrently")

func (d *EventDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	query := d.db.WithContext(ctx).Model(&Event{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventDAO) CountByCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		Count    int64
	}

	var rows []row
	result := d.db.WithContext(ctx).Model(&Event{}).
		Select("category, count(*) as count").
		Group("category").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Category] += r.Count
	}

	return counts, nil
}

// FindCreatedSince returns events created at or after the cutoff, used for
// the monthly trend aggregation.
func (d *EventDAO) FindCreatedSince(ctx context.Context, cutoff time.Time) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Where("created_at >= ?", cutoff).Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}
