package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrReminderNotFound = errors.New("reminder not found")
)

type Reminder struct {
	ID uint `gorm:"primaryKey"`

	StudentID uint `gorm:"not null;index"`

	Name  string    `gorm:"not null"`
	Date  time.Time `gorm:"not null"`
	Time  string    `gorm:"not null"`
	Venue string
	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ReminderDAO struct {
	db *gorm.DB
}

func NewReminderDAO(db *gorm.DB) *ReminderDAO {
	return &ReminderDAO{
		db: db,
	}
}

func (d *ReminderDAO) Insert(ctx context.Context, reminder Reminder) (Reminder, error) {
	result := d.db.WithContext(ctx).Create(&reminder)
	if result.Error != nil {
		return Reminder{}, result.Error
	}

	return reminder, nil
}

func (d *ReminderDAO) FindByID(ctx context.Context, id uint) (Reminder, error) {
	var reminder Reminder

	result := d.db.WithContext(ctx).First(&reminder, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reminder{}, ErrReminderNotFound
		}

		return Reminder{}, result.Error
	}

	return reminder, nil
}

func (d *ReminderDAO) FindByStudentID(ctx context.Context, studentID uint) ([]Reminder, error) {
	var reminders []Reminder

	result := d.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date ASC, time ASC").
		Find(&reminders)
	if result.Error != nil {
		return nil, result.Error
	}

	return reminders, nil
}

// FindUpcoming returns reminders dated at or after the cutoff, soonest first.
func (d *ReminderDAO) FindUpcoming(ctx context.Context, studentID uint, cutoff time.Time) ([]Reminder, error) {
	var reminders []Reminder

	result := d.db.WithContext(ctx).
		Where("student_id = ? AND date >= ?", studentID, cutoff).
		Order("date ASC, time ASC").
		Find(&reminders)
	if result.Error != nil {
		return nil, result.Error
	}

	return reminders, nil
}

func (d *ReminderDAO) Update(ctx context.Context, reminder Reminder) (Reminder, error) {
	result := d.db.WithContext(ctx).Save(&reminder)
	if result.Error != nil {
		return Reminder{}, result.Error
	}

	return reminder, nil
}

func (d *ReminderDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Reminder{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrReminderNotFound
	}

	return nil
}
