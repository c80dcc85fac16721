package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type Goal struct {
	ID uint `gorm:"primaryKey"`

	StudentID uint   `gorm:"not null;index"`
	Kind      string `gorm:"not null"` // "short-term" or "long-term"

	Title        string `gorm:"not null"`
	TargetPoints int    `gorm:"not null"`
	Deadline     *time.Time
	Milestones   string // newline-separated
	Completed    bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type GoalDAO struct {
	db *gorm.DB
}

func NewGoalDAO(db *gorm.DB) *GoalDAO {
	return &GoalDAO{
		db: db,
	}
}

func (d *GoalDAO) Insert(ctx context.Context, goal Goal) (Goal, error) {
	result := d.db.WithContext(ctx).Create(&goal)
	if result.Error != nil {
		return Goal{}, result.Error
	}

	return goal, nil
}

func (d *GoalDAO) FindByID(ctx context.Context, id uint) (Goal, error) {
	var goal Goal

	result := d.db.WithContext(ctx).First(&goal, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Goal{}, ErrGoalNotFound
		}

		return Goal{}, result.Error
	}

	return goal, nil
}

// FindByStudentID lists a student's goals, optionally filtered by kind.
func (d *GoalDAO) FindByStudentID(ctx context.Context, studentID uint, kind string) ([]Goal, error) {
	var goals []Goal

	query := d.db.WithContext(ctx).Where("student_id = ?", studentID).Order("created_at DESC")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	result := query.Find(&goals)
	if result.Error != nil {
		return nil, result.Error
	}

	return goals, nil
}

func (d *GoalDAO) Update(ctx context.Context, goal Goal) (Goal, error) {
	result := d.db.WithContext(ctx).Save(&goal)
	if result.Error != nil {
		return Goal{}, result.Error
	}

	return goal, nil
}

func (d *GoalDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Goal{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}

	return nil
}
