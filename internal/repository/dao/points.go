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
	ErrEventNotCompleted = errors.New("event is not completed")
	ErrPointsAssigned    = errors.New("points already assigned")
	ErrTransient         = errors.New("transient store failure")
)

type PointCredit struct {
	ID uint `gorm:"primaryKey"`

	StudentID uint `gorm:"not null;index"`
	EventID   uint `gorm:"not null;index"`
	Amount    int  `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type PointsDAO struct {
	db *gorm.DB
}

func NewPointsDAO(db *gorm.DB) *PointsDAO {
	return &PointsDAO{
		db: db,
	}
}

// AssignPoints credits every pending attendee of a completed event inside a
// single transaction and flips the event's point-status. The event row is
// locked first so a concurrent assignment serialises behind this one and
// then fails the point-status check. Partial failure rolls everything back,
// leaving the event assignable again.
func (d *PointsDAO) AssignPoints(ctx context.Context, eventID uint) (int, int, error) {
	var (
		credited        int
		pointsPerPerson int
	)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return result.Error
		}

		if event.Status != "completed" {
			return ErrEventNotCompleted
		}
		if event.PointStatus == "assigned" {
			return ErrPointsAssigned
		}

		pointsPerPerson = event.ProposedPoints

		var pending []Attendance
		if err := tx.Where("event_id = ? AND credited = ?", eventID, "pending").
			Find(&pending).Error; err != nil {
			return err
		}

		if len(pending) > 0 {
			credits := make([]PointCredit, len(pending))
			recordIDs := make([]uint, len(pending))
			now := time.Now()
			for i, record := range pending {
				credits[i] = PointCredit{
					StudentID: record.StudentID,
					EventID:   eventID,
					Amount:    pointsPerPerson,
					CreatedAt: now,
				}
				recordIDs[i] = record.ID
			}

			if err := tx.CreateInBatches(credits, 100).Error; err != nil {
				return err
			}

			// Flip only the records read above. A record committed after the
			// read must stay pending rather than be flipped without a credit.
			if err := tx.Model(&Attendance{}).
				Where("id IN ?", recordIDs).
				Update("credited", "assigned").Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&event).Update("point_status", "assigned").Error; err != nil {
			return err
		}

		credited = len(pending)

		return nil
	})
	if err != nil {
		if isRetryable(err) {
			return 0, 0, ErrTransient
		}

		return 0, 0, err
	}

	return credited, pointsPerPerson, nil
}

// isRetryable reports whether the transaction lost a serialisation race and
// may simply be retried.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgerrcode.SerializationFailure ||
		pgErr.Code == pgerrcode.DeadlockDetected
}

func (d *PointsDAO) SumByStudentID(ctx context.Context, studentID uint) (int, error) {
	var total int64

	result := d.db.WithContext(ctx).Model(&PointCredit{}).
		Where("student_id = ?", studentID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(total), nil
}

func (d *PointsDAO) SumAll(ctx context.Context) (int, error) {
	var total int64

	result := d.db.WithContext(ctx).Model(&PointCredit{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(total), nil
}

func (d *PointsDAO) FindByStudentID(ctx context.Context, studentID uint) ([]PointCredit, error) {
	var credits []PointCredit

	result := d.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&credits)
	if result.Error != nil {
		return nil, result.Error
	}

	return credits, nil
}

func (d *PointsDAO) FindCreatedSince(ctx context.Context, cutoff time.Time) ([]PointCredit, error) {
	var credits []PointCredit

	result := d.db.WithContext(ctx).Where("created_at >= ?", cutoff).Find(&credits)
	if result.Error != nil {
		return nil, result.Error
	}

	return credits, nil
}
