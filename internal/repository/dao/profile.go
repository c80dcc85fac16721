package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmailExists     = errors.New("a profile with this email already exists")
	ErrProfileNotFound = errors.New("profile not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Role string `gorm:"not null"` // "student", "club", or "admin"
	Name string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Student struct {
	UserID uint   `gorm:"primaryKey"`
	Matric string `gorm:"not null"`
}

type Club struct {
	UserID   uint   `gorm:"primaryKey"`
	ClubName string `gorm:"not null"`
}

type Admin struct {
	UserID uint `gorm:"primaryKey"`
}

type ProfileDAO struct {
	db *gorm.DB
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{
		db: db,
	}
}

func (d *ProfileDAO) insertUser(tx *gorm.DB, user *User) error {
	result := tx.Create(user)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(pgErr.Message, `unique constraint "uni_users_email"`) {
			return ErrEmailExists
		}

		return result.Error
	}

	return nil
}

func (d *ProfileDAO) InsertStudent(ctx context.Context, user User, matric string) (User, Student, error) {
	var student Student

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := d.insertUser(tx, &user); err != nil {
			return err
		}

		student = Student{UserID: user.ID, Matric: matric}

		return tx.Create(&student).Error
	})
	if err != nil {
		return User{}, Student{}, err
	}

	return user, student, nil
}

func (d *ProfileDAO) InsertClub(ctx context.Context, user User, clubName string) (User, Club, error) {
	var club Club

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := d.insertUser(tx, &user); err != nil {
			return err
		}

		club = Club{UserID: user.ID, ClubName: clubName}

		return tx.Create(&club).Error
	})
	if err != nil {
		return User{}, Club{}, err
	}

	return user, club, nil
}

func (d *ProfileDAO) InsertAdmin(ctx context.Context, user User) (User, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := d.insertUser(tx, &user); err != nil {
			return err
		}

		return tx.Create(&Admin{UserID: user.ID}).Error
	})
	if err != nil {
		return User{}, err
	}

	return user, nil
}

func (d *ProfileDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrProfileNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *ProfileDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrProfileNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *ProfileDAO) FindStudentByUserID(ctx context.Context, userID uint) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).First(&student, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrProfileNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *ProfileDAO) FindClubByUserID(ctx context.Context, userID uint) (Club, error) {
	var club Club

	result := d.db.WithContext(ctx).First(&club, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Club{}, ErrProfileNotFound
		}

		return Club{}, result.Error
	}

	return club, nil
}

func (d *ProfileDAO) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&User{}).Where("role = ?", role).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
