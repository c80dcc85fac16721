package repository

import (
	"context"
	"fmt"

	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/repository/dao"
)

var (
	ErrEmailExists     = dao.ErrEmailExists
	ErrProfileNotFound = dao.ErrProfileNotFound
)

type ProfileDAO interface {
	InsertStudent(ctx context.Context, user dao.User, matric string) (dao.User, dao.Student, error)
	InsertClub(ctx context.Context, user dao.User, clubName string) (dao.User, dao.Club, error)
	InsertAdmin(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindStudentByUserID(ctx context.Context, userID uint) (dao.Student, error)
	FindClubByUserID(ctx context.Context, userID uint) (dao.Club, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

type ProfileRepository struct {
	dao ProfileDAO
}

func NewProfileRepository(dao ProfileDAO) *ProfileRepository {
	return &ProfileRepository{
		dao: dao,
	}
}

func (r *ProfileRepository) CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	user, created, err := r.dao.InsertStudent(ctx, r.domainToDao(student.User), student.Matric)
	if err != nil {
		if err == dao.ErrEmailExists {
			return domain.Student{}, ErrEmailExists
		}

		return domain.Student{}, fmt.Errorf("r.dao.InsertStudent -> %w", err)
	}

	return domain.Student{User: r.daoToDomain(user), Matric: created.Matric}, nil
}

func (r *ProfileRepository) CreateClub(ctx context.Context, club domain.Club) (domain.Club, error) {
	user, created, err := r.dao.InsertClub(ctx, r.domainToDao(club.User), club.ClubName)
	if err != nil {
		if err == dao.ErrEmailExists {
			return domain.Club{}, ErrEmailExists
		}

		return domain.Club{}, fmt.Errorf("r.dao.InsertClub -> %w", err)
	}

	return domain.Club{User: r.daoToDomain(user), ClubName: created.ClubName}, nil
}

func (r *ProfileRepository) CreateAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	user, err := r.dao.InsertAdmin(ctx, r.domainToDao(admin.User))
	if err != nil {
		if err == dao.ErrEmailExists {
			return domain.Admin{}, ErrEmailExists
		}

		return domain.Admin{}, fmt.Errorf("r.dao.InsertAdmin -> %w", err)
	}

	return domain.Admin{User: r.daoToDomain(user)}, nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if err == dao.ErrProfileNotFound {
			return domain.User{}, ErrProfileNotFound
		}

		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		if err == dao.ErrProfileNotFound {
			return domain.User{}, ErrProfileNotFound
		}

		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ProfileRepository) FindStudentByUserID(ctx context.Context, userID uint) (domain.Student, error) {
	user, err := r.dao.FindByID(ctx, userID)
	if err != nil {
		if err == dao.ErrProfileNotFound {
			return domain.Student{}, ErrProfileNotFound
		}

		return domain.Student{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	student, err := r.dao.FindStudentByUserID(ctx, userID)
	if err != nil {
		if err == dao.ErrProfileNotFound {
			return domain.Student{}, ErrProfileNotFound
		}

		return domain.Student{}, fmt.Errorf("r.dao.FindStudentByUserID -> %w", err)
	}

	return domain.Student{User: r.daoToDomain(user), Matric: student.Matric}, nil
}

func (r *ProfileRepository) FindClubByUserID(ctx context.Context, userID uint) (domain.Club, error) {
	user, err := r.dao.FindByID(ctx, userID)
	if err != nil {
		if err == dao.ErrProfileNotFound {
			return domain.Club{}, ErrProfileNotFound
		}

		return domain.Club{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	club, err := r.dao.FindClubByUserID(ctx, userID)
	if err != nil {
		if err == dao.ErrProfileNotFound {
			return domain.Club{}, ErrProfileNotFound
		}

		return domain.Club{}, fmt.Errorf("r.dao.FindClubByUserID -> %w", err)
	}

	return domain.Club{User: r.daoToDomain(user), ClubName: club.ClubName}, nil
}

func (r *ProfileRepository) CountStudents(ctx context.Context) (int, error) {
	count, err := r.dao.CountByRole(ctx, string(domain.RoleStudent))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByRole -> %w", err)
	}

	return int(count), nil
}

func (r *ProfileRepository) domainToDao(u domain.User) dao.User {
	return dao.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *ProfileRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      domain.Role(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
