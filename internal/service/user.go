package service

import (
	"context"
	"fmt"

	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/repository"
)

var (
	ErrProfileNotFound = repository.ErrProfileNotFound
)

type ProfileRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindStudentByUserID(ctx context.Context, userID uint) (domain.Student, error)
	FindClubByUserID(ctx context.Context, userID uint) (domain.Club, error)
}

type UserService struct {
	repo ProfileRepository
}

func NewUserService(repo ProfileRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetStudentByUserID(ctx context.Context, userID uint) (domain.Student, error) {
	student, err := s.repo.FindStudentByUserID(ctx, userID)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindStudentByUserID -> %w", err)
	}

	return student, nil
}

func (s *UserService) GetClubByUserID(ctx context.Context, userID uint) (domain.Club, error) {
	club, err := s.repo.FindClubByUserID(ctx, userID)
	if err != nil {
		return domain.Club{}, fmt.Errorf("s.repo.FindClubByUserID -> %w", err)
	}

	return club, nil
}
