package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/repository"
)

var (
	ErrEmailExists        = repository.ErrEmailExists
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidIdentity    = domain.ErrInvalidIdentity
	ErrRestrictedIdentity = domain.ErrRestrictedIdentity
)

type AuthProfileRepository interface {
	CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	CreateClub(ctx context.Context, club domain.Club) (domain.Club, error)
	CreateAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type AuthService struct {
	repo       AuthProfileRepository
	adminEmail string
}

func NewAuthService(repo AuthProfileRepository, adminEmail string) *AuthService {
	return &AuthService{
		repo:       repo,
		adminEmail: adminEmail,
	}
}

// Signup derives the role from the email suffix and creates the matching
// profile. The administrator account is provisioned at startup and cannot be
// registered through this path.
func (s *AuthService) Signup(ctx context.Context, email, password, name, matric, clubName string) (domain.User, error) {
	role, err := domain.ResolveRole(email, s.adminEmail)
	if err != nil {
		return domain.User{}, ErrInvalidIdentity
	}
	if role == domain.RoleAdmin {
		return domain.User{}, ErrRestrictedIdentity
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Email:    email,
		Password: string(hash),
		Name:     name,
		Role:     role,
	}

	switch role {
	case domain.RoleClub:
		created, err := s.repo.CreateClub(ctx, domain.Club{User: user, ClubName: clubName})
		if err != nil {
			if errors.Is(err, repository.ErrEmailExists) {
				return domain.User{}, ErrEmailExists
			}

			return domain.User{}, fmt.Errorf("s.repo.CreateClub -> %w", err)
		}

		return created.User, nil
	default:
		created, err := s.repo.CreateStudent(ctx, domain.Student{User: user, Matric: matric})
		if err != nil {
			if errors.Is(err, repository.ErrEmailExists) {
				return domain.User{}, ErrEmailExists
			}

			return domain.User{}, fmt.Errorf("s.repo.CreateStudent -> %w", err)
		}

		return created.User, nil
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return domain.User{}, ErrProfileNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// EnsureAdmin provisions the administrator profile on first startup. An
// existing profile is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, password string) error {
	if _, err := s.repo.FindByEmail(ctx, s.adminEmail); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.repo.CreateAdmin(ctx, domain.Admin{User: domain.User{
		Email:    s.adminEmail,
		Password: string(hash),
		Name:     "Platform Administrator",
		Role:     domain.RoleAdmin,
	}})
	if err != nil && !errors.Is(err, repository.ErrEmailExists) {
		return fmt.Errorf("s.repo.CreateAdmin -> %w", err)
	}

	return nil
}
