package service

import (
	"context"
	"errors"

	"github.com/sandeepk/magshop/internal/authz"
	"github.com/sandeepk/magshop/internal/hash"
	"github.com/sandeepk/magshop/internal/models"
)

// ErrUnderage rejects registrations and profile updates below the age
// floor. Duplicate usernames surface as repo.ErrUserExists.
var ErrUnderage = errors.New("age should be greater than 18")

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) error
	SaveUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CountUsersWithRole(ctx context.Context, role string) (int64, error)
	DeleteUser(ctx context.Context, id uint) error
}

type UserService struct {
	Users UserRepo
}

func NewUserService(users UserRepo) *UserService {
	return &UserService{Users: users}
}

// Register hashes the password and inserts the user. The repo's
// create-if-absent is the real duplicate guard; there is no separate
// existence pre-check that a concurrent registration could race past.
func (s *UserService) Register(ctx context.Context, u *models.User, password string) error {
	if u.Age <= 18 {
		return ErrUnderage
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = pwHash
	if u.Roles == "" {
		u.Roles = string(authz.RoleUser)
	}
	return s.Users.CreateUser(ctx, u)
}

func (s *UserService) Update(ctx context.Context, u *models.User) error {
	if u.Age <= 18 {
		return ErrUnderage
	}
	return s.Users.SaveUser(ctx, u)
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.Users.GetUserByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.Users.GetUserByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Users.ListUsers(ctx)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.Users.CountUsers(ctx)
}

func (s *UserService) CountWithRole(ctx context.Context, role string) (int64, error) {
	return s.Users.CountUsersWithRole(ctx, role)
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.Users.DeleteUser(ctx, id)
}
