package service

import (
	"context"
	"errors"
	"strings"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"gorm.io/gorm"
)

// UserUpdate carries the updatable profile fields; nil means leave the
// field unchanged. Email and role are immutable after registration.
type UserUpdate struct {
	FullName *string
	Phone    *string
}

type UserService interface {
	Profile(ctx context.Context, user *model.User) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User, upd UserUpdate) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Profile(ctx context.Context, user *model.User) (*model.User, error) {
	u, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, user *model.User, upd UserUpdate) (*model.User, error) {
	u, err := s.Profile(ctx, user)
	if err != nil {
		return nil, err
	}

	if upd.FullName != nil {
		name := strings.TrimSpace(*upd.FullName)
		if name == "" || len(name) > 120 {
			return nil, errors.New("invalid full name")
		}
		u.FullName = name
	}
	if upd.Phone != nil {
		u.Phone = strings.TrimSpace(*upd.Phone)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
