package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Role     model.UserRole
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	VerifyEmail(ctx context.Context, token string) error
	IssueToken(u *model.User) (string, error)
}

type authService struct {
	users      repository.UserRepository
	plans      repository.VendorPlanRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	basicPlan  string
}

func NewAuthService(users repository.UserRepository, plans repository.VendorPlanRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int, basicPlan string) AuthService {
	return &authService{
		users:      users,
		plans:      plans,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		basicPlan:  basicPlan,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.FullName == "" {
		return nil, errors.New("full name is required")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, errors.New("invalid email")
	}
	if len(in.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if in.Role != model.RoleBuyer && in.Role != model.RoleSeller {
		return nil, errors.New("role must be buyer or seller")
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		FullName:          in.FullName,
		Email:             in.Email,
		Phone:             strings.TrimSpace(in.Phone),
		PasswordHash:      string(hash),
		Role:              in.Role,
		VerificationToken: uuid.NewString(),
	}

	var vendor *model.Vendor
	if in.Role == model.RoleSeller {
		plan, err := s.plans.FindByName(ctx, s.basicPlan)
		if err != nil {
			return nil, err
		}
		vendor = &model.Vendor{
			PlanID:             plan.ID,
			VerificationStatus: model.VerificationPending,
		}
	}

	if err := s.users.Register(ctx, u, vendor); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.IssueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	affected, err := s.users.MarkVerified(ctx, token)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidToken
	}
	return nil
}

func (s *authService) IssueToken(u *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
