package user

import (
	"context"
	"time"

	"github.com/shifat0/eshop-server/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	IsAdmin  bool
}

// Service defines the business logic for the user directory.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	CountUsers(ctx context.Context) (int64, error)
	DeleteUser(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("email", input.Email),
	)

	hash, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		IsAdmin:      input.IsAdmin,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	log.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("email", email),
	)

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			return "", nil, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", zap.Error(err))
		return "", nil, err
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Warn("password mismatch")
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.IsAdmin)
	if err != nil {
		log.Error("failed to sign token", zap.Error(err))
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
