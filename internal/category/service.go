package category

import (
	"context"

	"github.com/shifat0/eshop-server/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for the category catalog.
type Service interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	AddCategory(ctx context.Context, name, icon, color string) (*Category, error)
	UpdateCategory(ctx context.Context, c *Category) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategories(ctx context.Context) ([]*Category, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get categories", zap.Error(err))
		return nil, err
	}
	if categories == nil {
		categories = []*Category{}
	}
	return categories, nil
}

func (s *service) GetCategory(ctx context.Context, id string) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) AddCategory(ctx context.Context, name, icon, color string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.String("name", name),
	)

	c := &Category{
		ID:    uuid.New().String(),
		Name:  name,
		Icon:  icon,
		Color: color,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("category added", zap.String("category_id", c.ID))
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, c *Category) (*Category, error) {
	if err := s.repo.Update(ctx, c); err != nil {
		logger.FromCtx(ctx).Error("failed to update category",
			zap.String("category_id", c.ID), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
