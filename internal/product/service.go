package product

import (
	"context"
	"errors"
	"time"

	"github.com/shifat0/eshop-server/internal/category"
	"github.com/shifat0/eshop-server/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for the product catalog.
type Service interface {
	GetProducts(ctx context.Context, categoryIDs []string) ([]*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetFeatured(ctx context.Context, limit int) ([]*Product, error)
	AddProduct(ctx context.Context, p *Product) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	CountProducts(ctx context.Context) (int64, error)
}

type service struct {
	repo         Repository
	categoryRepo category.Repository
}

func NewService(repo Repository, categoryRepo category.Repository) Service {
	return &service{repo: repo, categoryRepo: categoryRepo}
}

func (s *service) GetProducts(ctx context.Context, categoryIDs []string) ([]*Product, error) {
	products, err := s.repo.GetAll(ctx, categoryIDs)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get products", zap.Error(err))
		return nil, err
	}
	if products == nil {
		products = []*Product{}
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetFeatured(ctx context.Context, limit int) ([]*Product, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetFeatured(ctx, limit)
}

func (s *service) AddProduct(ctx context.Context, p *Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddProduct"),
		zap.String("name", p.Name),
	)

	// Category must exist before a product can point at it.
	if _, err := s.categoryRepo.GetByID(ctx, p.CategoryID); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}

	p.ID = uuid.New().String()
	p.DateCreated = time.Now()

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product added", zap.String("product_id", p.ID))
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, p *Product) (*Product, error) {
	if p.CategoryID != "" {
		if _, err := s.categoryRepo.GetByID(ctx, p.CategoryID); err != nil {
			if errors.Is(err, category.ErrCategoryNotFound) {
				return nil, ErrInvalidCategory
			}
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		logger.FromCtx(ctx).Error("failed to update product",
			zap.String("product_id", p.ID), zap.Error(err))
		return nil, err
	}
	return s.repo.GetByID(ctx, p.ID)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) CountProducts(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
