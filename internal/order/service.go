package order

import (
	"context"
	"errors"
	"time"

	"github.com/shifat0/eshop-server/internal/logger"
	"github.com/shifat0/eshop-server/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UserDirectory is the narrow identity lookup the order service depends on.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*Order, error)
	DeleteOrder(ctx context.Context, id string) (*DeletionResult, error)
	CountOrders(ctx context.Context) (int64, error)
	TotalSales(ctx context.Context) (decimal.Decimal, error)
}

type service struct {
	repo    Repository
	pricing *PricingEngine
	users   UserDirectory
}

func NewService(repo Repository, pricing *PricingEngine, users UserDirectory) Service {
	return &service{repo: repo, pricing: pricing, users: users}
}

// PlaceOrder materializes line items from the submitted list, computes the
// total from authoritative catalog prices and persists the aggregate. The
// write is a single transaction; a failure anywhere leaves no records.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.String("user_id", input.UserID),
		zap.Int("item_count", len(input.Items)),
	)

	log.Info("order placement started")

	if len(input.Items) == 0 {
		log.Warn("empty line-item list")
		return nil, ErrEmptyOrder
	}
	if input.ShippingAddress1 == "" {
		log.Warn("missing shipping address")
		return nil, ErrMissingAddress
	}

	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			log.Warn("unknown user")
			return nil, ErrUnknownUser
		}
		log.Error("failed to resolve user", zap.Error(err))
		return nil, err
	}

	items, total, err := s.pricing.ComputeTotal(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = DefaultStatus
	}
	dateOrdered := time.Now()
	if input.DateOrdered != nil {
		dateOrdered = *input.DateOrdered
	}

	o := &Order{
		ID:               uuid.New().String(),
		Items:            items,
		ShippingAddress1: input.ShippingAddress1,
		ShippingAddress2: input.ShippingAddress2,
		City:             input.City,
		Zip:              input.Zip,
		Country:          input.Country,
		Phone:            input.Phone,
		Status:           status,
		TotalPrice:       total,
		UserID:           input.UserID,
		DateOrdered:      dateOrdered,
	}
	for _, item := range o.Items {
		item.OrderID = o.ID
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("total_price", total.String()),
	)
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context) ([]*Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *service) ListUserOrders(ctx context.Context, userID string) ([]*Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

// UpdateStatus writes the new label and returns the refreshed order. The
// status value is deliberately unvalidated; any string is accepted.
func (s *service) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// DeleteOrder cascades over the order's line items. A commit that left refs
// unaccounted for is surfaced as ErrPartialCascade together with the result,
// never as a silent success.
func (s *service) DeleteOrder(ctx context.Context, id string) (*DeletionResult, error) {
	result, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(result.MissingRefs) > 0 {
		logger.FromCtx(ctx).Warn("cascade delete found dangling refs",
			zap.String("order_id", id),
			zap.Strings("missing_refs", result.MissingRefs),
		)
		return result, ErrPartialCascade
	}
	return result, nil
}

func (s *service) CountOrders(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *service) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.TotalSales(ctx)
}
