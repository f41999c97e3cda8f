package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/shifat0/eshop-server/internal/logger"
	"github.com/shifat0/eshop-server/internal/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductCatalog is the read-only lookup the pricing engine depends on.
type ProductCatalog interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
}

// PricingEngine materializes line items from client-submitted requests and
// derives the order total from authoritative catalog prices. Client-supplied
// prices are never consulted.
type PricingEngine struct {
	catalog ProductCatalog
}

func NewPricingEngine(catalog ProductCatalog) *PricingEngine {
	return &PricingEngine{catalog: catalog}
}

// ComputeTotal resolves every request against the catalog and returns the
// materialized line items plus the exact decimal total. The items are not yet
// persisted; the order repository writes them together with the order row in
// a single transaction, so a failure here leaves no orphaned records.
func (e *PricingEngine) ComputeTotal(ctx context.Context, reqs []LineItemRequest) ([]*LineItem, decimal.Decimal, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "pricing"),
		zap.Int("item_count", len(reqs)),
	)

	items := make([]*LineItem, 0, len(reqs))
	total := decimal.Zero

	for i, req := range reqs {
		if req.Quantity < 1 {
			log.Warn("invalid quantity",
				zap.Int("index", i),
				zap.String("product_id", req.ProductID),
				zap.Int("quantity", req.Quantity),
			)
			return nil, decimal.Zero, fmt.Errorf("%w: item %d", ErrInvalidQuantity, i)
		}

		p, err := e.catalog.GetByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrProductNotFound) {
				log.Warn("unknown product", zap.String("product_id", req.ProductID))
				return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownProduct, req.ProductID)
			}
			log.Error("failed to resolve product",
				zap.String("product_id", req.ProductID),
				zap.Error(err),
			)
			return nil, decimal.Zero, err
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
		total = total.Add(subtotal)

		items = append(items, &LineItem{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Quantity:  req.Quantity,
			Price:     p.Price,
			Subtotal:  subtotal,
			Position:  i,
		})

		log.Debug("item priced",
			zap.String("product_id", p.ID),
			zap.String("unit_price", p.Price.String()),
			zap.Int("quantity", req.Quantity),
			zap.String("subtotal", subtotal.String()),
		)
	}

	return items, total, nil
}
