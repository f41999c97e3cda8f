package order

import (
	"time"

	"github.com/shifat0/eshop-server/internal/product"

	"github.com/shopspring/decimal"
)

// LineItem is owned by exactly one order. It is created only during order
// placement and removed only by the cascade delete; there is no update path.
type LineItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     decimal.Decimal // unit price snapshot taken at placement time
	Subtotal  decimal.Decimal
	Position  int // preserves client submission order
	Product   *product.Product
}

type Order struct {
	ID               string
	Items            []*LineItem
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
	Status           string
	TotalPrice       decimal.Decimal
	UserID           string
	UserName         string
	DateOrdered      time.Time
}

type LineItemRequest struct {
	ProductID string
	Quantity  int
}

type PlaceOrderInput struct {
	Items            []LineItemRequest
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
	Status           string
	UserID           string
	DateOrdered      *time.Time
}

// DeletionResult reports the outcome of a cascade delete. MissingRefs holds
// line-item refs the order claimed but that matched no stored record.
type DeletionResult struct {
	OrderID      string
	ItemsDeleted int
	MissingRefs  []string
}

const DefaultStatus = "Pending"
