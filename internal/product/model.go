package product

import (
	"time"

	"github.com/shifat0/eshop-server/internal/category"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Image        string            `json:"image,omitempty"`
	Brand        string            `json:"brand,omitempty"`
	Price        decimal.Decimal   `json:"price"`
	CategoryID   string            `json:"categoryId"`
	Category     *category.Category `json:"category,omitempty"`
	CountInStock int               `json:"countInStock"`
	Rating       float64           `json:"rating"`
	NumReviews   int               `json:"numReviews"`
	IsFeatured   bool              `json:"isFeatured"`
	DateCreated  time.Time         `json:"dateCreated"`
}
