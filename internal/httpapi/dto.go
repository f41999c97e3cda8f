package httpapi

import (
	"time"

	"github.com/shifat0/eshop-server/internal/order"
	"github.com/shifat0/eshop-server/internal/product"
	"github.com/shifat0/eshop-server/internal/user"

	"github.com/shopspring/decimal"
)

type orderItemRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	OrderItems       []orderItemRequest `json:"orderItems"`
	ShippingAddress1 string             `json:"shippingAddress1"`
	ShippingAddress2 string             `json:"shippingAddress2"`
	City             string             `json:"city"`
	Zip              string             `json:"zip"`
	Country          string             `json:"country"`
	Phone            string             `json:"phone"`
	Status           string             `json:"status"`
	User             string             `json:"user"`
	DateOrdered      *time.Time         `json:"dateOrdered,omitempty"`
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

type orderItemResponse struct {
	ID       string           `json:"id"`
	Product  *product.Product `json:"product,omitempty"`
	Quantity int              `json:"quantity"`
	Price    decimal.Decimal  `json:"price"`
	Subtotal decimal.Decimal  `json:"subtotal"`
}

type orderUserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type orderResponse struct {
	ID               string              `json:"id"`
	OrderItems       []orderItemResponse `json:"orderItems,omitempty"`
	ShippingAddress1 string              `json:"shippingAddress1"`
	ShippingAddress2 string              `json:"shippingAddress2,omitempty"`
	City             string              `json:"city"`
	Zip              string              `json:"zip"`
	Country          string              `json:"country"`
	Phone            string              `json:"phone"`
	Status           string              `json:"status"`
	TotalPrice       decimal.Decimal     `json:"totalPrice"`
	User             orderUserResponse   `json:"user"`
	DateOrdered      time.Time           `json:"dateOrdered"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type totalSalesResponse struct {
	TotalSales decimal.Decimal `json:"totalsales"`
}

type orderCountResponse struct {
	OrderCount int64 `json:"orderCount"`
}

func mapOrderToResponse(o *order.Order) orderResponse {
	resp := orderResponse{
		ID:               o.ID,
		ShippingAddress1: o.ShippingAddress1,
		ShippingAddress2: o.ShippingAddress2,
		City:             o.City,
		Zip:              o.Zip,
		Country:          o.Country,
		Phone:            o.Phone,
		Status:           o.Status,
		TotalPrice:       o.TotalPrice,
		User:             orderUserResponse{ID: o.UserID, Name: o.UserName},
		DateOrdered:      o.DateOrdered,
	}
	for _, item := range o.Items {
		resp.OrderItems = append(resp.OrderItems, orderItemResponse{
			ID:       item.ID,
			Product:  item.Product,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal,
		})
	}
	return resp
}

func mapOrdersToResponse(orders []*order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, mapOrderToResponse(o))
	}
	return out
}

type createCategoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type createProductRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	Brand        string          `json:"brand"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	CountInStock int             `json:"countInStock"`
	IsFeatured   bool            `json:"isFeatured"`
}

func (req *createProductRequest) toProduct() *product.Product {
	return &product.Product{
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		Brand:        req.Brand,
		Price:        req.Price,
		CategoryID:   req.Category,
		CountInStock: req.CountInStock,
		IsFeatured:   req.IsFeatured,
	}
}

type productCountResponse struct {
	ProductCount int64 `json:"productCount"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	IsAdmin  bool   `json:"isAdmin"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  string `json:"user"`
	Token string `json:"token"`
}

type userResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

type userCountResponse struct {
	UserCount int64 `json:"userCount"`
}

func mapUserToResponse(u *user.User) userResponse {
	return userResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		IsAdmin: u.IsAdmin,
	}
}
