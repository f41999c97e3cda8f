package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shifat0/eshop-server/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, input order.PlaceOrderInput) (*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) ListUserOrders(ctx context.Context, userID string) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id, status string) (*order.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) DeleteOrder(ctx context.Context, id string) (*order.DeletionResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.DeletionResult), args.Error(1)
}

func (m *MockOrderService) CountOrders(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderService) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func newOrderRouter(svc order.Service) http.Handler {
	h := NewOrderHandler(svc)
	r := chi.NewRouter()
	r.Get("/orders", h.List)
	r.Get("/orders/get/totalSales", h.TotalSales)
	r.Get("/orders/get/orderCount", h.Count)
	r.Get("/orders/get/userOrders/{userId}", h.UserOrders)
	r.Get("/orders/{id}", h.Get)
	r.Post("/orders", h.Create)
	r.Put("/orders/{id}", h.UpdateStatus)
	r.Delete("/orders/{id}", h.Delete)
	return r
}

func testOrder() *order.Order {
	return &order.Order{
		ID: "order-1",
		Items: []*order.LineItem{
			{
				ID:        "item-1",
				OrderID:   "order-1",
				ProductID: "product-1",
				Quantity:  2,
				Price:     decimal.NewFromInt(20),
				Subtotal:  decimal.NewFromInt(40),
			},
		},
		ShippingAddress1: "1 Main St",
		City:             "Dhaka",
		Zip:              "1207",
		Country:          "BD",
		Phone:            "555-0100",
		Status:           "Pending",
		TotalPrice:       decimal.NewFromInt(40),
		UserID:           "user-1",
		UserName:         "Asha",
		DateOrdered:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestOrderHandler_List(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("ListOrders", mock.Anything).Return([]*order.Order{testOrder()}, nil)

	rr := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"order-1"`)
	assert.Contains(t, rr.Body.String(), `"name":"Asha"`)
	svc.AssertExpectations(t)
}

func TestOrderHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("GetOrder", mock.Anything, "order-1").Return(testOrder(), nil)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/order-1", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"totalPrice":40`)
		assert.Contains(t, rr.Body.String(), `"orderItems"`)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("GetOrder", mock.Anything, "nope").Return(nil, order.ErrOrderNotFound)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/nope", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), `"error":"not_found"`)
	})
}

func TestOrderHandler_Create(t *testing.T) {
	body := `{
		"orderItems": [{"product": "product-1", "quantity": 2}],
		"shippingAddress1": "1 Main St",
		"city": "Dhaka",
		"zip": "1207",
		"country": "BD",
		"phone": "555-0100",
		"user": "user-1"
	}`

	t.Run("Created", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(in order.PlaceOrderInput) bool {
			return in.UserID == "user-1" &&
				len(in.Items) == 1 &&
				in.Items[0].ProductID == "product-1" &&
				in.Items[0].Quantity == 2
		})).Return(testOrder(), nil)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr,
			httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"order-1"`)
		svc.AssertExpectations(t)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, order.ErrUnknownProduct)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr,
			httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), `"error":"unknown_product"`)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, order.ErrEmptyOrder)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr,
			httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"orderItems": [], "user": "user-1"}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), `"error":"validation_error"`)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		svc := new(MockOrderService)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr,
			httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{not json`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		updated := testOrder()
		updated.Status = "Shipped"

		svc := new(MockOrderService)
		svc.On("UpdateStatus", mock.Anything, "order-1", "Shipped").Return(updated, nil)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr,
			httptest.NewRequest(http.MethodPut, "/orders/order-1", strings.NewReader(`{"status": "Shipped"}`)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"Shipped"`)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("UpdateStatus", mock.Anything, "nope", "Shipped").Return(nil, order.ErrOrderNotFound)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr,
			httptest.NewRequest(http.MethodPut, "/orders/nope", strings.NewReader(`{"status": "Shipped"}`)))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestOrderHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("DeleteOrder", mock.Anything, "order-1").
			Return(&order.DeletionResult{OrderID: "order-1", ItemsDeleted: 2}, nil)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/orders/order-1", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"success":true`)
	})

	t.Run("PartialCascadeIsNotSuccess", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("DeleteOrder", mock.Anything, "order-1").
			Return(&order.DeletionResult{
				OrderID:      "order-1",
				ItemsDeleted: 1,
				MissingRefs:  []string{"item-2"},
			}, order.ErrPartialCascade)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/orders/order-1", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), `"success":false`)
		assert.Contains(t, rr.Body.String(), "1 line item refs were already missing")
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("DeleteOrder", mock.Anything, "nope").Return(nil, order.ErrOrderNotFound)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/orders/nope", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), `"success":false`)
	})
}

func TestOrderHandler_Aggregates(t *testing.T) {
	t.Run("TotalSales", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("TotalSales", mock.Anything).Return(decimal.RequireFromString("129.95"), nil)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/get/totalSales", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"totalsales":129.95`)
	})

	t.Run("TotalSalesEmptyStoreIsZero", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("TotalSales", mock.Anything).Return(decimal.Zero, nil)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/get/totalSales", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"totalsales":0`)
	})

	t.Run("OrderCount", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("CountOrders", mock.Anything).Return(int64(7), nil)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/get/orderCount", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"orderCount":7`)
	})

	t.Run("UserOrders", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ListUserOrders", mock.Anything, "user-1").Return([]*order.Order{testOrder()}, nil)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/get/userOrders/user-1", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"order-1"`)
	})

	t.Run("UserOrdersEmptyIsArray", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ListUserOrders", mock.Anything, "user-2").Return([]*order.Order{}, nil)

		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/get/userOrders/user-2", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]\n", rr.Body.String())
	})
}
