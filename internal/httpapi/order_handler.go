package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shifat0/eshop-server/internal/order"

	"github.com/go-chi/chi/v5"
)

// OrderHandler exposes the order placement, lifecycle and query operations.
type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrdersToResponse(orders))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(o))
}

func (h *OrderHandler) UserOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListUserOrders(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrdersToResponse(orders))
}

func (h *OrderHandler) TotalSales(w http.ResponseWriter, r *http.Request) {
	total, err := h.orders.TotalSales(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totalSalesResponse{TotalSales: total})
}

func (h *OrderHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.orders.CountOrders(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orderCountResponse{OrderCount: count})
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	input := order.PlaceOrderInput{
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		City:             req.City,
		Zip:              req.Zip,
		Country:          req.Country,
		Phone:            req.Phone,
		Status:           req.Status,
		UserID:           req.User,
		DateOrdered:      req.DateOrdered,
	}
	for _, item := range req.OrderItems {
		input.Items = append(input.Items, order.LineItemRequest{
			ProductID: item.Product,
			Quantity:  item.Quantity,
		})
	}

	o, err := h.orders.PlaceOrder(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapOrderToResponse(o))
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(o))
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.orders.DeleteOrder(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, deleteResponse{
			Success: true,
			Message: "the order is deleted",
		})
	case errors.Is(err, order.ErrPartialCascade):
		// Never report a partial cascade as success.
		writeJSON(w, http.StatusInternalServerError, deleteResponse{
			Success: false,
			Message: fmt.Sprintf("order deleted but %d line item refs were already missing", len(result.MissingRefs)),
		})
	case errors.Is(err, order.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, deleteResponse{
			Success: false,
			Message: "order not found",
		})
	default:
		writeDomainError(w, r, err)
	}
}
