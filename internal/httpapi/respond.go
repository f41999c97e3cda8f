package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shifat0/eshop-server/internal/category"
	"github.com/shifat0/eshop-server/internal/logger"
	"github.com/shifat0/eshop-server/internal/order"
	"github.com/shifat0/eshop-server/internal/product"
	"github.com/shifat0/eshop-server/internal/user"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: msg})
}

// writeDomainError translates domain sentinels into stable client-facing
// codes. Store and connectivity failures are logged server-side and reported
// generically without leaking internals.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, user.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())

	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrMissingAddress),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, product.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())

	case errors.Is(err, order.ErrUnknownProduct):
		writeError(w, http.StatusBadRequest, "unknown_product", err.Error())

	case errors.Is(err, order.ErrUnknownUser):
		writeError(w, http.StatusBadRequest, "unknown_user", err.Error())

	case errors.Is(err, user.ErrEmailExists):
		writeError(w, http.StatusConflict, "email_exists", err.Error())

	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout", "the operation timed out")

	default:
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
