package httpapi

import (
	"net/http"

	"github.com/shifat0/eshop-server/internal/logger"
	appmw "github.com/shifat0/eshop-server/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields serialize as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Handlers struct {
	Orders     *OrderHandler
	Products   *ProductHandler
	Categories *CategoryHandler
	Users      *UserHandler
}

// NewRouter wires all routes under the given API base path. Reads are open,
// order placement requires authentication, and mutations on the catalog,
// order lifecycle and user directory require an admin token.
func NewRouter(apiBase string, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(appmw.AuthMiddleware)
	r.Use(appmw.RateLimitMiddleware)

	r.Route(apiBase, func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Orders.List)
			r.Get("/get/totalSales", h.Orders.TotalSales)
			r.Get("/get/orderCount", h.Orders.Count)
			r.Get("/get/userOrders/{userId}", h.Orders.UserOrders)
			r.Get("/{id}", h.Orders.Get)
			r.With(appmw.RequireAuth).Post("/", h.Orders.Create)
			r.With(appmw.RequireAdmin).Put("/{id}", h.Orders.UpdateStatus)
			r.With(appmw.RequireAdmin).Delete("/{id}", h.Orders.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.List)
			r.Get("/get/count", h.Products.Count)
			r.Get("/get/featured/{count}", h.Products.Featured)
			r.Get("/{id}", h.Products.Get)
			r.With(appmw.RequireAdmin).Post("/", h.Products.Create)
			r.With(appmw.RequireAdmin).Put("/{id}", h.Products.Update)
			r.With(appmw.RequireAdmin).Delete("/{id}", h.Products.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Categories.List)
			r.Get("/{id}", h.Categories.Get)
			r.With(appmw.RequireAdmin).Post("/", h.Categories.Create)
			r.With(appmw.RequireAdmin).Put("/{id}", h.Categories.Update)
			r.With(appmw.RequireAdmin).Delete("/{id}", h.Categories.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.Users.Register)
			r.Post("/login", h.Users.Login)
			r.With(appmw.RequireAdmin).Get("/", h.Users.List)
			r.With(appmw.RequireAdmin).Get("/get/count", h.Users.Count)
			r.With(appmw.RequireAdmin).Get("/{id}", h.Users.Get)
			r.With(appmw.RequireAdmin).Delete("/{id}", h.Users.Delete)
		})
	})

	return r
}
