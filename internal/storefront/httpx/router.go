package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/catalog", handler.ListCatalog)

	r.Get("/cart", handler.GetCart)
	r.Post("/cart/items", handler.AddItem)
	r.Post("/cart/items/{id}/increase", handler.IncreaseItem)
	r.Post("/cart/items/{id}/decrease", handler.DecreaseItem)
	r.Delete("/cart/items/{id}", handler.RemoveItem)
	r.Delete("/cart", handler.RemoveAll)

	r.Post("/checkout", handler.Checkout)

	r.Post("/tenants/{tenantID}/orders", handler.ReceiveOrderHook)

	return r
}
