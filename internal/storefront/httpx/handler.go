// Package httpx is the HTTP surface the storefront UI talks to: cart
// mutations, checkout, the catalog, and the order-hook receiver.
package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gensol-dev/storefront/internal/cart"
	"github.com/gensol-dev/storefront/internal/catalog"
	"github.com/gensol-dev/storefront/internal/checkout"
	"github.com/gensol-dev/storefront/internal/orderlog"
	"github.com/gensol-dev/storefront/internal/pkg/i18n"
	"github.com/gensol-dev/storefront/internal/tenant"
)

type Handler struct {
	cart     *cart.Service
	checkout *checkout.Service
	catalog  *catalog.Catalog
	prices   *i18n.PriceFormatter
	orders   orderlog.Repository // nil-safe: hook endpoint disabled if nil
}

func NewHandler(cartSvc *cart.Service, checkoutSvc *checkout.Service, cat *catalog.Catalog, prices *i18n.PriceFormatter, orders orderlog.Repository) *Handler {
	return &Handler{
		cart:     cartSvc,
		checkout: checkoutSvc,
		catalog:  cat,
		prices:   prices,
		orders:   orders,
	}
}

// ListCatalog returns every product in listing order.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Products())
}

// GetCart returns the line items plus totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// AddItem puts a product in the cart. The product must exist in the live
// catalog; the variants are taken as submitted.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	product, ok := h.catalog.Get(req.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "product_not_found", "")
		return
	}

	variants := make([]catalog.Variant, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, catalog.Variant{Title: v.Title, Price: v.Price})
	}

	item := h.cart.Add(r.Context(), product, variants, req.Count, req.Note)

	slog.InfoContext(r.Context(), "cart item added", "product_id", product.ID, "item_id", item.ID)

	writeJSON(w, http.StatusCreated, h.itemResponse(item))
}

// IncreaseItem adds one unit. Absent ids are a defined success path.
func (h *Handler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Increase(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// DecreaseItem removes one unit, or the whole entry at count 1.
func (h *Handler) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Decrease(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem deletes an entry. Absent ids are a defined success path.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Remove(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// RemoveAll empties the cart. The UI gates this behind a confirmation.
func (h *Handler) RemoveAll(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Checkout hands the cart off to the messaging and payment collaborators.
// The cart is intentionally not cleared afterwards.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
	}

	items := h.cart.Items()
	if len(items) == 0 {
		writeError(w, http.StatusBadRequest, "cart_empty", "")
		return
	}

	fields := make([]tenant.Field, 0, len(req.Fields))
	for _, f := range req.Fields {
		fields = append(fields, tenant.Field{Title: f.Title, Value: f.Value})
	}
	if len(fields) == 0 {
		fields = nil
	}

	result := h.checkout.Checkout(r.Context(), items, fields)

	resp := CheckoutResponse{
		OrderID:     result.OrderID,
		RedirectURL: result.RedirectURL,
	}
	if result.Preference != nil {
		resp.Preference = &PreferenceDTO{ID: result.Preference.ID, InitPoint: result.Preference.InitPoint}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ReceiveOrderHook persists an order notification to the order log.
func (h *Handler) ReceiveOrderHook(w http.ResponseWriter, r *http.Request) {
	if h.orders == nil {
		writeError(w, http.StatusServiceUnavailable, "order_log_unavailable", "")
		return
	}

	var req OrderHookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.OrderID == "" {
		writeError(w, http.StatusBadRequest, "order_id_required", "")
		return
	}

	payload, err := json.Marshal(struct {
		Items  []OrderHookItem `json:"items"`
		Fields []FieldDTO      `json:"fields,omitempty"`
	}{Items: req.Items, Fields: req.Fields})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}

	tenantID := chi.URLParam(r, "tenantID")
	entry := orderlog.NewEntry(r.Context(), req.OrderID, tenantID, req.Phone, string(payload), req.Message)
	if err := h.orders.Save(r.Context(), entry); err != nil {
		slog.ErrorContext(r.Context(), "order hook: save entry", "order_id", req.OrderID, "error", err)
		writeError(w, http.StatusInternalServerError, "order_log_error", "")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) cartResponse() CartResponse {
	items := h.cart.Items()
	resp := CartResponse{
		Items:          make([]CartItemResponse, 0, len(items)),
		Quantity:       cart.Quantity(items),
		Total:          cart.Total(items).String(),
		FormattedTotal: h.prices.Format(cart.Total(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, h.itemResponse(item))
	}
	return resp
}

func (h *Handler) itemResponse(item cart.Item) CartItemResponse {
	variants := make([]VariantDTO, 0, len(item.Variants))
	for _, v := range item.Variants {
		variants = append(variants, VariantDTO{Title: v.Title, Price: v.Price})
	}

	// Images come from the live catalog, falling back to the snapshot for
	// products that disappeared after the item was added.
	image := h.catalog.Image(item.Product.ID)
	if image == "" {
		image = item.Product.Image
	}

	return CartItemResponse{
		ID:                 item.ID,
		ProductID:          item.Product.ID,
		Title:              item.Product.Title,
		Code:               item.Product.Code,
		Image:              image,
		Variants:           variants,
		Count:              item.Count,
		Note:               item.Note,
		UnitPrice:          cart.UnitPrice(item).String(),
		Price:              cart.Price(item).String(),
		FormattedUnitPrice: cart.FormattedUnitPrice(h.prices, item),
		FormattedPrice:     cart.FormattedPrice(h.prices, item),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
