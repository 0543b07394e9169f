package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bazaarika/storefront-service/internal/auth"
	"github.com/bazaarika/storefront-service/internal/cart"
	"github.com/bazaarika/storefront-service/internal/cart/dto"
	"github.com/bazaarika/storefront-service/internal/catalog"
	"github.com/bazaarika/storefront-service/internal/pkg/logger"
)

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/cart", h.GetCart)
	r.Post("/cart/items", h.AddItem)
	r.Put("/cart/items/{key}", h.UpdateItem)
	r.Delete("/cart/items/{key}", h.RemoveItem)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := auth.GetSessionID(r.Context())
	if sessionID == "" {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	view, err := h.uc.GetCart(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := auth.GetSessionID(r.Context())
	if sessionID == "" {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	var input dto.AddItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.uc.AddItem(r.Context(), sessionID, &input)
	if err != nil {
		h.writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sessionID := auth.GetSessionID(r.Context())
	if sessionID == "" {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key, err := lineKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line key")
		return
	}

	view, err := h.uc.UpdateItem(r.Context(), sessionID, key, req.Quantity)
	if err != nil {
		h.writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := auth.GetSessionID(r.Context())
	if sessionID == "" {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	key, err := lineKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line key")
		return
	}

	view, err := h.uc.RemoveItem(r.Context(), sessionID, key)
	if err != nil {
		h.writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// lineKey decodes the {key} path segment. Variant labels put "|", spaces and
// slashes into the key, so clients send it percent-escaped and chi hands the
// segment back still escaped.
func lineKey(r *http.Request) (string, error) {
	return url.PathUnescape(chi.URLParam(r, "key"))
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrLineNotFound), errors.Is(err, catalog.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, cart.ErrInsufficientStock):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("cart operation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
