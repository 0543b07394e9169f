package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bazaarika/storefront-service/internal/auth"
	"github.com/bazaarika/storefront-service/internal/cart"
	"github.com/bazaarika/storefront-service/internal/catalog"
	"github.com/bazaarika/storefront-service/internal/checkout"
	"github.com/bazaarika/storefront-service/internal/checkout/dto"
	"github.com/bazaarika/storefront-service/internal/pkg/logger"
)

type CheckoutHandler struct {
	uc     checkout.UseCase
	logger logger.ZapLogger
}

func NewCheckoutHandler(uc checkout.UseCase, log logger.ZapLogger) *CheckoutHandler {
	return &CheckoutHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/checkout", h.PlaceOrder)
	r.Get("/orders", h.ListOrders)
	r.Get("/orders/{id}", h.GetOrder)
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := auth.GetSessionID(r.Context())
	if sessionID == "" {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	var input dto.PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.uc.PlaceOrder(r.Context(), sessionID, &input)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyOrder),
			errors.Is(err, checkout.ErrPaymentMethodMissing),
			errors.Is(err, cart.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, catalog.ErrProductNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			h.logger.Error("failed to place order", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := auth.GetSessionID(r.Context())
	if sessionID == "" {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	order, err := h.uc.GetOrder(r.Context(), sessionID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, checkout.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sessionID := auth.GetSessionID(r.Context())
	if sessionID == "" {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	page, pageSize := 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = v
	}

	orders, total, err := h.uc.ListOrders(r.Context(), sessionID, page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  total,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
