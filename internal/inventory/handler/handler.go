package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bazaarika/storefront-service/internal/inventory"
	"github.com/bazaarika/storefront-service/internal/inventory/dto"
	"github.com/bazaarika/storefront-service/internal/inventory/usecase"
	"github.com/bazaarika/storefront-service/internal/pkg/logger"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/inventory/low-stock", h.ListLowStock)
	r.Get("/inventory/movements", h.ListMovements)
	r.Get("/inventory/{productID}", h.GetStock)
	r.Post("/inventory/adjust", h.Adjust)
}

func (h *InventoryHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var variantID *string
	if v := r.URL.Query().Get("variant"); v != "" {
		variantID = &v
	}

	inv, err := h.uc.GetStock(r.Context(), productID, variantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r, 20)

	items, total, err := h.uc.ListLowStock(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
	})
}

func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r, 50)

	filters := &dto.MovementFilters{
		ProductID:    r.URL.Query().Get("product"),
		MovementType: r.URL.Query().Get("type"),
		Page:         page,
		PageSize:     pageSize,
	}

	items, total, err := h.uc.ListMovements(r.Context(), filters)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"movements": items,
		"total":     total,
	})
}

func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID      string  `json:"product_id"`
		VariantID      *string `json:"variant_id"`
		QuantityChange int     `json:"quantity_change"`
		Reason         string  `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	inv, err := h.uc.AdjustInventory(r.Context(), &dto.AdjustInventoryInput{
		ProductID:      req.ProductID,
		VariantID:      req.VariantID,
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		ReferenceType:  "manual_adjustment",
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInsufficientInventory) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("failed to adjust inventory", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, inv)
}

func pagination(r *http.Request, defaultSize int) (int, int) {
	page, pageSize := 1, defaultSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = v
	}
	return page, pageSize
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
