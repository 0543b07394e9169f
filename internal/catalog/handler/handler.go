package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bazaarika/storefront-service/internal/catalog"
	"github.com/bazaarika/storefront-service/internal/catalog/dto"
	"github.com/bazaarika/storefront-service/internal/model"
	"github.com/bazaarika/storefront-service/internal/pkg/logger"
	"github.com/bazaarika/storefront-service/internal/pricing"
	"github.com/bazaarika/storefront-service/internal/variant"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProduct)
	r.Post("/products", h.CreateProduct)
	r.Put("/products/{id}", h.UpdateProduct)
	r.Delete("/products/{id}", h.DeleteProduct)
}

type productPayload struct {
	CategoryID     string                   `json:"category_id"`
	SKU            string                   `json:"sku"`
	Name           string                   `json:"name"`
	Description    string                   `json:"description"`
	BasePrice      decimal.Decimal          `json:"base_price"`
	CompareAtPrice *decimal.Decimal         `json:"compare_at_price"`
	TrackInventory bool                     `json:"track_inventory"`
	ImageURL       string                   `json:"image_url"`
	IsActive       *bool                    `json:"is_active"`
	Options        []dto.VariantOptionInput `json:"options"`
	Variants       []dto.VariantPriceInput  `json:"variants"`
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SKU == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "sku and name are required")
		return
	}

	input := &dto.CreateProductInput{
		CategoryID:     req.CategoryID,
		SKU:            req.SKU,
		Name:           req.Name,
		Description:    req.Description,
		BasePrice:      req.BasePrice,
		CompareAtPrice: req.CompareAtPrice,
		TrackInventory: req.TrackInventory,
		ImageURL:       req.ImageURL,
		Options:        req.Options,
		Variants:       req.Variants,
	}

	p, err := h.uc.CreateProduct(r.Context(), input)
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	input := &dto.UpdateProductInput{
		ID:             chi.URLParam(r, "id"),
		CategoryID:     req.CategoryID,
		SKU:            req.SKU,
		Name:           req.Name,
		Description:    req.Description,
		BasePrice:      req.BasePrice,
		CompareAtPrice: req.CompareAtPrice,
		TrackInventory: req.TrackInventory,
		ImageURL:       req.ImageURL,
		IsActive:       isActive,
		Options:        req.Options,
		Variants:       req.Variants,
	}

	p, err := h.uc.UpdateProduct(r.Context(), input)
	if err != nil {
		h.logger.Error("failed to update product", zap.Error(err))
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// productDetail is the product plus the price pair the storefront renders.
// Price follows the resolved variant when the query string carries a full
// option selection, and falls back to the base price otherwise.
type productDetail struct {
	*model.Product
	Price           decimal.Decimal     `json:"price"`
	CompareAtPrice  decimal.NullDecimal `json:"compare_at_price"`
	DiscountPercent int                 `json:"discount_percent"`
	SelectedVariant string              `json:"selected_variant,omitempty"`
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	selection := make(map[string]string)
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			selection[k] = vs[0]
		}
	}

	resolved := variant.Resolve(p.Options, selection, p.Variants)
	quote := pricing.QuoteProduct(p, resolved)

	detail := productDetail{
		Product:         p,
		Price:           quote.Price,
		CompareAtPrice:  quote.CompareAtPrice,
		DiscountPercent: pricing.DiscountPercent(quote),
	}
	if resolved != nil {
		detail.SelectedVariant = resolved.Label
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := &dto.ProductFilters{
		CategoryID:  q.Get("category"),
		SearchQuery: q.Get("q"),
		SortBy:      q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
		Page:        1,
		PageSize:    20,
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		filters.Page = v
	}
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil && v > 0 && v <= 100 {
		filters.PageSize = v
	}
	if q.Get("active") != "" {
		b := q.Get("active") == "true"
		filters.IsActive = &b
	}

	products, total, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products":  products,
		"total":     total,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrSKUExists),
		errors.Is(err, catalog.ErrVariantPriceRequired),
		errors.Is(err, catalog.ErrVariantPriceInvalid),
		errors.Is(err, catalog.ErrVariantStockInvalid),
		errors.Is(err, catalog.ErrUnknownVariantLabel):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
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
