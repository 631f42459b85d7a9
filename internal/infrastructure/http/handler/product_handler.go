package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/catalog-filter/internal/app/dto"
	"github.com/mrops-br/catalog-filter/internal/app/service"
	"github.com/mrops-br/catalog-filter/internal/domain"
	"github.com/mrops-br/catalog-filter/internal/infrastructure/http/response"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidProductName),
		errors.Is(err, domain.ErrInvalidColor),
		errors.Is(err, domain.ErrInvalidSize),
		errors.Is(err, domain.ErrInvalidForm),
		errors.Is(err, service.ErrInvalidLegacyQuery):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateProduct):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusCreated, product)
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.service.GetProductByID(r.Context(), id)
	if err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, product)
}

// ListProducts handles GET /products, optionally filtered by
// ?color=, ?size= and ?form=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := dto.FilterQuery{
		Color: q.Get("color"),
		Size:  q.Get("size"),
		Form:  q.Get("form"),
	}

	var (
		products []*dto.ProductResponse
		err      error
	)
	if query == (dto.FilterQuery{}) {
		products, err = h.service.ListProducts(r.Context())
	} else {
		products, err = h.service.FilterProducts(r.Context(), &query)
	}
	if err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// LegacyFilterProducts handles GET /products/legacy with ?color= or ?size=
func (h *ProductHandler) LegacyFilterProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.service.LegacyFilterProducts(r.Context(), &dto.LegacyFilterQuery{
		Color: q.Get("color"),
		Size:  q.Get("size"),
	})
	if err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, products)
}
