package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/mrops-br/catalog-filter/internal/app/dto"
	"github.com/mrops-br/catalog-filter/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidLegacyQuery is returned when a legacy filter names zero or both attributes
var ErrInvalidLegacyQuery = errors.New("legacy filter requires exactly one of color or size")

// ProductService handles product use cases
type ProductService struct {
	repo                  domain.ProductRepository
	filter                domain.Filter[*domain.Product]
	legacy                domain.ProductFilter
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	productOperations     metric.Int64Counter
	filterMatches         metric.Int64Histogram
}

// NewProductService creates a new product service
func NewProductService(
	repo domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	filterMatches, _ := meter.Int64Histogram(
		"products.filter.matches",
		metric.WithDescription("Number of products returned by a filter"),
		metric.WithUnit("{product}"),
	)

	return &ProductService{
		repo:                  repo,
		filter:                domain.BetterFilter[*domain.Product]{},
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		productOperations:     productOperations,
		filterMatches:         filterMatches,
	}
}

func (s *ProductService) recordOperation(ctx context.Context, operation, result string) {
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

func (s *ProductService) fail(ctx context.Context, span trace.Span, operation, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.logger.ErrorContext(ctx, msg,
		slog.String("error", err.Error()),
	)
	s.recordOperation(ctx, operation, "failure")
	return err
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.name", req.Name),
		attribute.String("product.color", req.Color),
		attribute.String("product.size", req.Size),
		attribute.String("product.form", req.Form),
	)

	s.logger.InfoContext(ctx, "Creating product",
		slog.String("name", req.Name),
	)

	product, err := newProductFromRequest(req)
	if err != nil {
		return nil, s.fail(ctx, span, "create", "Validation failed", err)
	}

	span.SetAttributes(attribute.String("product.id", product.ID))

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, s.fail(ctx, span, "create", "Failed to store product", err)
	}

	s.productCreatedCounter.Add(ctx, 1)
	s.recordOperation(ctx, "create", "success")

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.String("product_id", product.ID),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return dto.ToProductResponse(product), nil
}

func newProductFromRequest(req *dto.CreateProductRequest) (*domain.Product, error) {
	color, err := domain.ParseColor(req.Color)
	if err != nil {
		return nil, err
	}
	size, err := domain.ParseSize(req.Size)
	if err != nil {
		return nil, err
	}
	form, err := domain.ParseForm(req.Form)
	if err != nil {
		return nil, err
	}
	return domain.NewProduct(req.Name, color, size, form)
}

// Seed stores already constructed products, keeping their order
func (s *ProductService) Seed(ctx context.Context, products []*domain.Product) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.Seed")
	defer span.End()

	for _, p := range products {
		if err := s.repo.Create(ctx, p); err != nil {
			return s.fail(ctx, span, "seed", "Failed to seed catalog", err)
		}
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.logger.InfoContext(ctx, "Catalog seeded",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Catalog seeded")
	return nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		s.recordOperation(ctx, "read", "not_found")
		return nil, err
	}

	s.recordOperation(ctx, "read", "success")

	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return dto.ToProductResponse(product), nil
}

// ListProducts retrieves all products in catalog order
func (s *ProductService) ListProducts(ctx context.Context) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, "list", "Failed to list products", err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.recordOperation(ctx, "list", "success")

	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductResponseList(products), nil
}

// FilterProducts returns the products matching every attribute set in query.
// An empty query matches the whole catalog.
func (s *ProductService) FilterProducts(ctx context.Context, query *dto.FilterQuery) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.FilterProducts")
	defer span.End()

	spec, err := SpecificationFor(query)
	if err != nil {
		return nil, s.fail(ctx, span, "filter", "Invalid filter", err)
	}
	span.SetAttributes(attribute.Int("filter.criteria", spec.Len()))

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, "filter", "Failed to load products", err)
	}

	matched := slices.Collect(s.filter.Filter(slices.Values(products), spec))
	return s.filtered(ctx, span, "filter", matched), nil
}

// LegacyFilterProducts filters through the one-method-per-attribute ProductFilter
func (s *ProductService) LegacyFilterProducts(ctx context.Context, query *dto.LegacyFilterQuery) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.LegacyFilterProducts")
	defer span.End()

	if (query.Color == "") == (query.Size == "") {
		return nil, s.fail(ctx, span, "legacy_filter", "Invalid filter", ErrInvalidLegacyQuery)
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, "legacy_filter", "Failed to load products", err)
	}

	var matched []*domain.Product
	if query.Color != "" {
		color, err := domain.ParseColor(query.Color)
		if err != nil {
			return nil, s.fail(ctx, span, "legacy_filter", "Invalid filter", err)
		}
		matched = slices.Collect(s.legacy.FilterByColor(slices.Values(products), color))
	} else {
		size, err := domain.ParseSize(query.Size)
		if err != nil {
			return nil, s.fail(ctx, span, "legacy_filter", "Invalid filter", err)
		}
		matched = slices.Collect(s.legacy.FilterBySize(slices.Values(products), size))
	}

	return s.filtered(ctx, span, "legacy_filter", matched), nil
}

func (s *ProductService) filtered(ctx context.Context, span trace.Span, operation string, matched []*domain.Product) []*dto.ProductResponse {
	span.SetAttributes(attribute.Int("product.count", len(matched)))
	s.filterMatches.Record(ctx, int64(len(matched)),
		metric.WithAttributes(attribute.String("operation", operation)),
	)
	s.recordOperation(ctx, operation, "success")

	s.logger.InfoContext(ctx, "Products filtered successfully",
		slog.String("operation", operation),
		slog.Int("count", len(matched)),
	)

	span.SetStatus(codes.Ok, "Products filtered successfully")
	return dto.ToProductResponseList(matched)
}

// SpecificationFor turns a query into the conjunction of one leaf
// specification per attribute it sets.
func SpecificationFor(query *dto.FilterQuery) (*domain.MultiSpecification[*domain.Product], error) {
	var specs []domain.Specification[*domain.Product]

	if query.Color != "" {
		color, err := domain.ParseColor(query.Color)
		if err != nil {
			return nil, err
		}
		specs = append(specs, domain.NewColorSpecification(color))
	}
	if query.Size != "" {
		size, err := domain.ParseSize(query.Size)
		if err != nil {
			return nil, err
		}
		specs = append(specs, domain.NewSizeSpecification(size))
	}
	if query.Form != "" {
		form, err := domain.ParseForm(query.Form)
		if err != nil {
			return nil, err
		}
		specs = append(specs, domain.NewFormSpecification(form))
	}

	return domain.NewMultiSpecification(specs...), nil
}
