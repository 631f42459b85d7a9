package dto

import (
	"github.com/mrops-br/catalog-filter/internal/domain"
)

// CreateProductRequest represents the request to create a product
type CreateProductRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Size  string `json:"size"`
	Form  string `json:"form"`
}

// FilterQuery selects products by any combination of attributes.
// Empty fields do not constrain the result.
type FilterQuery struct {
	Color string
	Size  string
	Form  string
}

// LegacyFilterQuery selects products by exactly one of color or size
type LegacyFilterQuery struct {
	Color string
	Size  string
}

// ProductResponse represents the product response
type ProductResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Size  string `json:"size"`
	Form  string `json:"form"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:    p.ID,
		Name:  p.Name,
		Color: p.Color.String(),
		Size:  p.Size.String(),
		Form:  p.Form.String(),
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
