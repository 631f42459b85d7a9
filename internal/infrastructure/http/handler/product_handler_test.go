package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mrops-br/catalog-filter/internal/app/service"
	"github.com/mrops-br/catalog-filter/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid name", domain.ErrInvalidProductName, http.StatusBadRequest},
		{"wrapped invalid color", fmt.Errorf("%w: %q", domain.ErrInvalidColor, "pink"), http.StatusBadRequest},
		{"invalid size", domain.ErrInvalidSize, http.StatusBadRequest},
		{"invalid form", domain.ErrInvalidForm, http.StatusBadRequest},
		{"legacy query", service.ErrInvalidLegacyQuery, http.StatusBadRequest},
		{"not found", domain.ErrProductNotFound, http.StatusNotFound},
		{"duplicate", fmt.Errorf("%w: abc", domain.ErrDuplicateProduct), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
