package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidProductName = errors.New("product name is required")
	ErrInvalidColor       = errors.New("unknown product color")
	ErrInvalidSize        = errors.New("unknown product size")
	ErrInvalidForm        = errors.New("unknown product form")
)

// Color is the color of a product
type Color int

const (
	Red Color = iota
	Black
	Blue
	Green
)

var colorNames = [...]string{"Red", "Black", "Blue", "Green"}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// ParseColor parses a color name, ignoring case
func ParseColor(s string) (Color, error) {
	for i, name := range colorNames {
		if strings.EqualFold(name, s) {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// Size is the size of a product
type Size int

const (
	Small Size = iota
	Medium
	Large
	Yuge
)

var sizeNames = [...]string{"Small", "Medium", "Large", "Yuge"}

func (s Size) String() string {
	if s < 0 || int(s) >= len(sizeNames) {
		return fmt.Sprintf("Size(%d)", int(s))
	}
	return sizeNames[s]
}

// ParseSize parses a size name, ignoring case
func ParseSize(s string) (Size, error) {
	for i, name := range sizeNames {
		if strings.EqualFold(name, s) {
			return Size(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
}

// Form is the shape of a product
type Form int

const (
	Square Form = iota
	Circle
)

var formNames = [...]string{"Square", "Circle"}

func (f Form) String() string {
	if f < 0 || int(f) >= len(formNames) {
		return fmt.Sprintf("Form(%d)", int(f))
	}
	return formNames[f]
}

// ParseForm parses a form name, ignoring case
func ParseForm(s string) (Form, error) {
	for i, name := range formNames {
		if strings.EqualFold(name, s) {
			return Form(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidForm, s)
}

// Product represents the product entity. It is never mutated after NewProduct.
type Product struct {
	ID    string
	Name  string
	Color Color
	Size  Size
	Form  Form
}

// NewProduct creates a new product with validation
func NewProduct(name string, color Color, size Size, form Form) (*Product, error) {
	product := &Product{
		ID:    uuid.New().String(),
		Name:  name,
		Color: color,
		Size:  size,
		Form:  form,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidProductName
	}
	return nil
}

// SeedCatalog builds the demo catalog: Apple, Tree and House, in that order.
func SeedCatalog() []*Product {
	return []*Product{
		mustProduct("Apple", Red, Large, Square),
		mustProduct("Tree", Green, Yuge, Circle),
		mustProduct("House", Blue, Large, Circle),
	}
}

func mustProduct(name string, color Color, size Size, form Form) *Product {
	p, err := NewProduct(name, color, size, form)
	if err != nil {
		panic(err)
	}
	return p
}
