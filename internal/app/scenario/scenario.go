// Package scenario prints the filtering walkthrough: the same catalog
// filtered first with the closed ProductFilter, then with specifications.
package scenario

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/mrops-br/catalog-filter/internal/domain"
)

// Run writes every scenario to w, in order
func Run(w io.Writer, products []*domain.Product) error {
	var (
		pf domain.ProductFilter
		bf domain.BetterFilter[*domain.Product]
	)

	largeBlue, err := domain.NewAndSpecification[*domain.Product](
		domain.NewColorSpecification(domain.Blue),
		domain.NewSizeSpecification(domain.Large),
	)
	if err != nil {
		return fmt.Errorf("large blue specification: %w", err)
	}

	largeBlueCircle := domain.NewMultiSpecification[*domain.Product](
		domain.NewColorSpecification(domain.Blue),
		domain.NewSizeSpecification(domain.Large),
		domain.NewFormSpecification(domain.Circle),
	)

	p := &printer{w: w}
	p.line("Open-Closed Principle")
	p.section("Green products (legacy filter):",
		pf.FilterByColor(slices.Values(products), domain.Green), "is green")
	p.section("Green products (specification filter):",
		bf.Filter(slices.Values(products), domain.NewColorSpecification(domain.Green)), "is green")
	p.section("Large blue products:", bf.Filter(slices.Values(products), largeBlue), "is large and blue")
	p.section("Large blue circular products:",
		bf.Filter(slices.Values(products), largeBlueCircle), "is large, blue and circular")

	return p.err
}

// printer keeps the first write error and skips everything after it
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) section(title string, products iter.Seq[*domain.Product], label string) {
	p.line("%s", title)
	for product := range products {
		p.line(" - %s %s", product.Name, label)
	}
}
