package domain

import "iter"

// Filter selects the items that satisfy a specification
type Filter[T any] interface {
	Filter(items iter.Seq[T], spec Specification[T]) iter.Seq[T]
}

// ProductFilter filters by one hardcoded attribute per method.
// Every new attribute needs a new method here.
type ProductFilter struct{}

// FilterBySize yields the products of the given size, in input order
func (ProductFilter) FilterBySize(products iter.Seq[*Product], size Size) iter.Seq[*Product] {
	return func(yield func(*Product) bool) {
		for p := range products {
			if p.Size == size && !yield(p) {
				return
			}
		}
	}
}

// FilterByColor yields the products of the given color, in input order
func (ProductFilter) FilterByColor(products iter.Seq[*Product], color Color) iter.Seq[*Product] {
	return func(yield func(*Product) bool) {
		for p := range products {
			if p.Color == color && !yield(p) {
				return
			}
		}
	}
}

// BetterFilter filters with an injected specification and knows nothing
// about product attributes.
type BetterFilter[T any] struct{}

var _ Filter[*Product] = BetterFilter[*Product]{}

// Filter yields the items satisfying spec. spec is evaluated once per
// item, in order, only as the sequence is consumed.
func (BetterFilter[T]) Filter(items iter.Seq[T], spec Specification[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range items {
			if spec.IsSatisfied(item) && !yield(item) {
				return
			}
		}
	}
}
