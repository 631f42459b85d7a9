package domain

import "errors"

var ErrNilSpecification = errors.New("specification is required")

// Specification is a single filtering rule over T
type Specification[T any] interface {
	IsSatisfied(item T) bool
}

// ColorSpecification matches products of one color
type ColorSpecification struct {
	color Color
}

func NewColorSpecification(color Color) *ColorSpecification {
	return &ColorSpecification{color: color}
}

func (s *ColorSpecification) IsSatisfied(p *Product) bool {
	return p.Color == s.color
}

// SizeSpecification matches products of one size
type SizeSpecification struct {
	size Size
}

func NewSizeSpecification(size Size) *SizeSpecification {
	return &SizeSpecification{size: size}
}

func (s *SizeSpecification) IsSatisfied(p *Product) bool {
	return p.Size == s.size
}

// FormSpecification matches products of one form
type FormSpecification struct {
	form Form
}

func NewFormSpecification(form Form) *FormSpecification {
	return &FormSpecification{form: form}
}

func (s *FormSpecification) IsSatisfied(p *Product) bool {
	return p.Form == s.form
}

// AndSpecification is satisfied when both of its children are
type AndSpecification[T any] struct {
	first, second Specification[T]
}

// NewAndSpecification combines two specifications. Both are required.
func NewAndSpecification[T any](first, second Specification[T]) (*AndSpecification[T], error) {
	if first == nil || second == nil {
		return nil, ErrNilSpecification
	}
	return &AndSpecification[T]{first: first, second: second}, nil
}

// IsSatisfied always evaluates first, then second.
func (s *AndSpecification[T]) IsSatisfied(item T) bool {
	a := s.first.IsSatisfied(item)
	b := s.second.IsSatisfied(item)
	return a && b
}

// MultiSpecification is the conjunction of any number of specifications.
// With no children it is satisfied by everything.
type MultiSpecification[T any] struct {
	specs []Specification[T]
}

func NewMultiSpecification[T any](specs ...Specification[T]) *MultiSpecification[T] {
	return &MultiSpecification[T]{specs: specs}
}

func (s *MultiSpecification[T]) IsSatisfied(item T) bool {
	for _, spec := range s.specs {
		if !spec.IsSatisfied(item) {
			return false
		}
	}
	return true
}

// Len reports the number of child specifications
func (s *MultiSpecification[T]) Len() int {
	return len(s.specs)
}
