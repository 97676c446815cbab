package testutil

import (
	"github.com/shapecalc/shapecalc/internal/domain"
)

// NewTestCircleInput creates a circle input with radius 2.
func NewTestCircleInput() *domain.ShapeInput {
	return &domain.ShapeInput{Radius: domain.Float(2)}
}

// NewTestRectangleInput creates a 3 by 4 rectangle input.
func NewTestRectangleInput() *domain.ShapeInput {
	return &domain.ShapeInput{Length: domain.Float(3), Width: domain.Float(4)}
}

// NewTestTriangleInput creates a triangle input with base 5 and height 10.
func NewTestTriangleInput() *domain.ShapeInput {
	return &domain.ShapeInput{Base: domain.Float(5), Height: domain.Float(10)}
}

// NewTestRectangleResult creates the result expected for NewTestRectangleInput.
func NewTestRectangleResult() *domain.ShapeResult {
	return &domain.ShapeResult{Area: 12, Perimeter: domain.Float(14)}
}
