package geometry

import "math"

// CircleArea returns π·r².
func CircleArea(radius float64) float64 {
	return math.Pi * radius * radius
}

// CircleCircumference returns 2·π·r.
func CircleCircumference(radius float64) float64 {
	return 2 * math.Pi * radius
}

// RectangleArea returns length·width.
func RectangleArea(length, width float64) float64 {
	return length * width
}

// RectanglePerimeter returns 2·(length+width).
func RectanglePerimeter(length, width float64) float64 {
	return 2 * (length + width)
}

// TriangleArea returns half of base·height.
func TriangleArea(base, height float64) float64 {
	return 0.5 * base * height
}
