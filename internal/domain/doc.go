// Package domain contains the core types of the Shapes Calculator.
//
//   - Shape: the closed set of supported shapes
//   - ShapeInput: the optional dimension fields of one request
//   - CircleInput, RectangleInput, TriangleInput: per-shape inputs produced
//     only after presence checks, so formulas never see absent values
//   - ShapeResult: area plus the shape-specific outputs
//
// Types ending in "Input" carry request data; domain types are independent
// of how they are transmitted.
package domain
