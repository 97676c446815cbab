// Package service contains the business logic layer for the Shapes Calculator.
//
// CalculatorService is the single entry point for computations. It takes an
// untrusted ShapeInput, checks that the fields required by the shape are
// present, applies the positivity rule to every supplied field, dispatches to
// the geometry formulas and returns either a complete ShapeResult or an
// AppError. It never returns both.
//
// # Thread Safety
//
// Services hold no per-request state and are safe for concurrent use.
package service
