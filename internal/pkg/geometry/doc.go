// Package geometry holds the closed-form formulas behind the shapes API.
//
// All functions are pure and operate on float64 values that the caller has
// already validated as finite and strictly positive. Results are returned
// unrounded; display precision is left to the serialization layer.
package geometry
