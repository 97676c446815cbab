package domain

// Shape identifies one of the supported geometric figures
type Shape string

const (
	ShapeCircle    Shape = "circle"
	ShapeRectangle Shape = "rectangle"
	ShapeTriangle  Shape = "triangle"
)

// Dimension field names as they appear on the wire
const (
	FieldRadius = "radius"
	FieldBase   = "base"
	FieldHeight = "height"
	FieldLength = "length"
	FieldWidth  = "width"
)

// Shapes lists the supported shapes in display order
var Shapes = []Shape{ShapeCircle, ShapeRectangle, ShapeTriangle}

// IsValid checks if the shape is supported
func (s Shape) IsValid() bool {
	switch s {
	case ShapeCircle, ShapeRectangle, ShapeTriangle:
		return true
	}
	return false
}

// String returns the wire name of the shape
func (s Shape) String() string {
	return string(s)
}

// RequiredFields returns the dimension fields the shape cannot be computed without
func (s Shape) RequiredFields() []string {
	switch s {
	case ShapeCircle:
		return []string{FieldRadius}
	case ShapeRectangle:
		return []string{FieldLength, FieldWidth}
	case ShapeTriangle:
		return []string{FieldBase, FieldHeight}
	}
	return nil
}

// ShapeInput is the loosely typed dimension record accepted from clients.
// Any present field must be finite and strictly positive; which fields are
// required depends on the shape being computed.
type ShapeInput struct {
	Radius *float64 `json:"radius,omitempty" form:"radius" validate:"omitempty,positive_finite"`
	Base   *float64 `json:"base,omitempty" form:"base" validate:"omitempty,positive_finite"`
	Height *float64 `json:"height,omitempty" form:"height" validate:"omitempty,positive_finite"`
	Length *float64 `json:"length,omitempty" form:"length" validate:"omitempty,positive_finite"`
	Width  *float64 `json:"width,omitempty" form:"width" validate:"omitempty,positive_finite"`
}

// Value returns the named field and whether it was supplied
func (in *ShapeInput) Value(field string) (float64, bool) {
	if in == nil {
		return 0, false
	}

	var v *float64
	switch field {
	case FieldRadius:
		v = in.Radius
	case FieldBase:
		v = in.Base
	case FieldHeight:
		v = in.Height
	case FieldLength:
		v = in.Length
	case FieldWidth:
		v = in.Width
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Missing returns the subset of fields that were not supplied, preserving order
func (in *ShapeInput) Missing(fields ...string) []string {
	var missing []string
	for _, f := range fields {
		if _, ok := in.Value(f); !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// CircleInput carries the dimensions of a circle
type CircleInput struct {
	Radius float64
}

// RectangleInput carries the dimensions of a rectangle
type RectangleInput struct {
	Length float64
	Width  float64
}

// TriangleInput carries the dimensions of a triangle
type TriangleInput struct {
	Base   float64
	Height float64
}

// Circle narrows the record to a circle. ok is false when radius is absent.
func (in *ShapeInput) Circle() (CircleInput, bool) {
	r, ok := in.Value(FieldRadius)
	return CircleInput{Radius: r}, ok
}

// Rectangle narrows the record to a rectangle. ok is false when length or width is absent.
func (in *ShapeInput) Rectangle() (RectangleInput, bool) {
	l, lok := in.Value(FieldLength)
	w, wok := in.Value(FieldWidth)
	return RectangleInput{Length: l, Width: w}, lok && wok
}

// Triangle narrows the record to a triangle. ok is false when base or height is absent.
func (in *ShapeInput) Triangle() (TriangleInput, bool) {
	b, bok := in.Value(FieldBase)
	h, hok := in.Value(FieldHeight)
	return TriangleInput{Base: b, Height: h}, bok && hok
}

// ShapeResult holds the computed quantities for a shape. Only the outputs
// relevant to the shape are set.
type ShapeResult struct {
	Area          float64  `json:"area"`
	Circumference *float64 `json:"circumference,omitempty"`
	Perimeter     *float64 `json:"perimeter,omitempty"`
}

// Values returns the populated outputs keyed by their wire names
func (r *ShapeResult) Values() map[string]float64 {
	values := map[string]float64{"area": r.Area}
	if r.Circumference != nil {
		values["circumference"] = *r.Circumference
	}
	if r.Perimeter != nil {
		values["perimeter"] = *r.Perimeter
	}
	return values
}

// Float returns a pointer to v, for building inputs and results
func Float(v float64) *float64 {
	return &v
}
