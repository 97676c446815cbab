package dto

import "github.com/shapecalc/shapecalc/internal/domain"

// ShapeRequest is the body accepted by the calculation endpoints
type ShapeRequest struct {
	Radius *float64 `json:"radius" form:"radius"`
	Base   *float64 `json:"base" form:"base"`
	Height *float64 `json:"height" form:"height"`
	Length *float64 `json:"length" form:"length"`
	Width  *float64 `json:"width" form:"width"`
}

// ToInput converts the request into the domain record
func (r *ShapeRequest) ToInput() *domain.ShapeInput {
	return &domain.ShapeInput{
		Radius: r.Radius,
		Base:   r.Base,
		Height: r.Height,
		Length: r.Length,
		Width:  r.Width,
	}
}
