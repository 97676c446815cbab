package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShape_RequiredFields(t *testing.T) {
	assert.Equal(t, []string{FieldRadius}, ShapeCircle.RequiredFields())
	assert.Equal(t, []string{FieldLength, FieldWidth}, ShapeRectangle.RequiredFields())
	assert.Equal(t, []string{FieldBase, FieldHeight}, ShapeTriangle.RequiredFields())
	assert.Nil(t, Shape("square").RequiredFields())
}

func TestShapeInput_Missing(t *testing.T) {
	t.Run("nil record misses everything", func(t *testing.T) {
		var in *ShapeInput
		assert.Equal(t, []string{FieldLength, FieldWidth}, in.Missing(FieldLength, FieldWidth))
	})

	t.Run("reports only absent fields in order", func(t *testing.T) {
		in := &ShapeInput{Width: Float(4)}
		assert.Equal(t, []string{FieldLength}, in.Missing(FieldLength, FieldWidth))
	})

	t.Run("zero is present", func(t *testing.T) {
		in := &ShapeInput{Radius: Float(0)}
		assert.Empty(t, in.Missing(FieldRadius))
	})
}

func TestShapeInput_Variants(t *testing.T) {
	in := &ShapeInput{Radius: Float(2), Length: Float(3), Width: Float(4), Base: Float(5)}

	c, ok := in.Circle()
	assert.True(t, ok)
	assert.Equal(t, CircleInput{Radius: 2}, c)

	r, ok := in.Rectangle()
	assert.True(t, ok)
	assert.Equal(t, RectangleInput{Length: 3, Width: 4}, r)

	_, ok = in.Triangle()
	assert.False(t, ok)
}

func TestShapeResult_Values(t *testing.T) {
	r := &ShapeResult{Area: 12, Perimeter: Float(14)}
	assert.Equal(t, map[string]float64{"area": 12, "perimeter": 14}, r.Values())
}
