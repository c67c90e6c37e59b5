package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	for _, g := range Genders {
		assert.True(t, g.Valid(), g)
	}
	for _, c := range GarmentClasses {
		assert.True(t, c.Valid(), c)
	}
	for _, s := range SizeSystems {
		assert.True(t, s.Valid(), s)
	}

	assert.False(t, Gender("Men").Valid(), "Valid is case sensitive")
	assert.False(t, Gender("").Valid())
	assert.False(t, GarmentClass("hats").Valid())
	assert.False(t, SizeSystem("us").Valid())
	assert.False(t, SizeSystem("JP").Valid())
}

func TestParse(t *testing.T) {
	g, err := ParseGender(" WOMEN ")
	assert.NoError(t, err)
	assert.Equal(t, GenderWomen, g)

	c, err := ParseGarmentClass("Dresses")
	assert.NoError(t, err)
	assert.Equal(t, GarmentDresses, c)

	s, err := ParseSizeSystem("eu")
	assert.NoError(t, err)
	assert.Equal(t, SystemEU, s)

	_, err = ParseGender("kids")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = ParseGarmentClass("hats")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = ParseSizeSystem("JP")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
