package domain

import (
	"fmt"
	"strings"
)

// Gender selects the men's or women's size charts
type Gender string

const (
	GenderMen   Gender = "men"
	GenderWomen Gender = "women"
)

// GarmentClass is the coarse category that decides which size chart applies
type GarmentClass string

const (
	GarmentShoes   GarmentClass = "shoes"
	GarmentTops    GarmentClass = "tops"
	GarmentBottoms GarmentClass = "bottoms"
	GarmentDresses GarmentClass = "dresses"
)

// SizeSystem is one of the regional size conventions
type SizeSystem string

const (
	SystemUS SizeSystem = "US"
	SystemUK SizeSystem = "UK"
	SystemEU SizeSystem = "EU"
)

// Genders lists every modeled gender in chart order
var Genders = []Gender{GenderMen, GenderWomen}

// GarmentClasses lists every modeled garment class in chart order
var GarmentClasses = []GarmentClass{GarmentShoes, GarmentTops, GarmentBottoms, GarmentDresses}

// SizeSystems lists the regional systems in column order
var SizeSystems = []SizeSystem{SystemUS, SystemUK, SystemEU}

// Valid reports whether g is one of the modeled genders
func (g Gender) Valid() bool {
	return g == GenderMen || g == GenderWomen
}

// Valid reports whether c has a size chart family
func (c GarmentClass) Valid() bool {
	switch c {
	case GarmentShoes, GarmentTops, GarmentBottoms, GarmentDresses:
		return true
	}
	return false
}

// Valid reports whether s is a supported regional system
func (s SizeSystem) Valid() bool {
	switch s {
	case SystemUS, SystemUK, SystemEU:
		return true
	}
	return false
}

// ParseGender accepts "men"/"women" in any case
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: unknown gender %q", ErrInvalidRequest, s)
	}
	return g, nil
}

// ParseGarmentClass accepts shoes/tops/bottoms/dresses in any case
func ParseGarmentClass(s string) (GarmentClass, error) {
	c := GarmentClass(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown garment class %q", ErrInvalidRequest, s)
	}
	return c, nil
}

// ParseSizeSystem accepts US/UK/EU in any case
func ParseSizeSystem(s string) (SizeSystem, error) {
	sys := SizeSystem(strings.ToUpper(strings.TrimSpace(s)))
	if !sys.Valid() {
		return "", fmt.Errorf("%w: unknown size system %q", ErrInvalidRequest, s)
	}
	return sys, nil
}

// SizeRow is one physical size expressed in every regional system
type SizeRow struct {
	US string `json:"US" yaml:"US"`
	UK string `json:"UK" yaml:"UK"`
	EU string `json:"EU" yaml:"EU"`
}

// Value returns the column for the given system, or "" for an unknown system
func (r SizeRow) Value(system SizeSystem) string {
	switch system {
	case SystemUS:
		return r.US
	case SystemUK:
		return r.UK
	case SystemEU:
		return r.EU
	}
	return ""
}

// LetterSize maps a letter code to its equivalent numeric US sizes
type LetterSize struct {
	Letter  string
	Numeric []string
}

// ChartKey identifies one size chart
type ChartKey struct {
	Gender       Gender       `json:"gender" yaml:"gender"`
	GarmentClass GarmentClass `json:"garmentClass" yaml:"garmentClass"`
}

// SizeChart is a chart returned to API callers
type SizeChart struct {
	ChartKey `yaml:",inline"`
	Systems  []SizeSystem `json:"systems" yaml:"systems"`
	Rows     []SizeRow    `json:"rows" yaml:"rows"`
}

// ConvertRequest represents a size conversion request
type ConvertRequest struct {
	Size         string `json:"size" binding:"required"`
	From         string `json:"from" binding:"required"`
	To           string `json:"to,omitempty"`
	Gender       string `json:"gender" binding:"required"`
	GarmentClass string `json:"garmentClass" binding:"required"`
}

// ConvertResult carries the matched row; Matched is false when the size is not charted
type ConvertResult struct {
	Size         string       `json:"size" yaml:"size"`
	From         SizeSystem   `json:"from" yaml:"from"`
	To           SizeSystem   `json:"to,omitempty" yaml:"to,omitempty"`
	Gender       Gender       `json:"gender" yaml:"gender"`
	GarmentClass GarmentClass `json:"garmentClass" yaml:"garmentClass"`
	Matched      bool         `json:"matched" yaml:"matched"`
	Converted    string       `json:"converted,omitempty" yaml:"converted,omitempty"`
	Row          *SizeRow     `json:"row,omitempty" yaml:"row,omitempty"`
}

// LetterResult is the outcome of a numeric-to-letter lookup
type LetterResult struct {
	Numeric string `json:"numeric" yaml:"numeric"`
	Matched bool   `json:"matched" yaml:"matched"`
	Letter  string `json:"letter,omitempty" yaml:"letter,omitempty"`
}
