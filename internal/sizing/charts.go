// Package sizing holds the static regional size charts and the lookups over them.
//
// Sizes are opaque strings. A lookup matches a chart value exactly, ignoring case only;
// "6" and "6.0" are different sizes and surrounding whitespace is significant.
package sizing

import (
	"slices"

	"github.com/closetcompare/backend/internal/domain"
)

// Rows ascend by physical size. Within a chart no column repeats a value.
var (
	womenShoes = []domain.SizeRow{
		{US: "5", UK: "2.5", EU: "35"},
		{US: "5.5", UK: "3", EU: "35.5"},
		{US: "6", UK: "3.5", EU: "36"},
		{US: "6.5", UK: "4", EU: "37"},
		{US: "7", UK: "4.5", EU: "37.5"},
		{US: "7.5", UK: "5", EU: "38"},
		{US: "8", UK: "5.5", EU: "38.5"},
		{US: "8.5", UK: "6", EU: "39"},
		{US: "9", UK: "6.5", EU: "40"},
		{US: "9.5", UK: "7", EU: "40.5"},
		{US: "10", UK: "7.5", EU: "41"},
		{US: "10.5", UK: "8", EU: "42"},
		{US: "11", UK: "8.5", EU: "42.5"},
	}

	menShoes = []domain.SizeRow{
		{US: "7", UK: "6", EU: "40"},
		{US: "7.5", UK: "6.5", EU: "40.5"},
		{US: "8", UK: "7", EU: "41"},
		{US: "8.5", UK: "7.5", EU: "42"},
		{US: "9", UK: "8", EU: "42.5"},
		{US: "9.5", UK: "8.5", EU: "43"},
		{US: "10", UK: "9", EU: "44"},
		{US: "10.5", UK: "9.5", EU: "44.5"},
		{US: "11", UK: "10", EU: "45"},
		{US: "11.5", UK: "10.5", EU: "45.5"},
		{US: "12", UK: "11", EU: "46"},
		{US: "13", UK: "12", EU: "47.5"},
		{US: "14", UK: "13", EU: "48.5"},
	}

	// US column is numeric for women's tops; letterSizes covers the letter crosswalk.
	womenTops = []domain.SizeRow{
		{US: "0", UK: "4", EU: "30"},
		{US: "2", UK: "6", EU: "32"},
		{US: "4", UK: "8", EU: "34"},
		{US: "6", UK: "10", EU: "36"},
		{US: "8", UK: "12", EU: "38"},
		{US: "10", UK: "14", EU: "40"},
		{US: "12", UK: "16", EU: "42"},
		{US: "14", UK: "18", EU: "44"},
		{US: "16", UK: "20", EU: "46"},
	}

	// US letters, UK chest inches, EU numeric.
	menTops = []domain.SizeRow{
		{US: "XS", UK: "32", EU: "42"},
		{US: "S", UK: "34", EU: "44"},
		{US: "M", UK: "36", EU: "46"},
		{US: "L", UK: "38", EU: "48"},
		{US: "XL", UK: "40", EU: "50"},
		{US: "XXL", UK: "42", EU: "52"},
		{US: "XXXL", UK: "44", EU: "54"},
	}

	womenBottoms = []domain.SizeRow{
		{US: "0", UK: "4", EU: "32"},
		{US: "2", UK: "6", EU: "34"},
		{US: "4", UK: "8", EU: "36"},
		{US: "6", UK: "10", EU: "38"},
		{US: "8", UK: "12", EU: "40"},
		{US: "10", UK: "14", EU: "42"},
		{US: "12", UK: "16", EU: "44"},
		{US: "14", UK: "18", EU: "46"},
		{US: "16", UK: "20", EU: "48"},
	}

	// Waist inches in US and UK.
	menBottoms = []domain.SizeRow{
		{US: "28", UK: "28", EU: "44"},
		{US: "30", UK: "30", EU: "46"},
		{US: "32", UK: "32", EU: "48"},
		{US: "34", UK: "34", EU: "50"},
		{US: "36", UK: "36", EU: "52"},
		{US: "38", UK: "38", EU: "54"},
		{US: "40", UK: "40", EU: "56"},
	}

	womenDresses = []domain.SizeRow{
		{US: "0", UK: "4", EU: "30"},
		{US: "2", UK: "6", EU: "32"},
		{US: "4", UK: "8", EU: "34"},
		{US: "6", UK: "10", EU: "36"},
		{US: "8", UK: "12", EU: "38"},
		{US: "10", UK: "14", EU: "40"},
		{US: "12", UK: "16", EU: "42"},
		{US: "14", UK: "18", EU: "44"},
		{US: "16", UK: "20", EU: "46"},
		{US: "18", UK: "22", EU: "48"},
	}

	// Women's tops only.
	letterSizes = []domain.LetterSize{
		{Letter: "XS", Numeric: []string{"0", "2"}},
		{Letter: "S", Numeric: []string{"4", "6"}},
		{Letter: "M", Numeric: []string{"8", "10"}},
		{Letter: "L", Numeric: []string{"12", "14"}},
		{Letter: "XL", Numeric: []string{"16"}},
	}
)

// Chart returns the size chart for a gender and garment class.
// Men have no dress chart, so (men, dresses) yields an empty chart.
// Pairs outside the enumerations also yield an empty chart.
func Chart(gender domain.Gender, class domain.GarmentClass) []domain.SizeRow {
	return slices.Clone(chart(gender, class))
}

func chart(gender domain.Gender, class domain.GarmentClass) []domain.SizeRow {
	switch gender {
	case domain.GenderWomen:
		switch class {
		case domain.GarmentShoes:
			return womenShoes
		case domain.GarmentTops:
			return womenTops
		case domain.GarmentBottoms:
			return womenBottoms
		case domain.GarmentDresses:
			return womenDresses
		}
	case domain.GenderMen:
		switch class {
		case domain.GarmentShoes:
			return menShoes
		case domain.GarmentTops:
			return menTops
		case domain.GarmentBottoms:
			return menBottoms
		case domain.GarmentDresses:
			return nil
		}
	}
	return nil
}

// Charts lists every (gender, garment class) pair, including the empty men's dresses chart.
func Charts() []domain.ChartKey {
	keys := make([]domain.ChartKey, 0, len(domain.Genders)*len(domain.GarmentClasses))
	for _, g := range domain.Genders {
		for _, c := range domain.GarmentClasses {
			keys = append(keys, domain.ChartKey{Gender: g, GarmentClass: c})
		}
	}
	return keys
}

// LetterSizes returns a copy of the women's tops letter crosswalk
func LetterSizes() []domain.LetterSize {
	out := make([]domain.LetterSize, len(letterSizes))
	for i, ls := range letterSizes {
		out[i] = domain.LetterSize{Letter: ls.Letter, Numeric: slices.Clone(ls.Numeric)}
	}
	return out
}
