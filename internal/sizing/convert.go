package sizing

import (
	"slices"
	"strings"

	"github.com/closetcompare/backend/internal/domain"
)

// FindMatchingSizes returns the chart row whose from-column equals size, ignoring case.
// The bool is false when the size is not in the chart.
func FindMatchingSizes(size string, from domain.SizeSystem, gender domain.Gender, class domain.GarmentClass) (domain.SizeRow, bool) {
	for _, row := range chart(gender, class) {
		if strings.EqualFold(row.Value(from), size) {
			return row, true
		}
	}
	return domain.SizeRow{}, false
}

// ConvertSize converts size from one regional system to another
func ConvertSize(size string, from, to domain.SizeSystem, gender domain.Gender, class domain.GarmentClass) (string, bool) {
	row, ok := FindMatchingSizes(size, from, gender, class)
	if !ok {
		return "", false
	}
	v := row.Value(to)
	return v, v != ""
}

// LetterSize finds the women's tops letter whose numeric bucket contains numeric
func LetterSize(numeric string) (string, bool) {
	for _, ls := range letterSizes {
		if slices.Contains(ls.Numeric, numeric) {
			return ls.Letter, true
		}
	}
	return "", false
}
