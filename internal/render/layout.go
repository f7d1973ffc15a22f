package render

import (
	"fmt"

	"github.com/jaberco/invoicing-api/pkg/printer"
)

// Layout selects one of the three fixed presentational profiles.
type Layout string

const (
	// LayoutFullPage is the tabular A4 layout used for screen and PDF.
	LayoutFullPage Layout = "a4"
	// LayoutNarrowThermal is the 58mm receipt layout (32 columns).
	LayoutNarrowThermal Layout = "58mm"
	// LayoutMediumThermal is the 80mm receipt layout (48 columns).
	LayoutMediumThermal Layout = "80mm"
)

// ParseLayout converts a layout name from the API into a Layout.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case LayoutFullPage, LayoutNarrowThermal, LayoutMediumThermal:
		return Layout(s), nil
	}
	return "", fmt.Errorf("unknown layout %q (use a4, 58mm or 80mm)", s)
}

func (l Layout) String() string {
	return string(l)
}

// Thermal reports whether the layout targets a receipt printer.
func (l Layout) Thermal() bool {
	return l == LayoutNarrowThermal || l == LayoutMediumThermal
}

// Columns returns the character width of the layout's print surface.
// The full-page layout is not column-constrained and reports the width
// used for its plain-text projection.
func (l Layout) Columns() int {
	switch l {
	case LayoutNarrowThermal:
		return printer.Width58mm
	case LayoutMediumThermal:
		return printer.Width80mm
	default:
		return 72
	}
}
