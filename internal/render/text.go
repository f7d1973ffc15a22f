package render

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Text renders the document as monospaced plain text in its layout.
// The three layouts are structurally different projections of the same
// data: a column grid for full-page, two-line items for 58mm and
// three-line items for 80mm.
func (d Document) Text() string {
	switch d.Layout {
	case LayoutNarrowThermal:
		return d.narrowText()
	case LayoutMediumThermal:
		return d.mediumText()
	default:
		return d.fullPageText()
	}
}

func (d Document) fullPageText() string {
	w := d.Layout.Columns()
	var b strings.Builder

	b.WriteString(d.CompanyName + "\n")
	if d.Address != "" {
		b.WriteString(d.Address + "\n")
	}
	if d.Phone != "" {
		b.WriteString("Tel: " + d.Phone + "\n")
	}
	if d.Website != "" {
		b.WriteString("Visit us: " + d.Website + "\n")
	}
	b.WriteString("\n")
	b.WriteString(keyValue(w, "Date:", d.Date))
	b.WriteString(keyValue(w, "Invoice #:", d.InvoiceNumber))
	b.WriteString("\n")

	if d.Empty {
		b.WriteString(EmptyStateMessage + "\n")
	} else {
		b.WriteString(fmt.Sprintf("%-39s%5s%13s%15s\n", "Description", "Qty", "Unit Price", "Total"))
		b.WriteString(strings.Repeat("-", w) + "\n")
		for _, it := range d.Items {
			b.WriteString(fmt.Sprintf("%-39s%5d%13s%15s\n", clip(it.Name, 38), it.Quantity, "$"+it.UnitPrice, "$"+it.Total))
		}
	}

	b.WriteString(strings.Repeat("-", w) + "\n")
	b.WriteString(keyValue(w, "Subtotal", "$"+d.Subtotal))
	b.WriteString(keyValue(w, "Tax ("+d.TaxRate+"%)", "$"+d.Tax))
	b.WriteString(keyValue(w, "Total", "$"+d.Total))
	b.WriteString("\n" + center(w, d.Footer) + "\n")

	return b.String()
}

func (d Document) narrowText() string {
	w := d.Layout.Columns()
	var b strings.Builder

	b.WriteString(center(w, d.CompanyName) + "\n")
	if d.Address != "" {
		b.WriteString(center(w, d.Address) + "\n")
	}
	if d.Phone != "" {
		b.WriteString(center(w, "Tel: "+d.Phone) + "\n")
	}
	if d.Website != "" {
		b.WriteString(center(w, d.Website) + "\n")
	}
	b.WriteString(dashes(w))
	b.WriteString(keyValue(w, "Date:", d.Date))
	b.WriteString(keyValue(w, "Invoice:", d.InvoiceNumber))
	b.WriteString(dashes(w))

	if d.Empty {
		b.WriteString(center(w, EmptyStateMessage) + "\n")
	} else {
		for _, it := range d.Items {
			b.WriteString(it.Name + "\n")
			b.WriteString(keyValue(w, fmt.Sprintf("%d x $%s", it.Quantity, it.UnitPrice), "$"+it.Total))
		}
	}

	b.WriteString(dashes(w))
	b.WriteString(keyValue(w, "Subtotal:", "$"+d.Subtotal))
	b.WriteString(keyValue(w, "Tax ("+d.TaxRate+"%):", "$"+d.Tax))
	b.WriteString(keyValue(w, "TOTAL:", "$"+d.Total))
	b.WriteString(dashes(w))
	b.WriteString(center(w, d.Footer) + "\n")

	return b.String()
}

func (d Document) mediumText() string {
	w := d.Layout.Columns()
	var b strings.Builder

	b.WriteString(center(w, d.CompanyName) + "\n")
	if d.Address != "" {
		b.WriteString(center(w, d.Address) + "\n")
	}
	if d.Phone != "" {
		b.WriteString(center(w, "Tel: "+d.Phone) + "\n")
	}
	if d.Website != "" {
		b.WriteString(center(w, d.Website) + "\n")
	}
	b.WriteString(dashes(w))
	b.WriteString(keyValue(w, "Date:", d.Date))
	b.WriteString(keyValue(w, "Invoice #:", d.InvoiceNumber))
	b.WriteString(dashes(w))
	b.WriteString(center(w, "ITEMS") + "\n")

	if d.Empty {
		b.WriteString(center(w, EmptyStateMessage) + "\n")
	} else {
		for _, it := range d.Items {
			b.WriteString(it.Name + "\n")
			b.WriteString(keyValue(w, fmt.Sprintf("Qty: %d", it.Quantity), "Unit: $"+it.UnitPrice))
			b.WriteString(keyValue(w, "Total:", "$"+it.Total))
		}
	}

	b.WriteString(dashes(w))
	b.WriteString(keyValue(w, "Subtotal:", "$"+d.Subtotal))
	b.WriteString(keyValue(w, "Tax ("+d.TaxRate+"%):", "$"+d.Tax))
	b.WriteString(keyValue(w, "TOTAL:", "$"+d.Total))
	b.WriteString(dashes(w))
	b.WriteString(center(w, d.Footer) + "\n")

	return b.String()
}

// Widths are measured in runes so non-ASCII names keep the columns
// aligned.

func keyValue(width int, key, value string) string {
	spaces := width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	return key + strings.Repeat(" ", spaces) + value + "\n"
}

func center(width int, s string) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}

func dashes(width int) string {
	return strings.Repeat("-", width) + "\n"
}

func clip(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
