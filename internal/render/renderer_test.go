package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleInput() Input {
	return Input{
		Company: Company{
			Name:    "Acme Corp",
			Phone:   "(416) 555-0100",
			Address: "100 Main St",
			Website: "acme.example",
			TaxRate: dec("13"),
		},
		Items: []Item{
			{Name: "Widget", Quantity: 2, UnitPrice: dec("9.99")},
			{Name: "Gadget", Quantity: 1, UnitPrice: dec("25.00")},
		},
		InvoiceNumber: "INV-000042",
		Date:          "2024-03-15",
	}
}

func TestRenderTotalsAgreeAcrossLayouts(t *testing.T) {
	in := sampleInput()

	a4 := Render(in, LayoutFullPage)
	narrow := Render(in, LayoutNarrowThermal)
	medium := Render(in, LayoutMediumThermal)

	for _, doc := range []Document{a4, narrow, medium} {
		assert.Equal(t, "44.98", doc.Subtotal)
		assert.Equal(t, "5.85", doc.Tax)
		assert.Equal(t, "50.83", doc.Total)
		assert.Equal(t, "13", doc.TaxRate)
	}

	assert.Equal(t, a4.Items[0].Total, narrow.Items[0].Total)
	assert.Equal(t, a4.Items[0].Total, medium.Items[0].Total)
}

func TestRenderItems(t *testing.T) {
	doc := Render(sampleInput(), LayoutFullPage)

	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Widget", doc.Items[0].Name)
	assert.Equal(t, 2, doc.Items[0].Quantity)
	assert.Equal(t, "9.99", doc.Items[0].UnitPrice)
	assert.Equal(t, "19.98", doc.Items[0].Total)
	assert.False(t, doc.Empty)
	assert.Equal(t, DefaultFooter, doc.Footer)
}

func TestRenderEmptyState(t *testing.T) {
	in := sampleInput()
	in.Items = nil

	for _, layout := range []Layout{LayoutFullPage, LayoutNarrowThermal, LayoutMediumThermal} {
		doc := Render(in, layout)
		assert.True(t, doc.Empty)
		assert.Empty(t, doc.Items)
		assert.Equal(t, "0.00", doc.Subtotal)
		assert.Equal(t, "0.00", doc.Tax)
		assert.Equal(t, "0.00", doc.Total)
		assert.Contains(t, doc.Text(), EmptyStateMessage)
	}
}

func TestRenderRemovable(t *testing.T) {
	t.Run("full-page interactive items carry the remove control", func(t *testing.T) {
		doc := Render(sampleInput(), LayoutFullPage)
		assert.True(t, doc.Items[0].Removable)
	})

	t.Run("print mode suppresses the remove control", func(t *testing.T) {
		in := sampleInput()
		in.PrintMode = true
		doc := Render(in, LayoutFullPage)
		assert.False(t, doc.Items[0].Removable)
	})

	t.Run("thermal layouts never carry the remove control", func(t *testing.T) {
		for _, layout := range []Layout{LayoutNarrowThermal, LayoutMediumThermal} {
			doc := Render(sampleInput(), layout)
			assert.False(t, doc.Items[0].Removable)
		}
	})
}

func TestRenderDeterminism(t *testing.T) {
	in := sampleInput()

	a := Render(in, LayoutMediumThermal)
	b := Render(in, LayoutMediumThermal)

	assert.Equal(t, a, b)
	assert.Equal(t, a.Text(), b.Text())
}

func TestTextLayouts(t *testing.T) {
	in := sampleInput()

	t.Run("full-page uses the column grid", func(t *testing.T) {
		text := Render(in, LayoutFullPage).Text()
		assert.Contains(t, text, "Description")
		assert.Contains(t, text, "Acme Corp")
		assert.Contains(t, text, "$44.98")
		assert.Contains(t, text, "$50.83")
		assert.Contains(t, text, DefaultFooter)
	})

	t.Run("narrow keeps lines within 32 columns", func(t *testing.T) {
		text := Render(in, LayoutNarrowThermal).Text()
		assert.Contains(t, text, "2 x $9.99")
		for _, line := range strings.Split(text, "\n") {
			assert.LessOrEqual(t, len(line), 32, line)
		}
	})

	t.Run("medium uses the three-line item form", func(t *testing.T) {
		text := Render(in, LayoutMediumThermal).Text()
		assert.Contains(t, text, "ITEMS")
		assert.Contains(t, text, "Qty: 2")
		assert.Contains(t, text, "Unit: $9.99")
		for _, line := range strings.Split(text, "\n") {
			assert.LessOrEqual(t, len(line), 48, line)
		}
	})
}

func TestHTML(t *testing.T) {
	t.Run("full-page renders", func(t *testing.T) {
		html, err := Render(sampleInput(), LayoutFullPage).HTML()
		require.NoError(t, err)
		assert.Contains(t, html, "Acme Corp")
		assert.Contains(t, html, "INV-000042")
		assert.Contains(t, html, "50.83")
	})

	t.Run("thermal layouts have no HTML form", func(t *testing.T) {
		_, err := Render(sampleInput(), LayoutNarrowThermal).HTML()
		assert.Error(t, err)
	})

	t.Run("item names are escaped", func(t *testing.T) {
		in := sampleInput()
		in.Items[0].Name = "<script>alert(1)</script>"
		html, err := Render(in, LayoutFullPage).HTML()
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>alert(1)")
	})
}

func TestParseLayout(t *testing.T) {
	for _, s := range []string{"a4", "58mm", "80mm"} {
		l, err := ParseLayout(s)
		require.NoError(t, err)
		assert.Equal(t, s, l.String())
	}

	_, err := ParseLayout("letter")
	assert.Error(t, err)
}

func TestLayoutColumns(t *testing.T) {
	assert.Equal(t, 72, LayoutFullPage.Columns())
	assert.Equal(t, 32, LayoutNarrowThermal.Columns())
	assert.Equal(t, 48, LayoutMediumThermal.Columns())
	assert.False(t, LayoutFullPage.Thermal())
	assert.True(t, LayoutNarrowThermal.Thermal())
	assert.True(t, LayoutMediumThermal.Thermal())
}

func TestTextNonASCII(t *testing.T) {
	t.Run("clipping a long name never splits a rune", func(t *testing.T) {
		in := sampleInput()
		in.Items[0].Name = strings.Repeat("é", 60)

		text := Render(in, LayoutFullPage).Text()
		assert.True(t, utf8.ValidString(text))
		assert.Contains(t, text, "…")
	})

	t.Run("thermal columns align on rune width", func(t *testing.T) {
		in := sampleInput()
		in.Company.Name = "Café Noël"
		in.Items[0].Name = "Crème brûlée"

		text := Render(in, LayoutNarrowThermal).Text()
		assert.True(t, utf8.ValidString(text))
		for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
			assert.LessOrEqual(t, utf8.RuneCountInString(line), 32, "line %q", line)
		}
	})
}
