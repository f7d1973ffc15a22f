package render

import (
	"bytes"
	"fmt"
	"html/template"
)

const fullPageHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.InvoiceNumber}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .invoice { max-width: 820px; margin: 0 auto; }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #1f2937;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .company h1 { margin: 0 0 8px; font-size: 28px; }
    .company p { margin: 2px 0; font-size: 13px; color: #6b7280; }
    .meta { text-align: right; font-size: 14px; }
    .meta .number { font-size: 18px; font-weight: 600; }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td { padding: 10px; border-bottom: 1px solid #e5e7eb; text-align: left; }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    td.amount, th.amount { text-align: right; }
    .empty {
      padding: 32px;
      text-align: center;
      color: #6b7280;
      background: #f9fafb;
      border-radius: 8px;
    }
    .totals { margin-top: 16px; margin-left: auto; width: 280px; font-size: 14px; }
    .totals div { display: flex; justify-content: space-between; padding: 4px 0; }
    .totals .grand {
      border-top: 2px solid #1f2937;
      font-size: 18px;
      font-weight: 700;
      padding-top: 8px;
    }
    .footer {
      margin-top: 48px;
      padding-top: 16px;
      border-top: 2px solid #e5e7eb;
      text-align: center;
      font-style: italic;
      color: #6b7280;
    }
    @page { size: A4; margin: 12mm; }
  </style>
</head>
<body>
  <div class="invoice">
    <div class="header">
      <div class="company">
        <h1>{{.CompanyName}}</h1>
        {{if .Address}}<p>{{.Address}}</p>{{end}}
        {{if .Phone}}<p>Tel: {{.Phone}}</p>{{end}}
        {{if .Website}}<p>Visit us: {{.Website}}</p>{{end}}
      </div>
      <div class="meta">
        <p><strong>Date:</strong> {{.Date}}</p>
        <p class="number">Invoice #: {{.InvoiceNumber}}</p>
      </div>
    </div>
    {{if .Empty}}
    <div class="empty">{{.EmptyMessage}}</div>
    {{else}}
    <table>
      <thead>
        <tr>
          <th>Description</th>
          <th class="amount">Qty</th>
          <th class="amount">Unit Price</th>
          <th class="amount">Total</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Name}}</td>
          <td class="amount">{{.Quantity}}</td>
          <td class="amount">${{.UnitPrice}}</td>
          <td class="amount">${{.Total}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    {{end}}
    <div class="totals">
      <div><span>Subtotal</span><span>${{.Subtotal}}</span></div>
      <div><span>Tax ({{.TaxRate}}%)</span><span>${{.Tax}}</span></div>
      <div class="grand"><span>Total</span><span>${{.Total}}</span></div>
    </div>
    <div class="footer">{{.Footer}}</div>
  </div>
</body>
</html>`

var fullPageTemplate = template.Must(template.New("invoice").Parse(fullPageHTMLTemplate))

// HTML renders the full-page layout as a printable HTML page. Thermal
// layouts have no HTML projection; they target ESC/POS printers.
func (d Document) HTML() (string, error) {
	if d.Layout != LayoutFullPage {
		return "", fmt.Errorf("layout %s has no HTML projection", d.Layout)
	}

	data := struct {
		Document
		EmptyMessage string
	}{Document: d, EmptyMessage: EmptyStateMessage}

	var buf bytes.Buffer
	if err := fullPageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render invoice html: %w", err)
	}
	return buf.String(), nil
}
