package printing

import (
	"bytes"
	"html/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReceiptLine is one product row on a receipt
type ReceiptLine struct {
	Name      string
	Quantity  int
	UnitPrice int64
	Total     int64
}

// ReceiptData holds everything printed on a sale receipt
type ReceiptData struct {
	StoreName     string
	StoreAddress  string
	SaleID        string
	CreatedAt     time.Time
	Cashier       string
	Customer      string
	PaymentMethod string
	Status        string
	Lines         []ReceiptLine
	Total         int64
	PaidAmount    int64
	Cash          *int64
	Change        *int64
	DueDate       *time.Time
}

// Outstanding is what is still owed on a credit sale
func (d ReceiptData) Outstanding() int64 {
	if d.PaidAmount >= d.Total {
		return 0
	}
	return d.Total - d.PaidAmount
}

// ReceiptRenderer renders receipts from an embedded html/template
type ReceiptRenderer struct {
	tmpl    *template.Template
	printer *message.Printer
}

// NewReceiptRenderer parses the receipt template. Amounts are formatted with
// Indonesian digit grouping.
func NewReceiptRenderer() (*ReceiptRenderer, error) {
	r := &ReceiptRenderer{printer: message.NewPrinter(language.Indonesian)}
	tmpl, err := template.New("receipt").Funcs(template.FuncMap{
		"rupiah": r.FormatRupiah,
		"datetime": func(t time.Time) string {
			return t.Format("02/01/2006 15:04")
		},
		"date": func(t time.Time) string {
			return t.Format("02/01/2006")
		},
		"deref": func(v *int64) int64 {
			if v == nil {
				return 0
			}
			return *v
		},
	}).Parse(receiptTemplate)
	if err != nil {
		return nil, NewRenderError(ErrCodeTemplate, "failed to parse receipt template", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// FormatRupiah formats an amount as "Rp 12.500"
func (r *ReceiptRenderer) FormatRupiah(amount int64) string {
	if amount < 0 {
		return "-Rp " + r.printer.Sprintf("%d", -amount)
	}
	return "Rp " + r.printer.Sprintf("%d", amount)
}

// RenderHTML executes the template into a complete HTML document
func (r *ReceiptRenderer) RenderHTML(data ReceiptData) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeTemplate, "failed to render receipt", err)
	}
	return buf.String(), nil
}

const receiptTemplate = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="UTF-8">
<title>Struk {{.SaleID}}</title>
<style>
@page { size: 80mm auto; margin: 0; }
body { font-family: "DejaVu Sans Mono", monospace; font-size: 11px; width: 72mm; margin: 0 auto; }
h1 { font-size: 14px; text-align: center; margin: 0; }
.center { text-align: center; }
.right { text-align: right; }
table { width: 100%; border-collapse: collapse; }
td { vertical-align: top; padding: 1px 0; }
hr { border: 0; border-top: 1px dashed #000; }
</style>
</head>
<body>
<h1>{{.StoreName}}</h1>
{{if .StoreAddress}}<div class="center">{{.StoreAddress}}</div>{{end}}
<hr>
<table>
<tr><td>No</td><td class="right">{{.SaleID}}</td></tr>
<tr><td>Tanggal</td><td class="right">{{datetime .CreatedAt}}</td></tr>
<tr><td>Kasir</td><td class="right">{{.Cashier}}</td></tr>
{{if .Customer}}<tr><td>Pelanggan</td><td class="right">{{.Customer}}</td></tr>{{end}}
</table>
<hr>
<table>
{{range .Lines}}<tr><td colspan="2">{{.Name}}</td></tr>
<tr><td>{{.Quantity}} x {{rupiah .UnitPrice}}</td><td class="right">{{rupiah .Total}}</td></tr>
{{end}}</table>
<hr>
<table>
<tr><td><b>Total</b></td><td class="right"><b>{{rupiah .Total}}</b></td></tr>
{{if eq .PaymentMethod "CASH"}}{{if .Cash}}<tr><td>Tunai</td><td class="right">{{rupiah (deref .Cash)}}</td></tr>
<tr><td>Kembali</td><td class="right">{{rupiah (deref .Change)}}</td></tr>{{end}}
{{else}}<tr><td>Kredit dibayar</td><td class="right">{{rupiah .PaidAmount}}</td></tr>
<tr><td>Sisa</td><td class="right">{{rupiah .Outstanding}}</td></tr>
{{if .DueDate}}<tr><td>Jatuh tempo</td><td class="right">{{date .DueDate}}</td></tr>{{end}}
{{end}}</table>
<hr>
<div class="center">Terima kasih</div>
</body>
</html>
`
