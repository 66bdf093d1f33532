// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/ticketing-backend/internal/config"
	"github.com/your-org/ticketing-backend/internal/domain/order"
	"github.com/your-org/ticketing-backend/internal/domain/user"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	Order         *order.Order
	Buyer         *user.Profile
	SiteName      string
	Total         string
	Lines         []InvoiceLine
}

// InvoiceLine is one rendered order line
type InvoiceLine struct {
	Name     string
	Qty      int
	Total    string
	PaidWith string
}

// GenerateInvoice generates a PDF receipt for an order
func (s *Service) GenerateInvoice(o *order.Order, buyer *user.Profile) (*bytes.Buffer, error) {
	lines := make([]InvoiceLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, InvoiceLine{
			Name:  item.Offer.Name,
			Qty:   item.Qty,
			Total: item.Price.StringFixed(2),
		})
	}

	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("FAC-%s-%05d", o.CreatedAt.Format("20060102"), o.ID),
		InvoiceDate:   time.Now().Format("02/01/2006"),
		Order:         o,
		Buyer:         buyer,
		SiteName:      s.config.App.Name,
		Total:         o.TotalPrice.StringFixed(2),
		Lines:         lines,
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 20px; }
  table { width: 100%; border-collapse: collapse; margin-top: 20px; }
  th, td { border-bottom: 1px solid #ddd; padding: 8px; text-align: left; }
  .total { font-weight: bold; }
</style>
</head>
<body>
  <h1>{{.SiteName}}</h1>
  <p>Facture {{.InvoiceNumber}} — {{.InvoiceDate}}</p>
  {{if .Buyer}}
  <p>{{.Buyer.FirstName}} {{.Buyer.LastName}}<br>
     {{.Buyer.StreetNumber}} {{.Buyer.Street}}<br>
     {{.Buyer.PostalCode}} {{.Buyer.City}}, {{.Buyer.Country}}</p>
  {{end}}
  <table>
    <tr><th>Offre</th><th>Quantité</th><th>Prix</th></tr>
    {{range .Lines}}
    <tr><td>{{.Name}}</td><td>{{.Qty}}</td><td>{{.Total}} €</td></tr>
    {{end}}
    <tr class="total"><td>Total</td><td></td><td>{{.Total}} €</td></tr>
  </table>
</body>
</html>`
