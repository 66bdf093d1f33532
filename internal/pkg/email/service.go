// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/your-org/ticketing-backend/internal/config"
)

// Service handles all email operations
type Service struct {
	config    *config.Config
	templates map[string]*template.Template
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	service := &Service{
		config:    cfg,
		templates: make(map[string]*template.Template),
	}

	service.templates["order_confirmation"] = template.Must(
		template.New("order_confirmation").Parse(orderConfirmationTemplate))

	return service
}

// SendEmail sends an email using the configured provider
func (s *Service) SendEmail(ctx context.Context, email *Email) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	switch s.config.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.Email.Provider)
	}
}

// SendOrderConfirmationEmail sends the order confirmation with the
// scannable ticket code attached
func (s *Service) SendOrderConfirmationEmail(ctx context.Context, data OrderConfirmationData, ticketCode *Attachment) error {
	data.EmailTemplateData = GetBaseTemplateData(
		s.config.Email.FromName,
		s.config.Email.BaseURL,
		data.UserName,
		data.UserEmail,
	)

	htmlContent, err := s.renderTemplate("order_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	email := &Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Confirmation de commande n°%d - %s", data.OrderID, s.config.Email.FromName),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
	}
	if ticketCode != nil {
		email.Attachments = append(email.Attachments, *ticketCode)
	}

	return s.SendEmail(ctx, email)
}

func (s *Service) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const orderConfirmationTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h1>{{.SiteName}}</h1>
  <p>Bonjour {{.UserName}},</p>
  <p>Merci pour votre commande n°{{.OrderID}} du {{.OrderDate}}.</p>
  <table cellpadding="6" cellspacing="0" border="0">
    <tr><th align="left">Offre</th><th align="right">Quantité</th><th align="right">Prix</th></tr>
    {{range .Items}}
    <tr><td>{{.Name}}</td><td align="right">{{.Quantity}}</td><td align="right">{{.LineTotal}} €</td></tr>
    {{end}}
    <tr><td><strong>Total</strong></td><td></td><td align="right"><strong>{{.OrderTotal}} €</strong></td></tr>
  </table>
  <p>Votre billet électronique est joint à cet e-mail. Présentez le code à l'entrée.</p>
  <p>&copy; {{.Year}} {{.SiteName}}</p>
</body>
</html>`
