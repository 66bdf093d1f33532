// internal/pkg/email/types.go
package email

import (
	"time"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeOrderConfirmation EmailType = "order_confirmation"
	EmailTypePaymentSuccess    EmailType = "payment_success"
)

// Attachment represents a file attached to an email
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// Email represents an email message
type Email struct {
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"html_content"`
	Type        EmailType    `json:"type"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// EmailTemplateData contains common data for all email templates
type EmailTemplateData struct {
	SiteName  string `json:"site_name"`
	SiteURL   string `json:"site_url"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Year      int    `json:"year"`
}

// OrderConfirmationData contains data for the order confirmation email
type OrderConfirmationData struct {
	EmailTemplateData
	OrderID    uint        `json:"order_id"`
	OrderDate  string      `json:"order_date"`
	OrderTotal string      `json:"order_total"`
	Items      []OrderItem `json:"items"`
	QRCodeCID  string      `json:"qr_code_cid,omitempty"`
}

// OrderItem represents one line in the confirmation email
type OrderItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// GetBaseTemplateData returns common template data
func GetBaseTemplateData(siteName, siteURL, userName, userEmail string) EmailTemplateData {
	return EmailTemplateData{
		SiteName:  siteName,
		SiteURL:   siteURL,
		UserName:  userName,
		UserEmail: userEmail,
		Year:      time.Now().Year(),
	}
}
