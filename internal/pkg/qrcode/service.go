// internal/pkg/qrcode/service.go
package qrcode

import (
	"encoding/base64"
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// Service renders scannable codes from arbitrary string payloads
type Service struct {
	size int
}

// NewService creates a new QR code service. size is the output image
// edge in pixels.
func NewService(size int) *Service {
	if size <= 0 {
		size = 256
	}
	return &Service{size: size}
}

// Generate renders the payload as a PNG image
func (s *Service) Generate(data string) ([]byte, error) {
	png, err := qr.Encode(data, qr.Medium, s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// GenerateDataURL renders the payload as an inline image data URL
func (s *Service) GenerateDataURL(data string) (string, error) {
	png, err := s.Generate(data)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
