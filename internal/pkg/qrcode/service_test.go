// internal/pkg/qrcode/service_test.go
package qrcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesPNG(t *testing.T) {
	svc := NewService(256)

	png, err := svc.Generate("order:1;user:abc;token:xyz")
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestGenerateRejectsEmptyPayload(t *testing.T) {
	svc := NewService(256)

	_, err := svc.Generate("")
	assert.Error(t, err)
}

func TestGenerateDataURL(t *testing.T) {
	svc := NewService(0) // falls back to the default size

	url, err := svc.GenerateDataURL("order:1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}
