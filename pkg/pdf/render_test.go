package pdf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		currency string
		amount   int64
		want     string
	}{
		{"INR", 32500, "INR 32,500"},
		{"INR", 600, "INR 600"},
		{"INR", 1234567, "INR 1,234,567"},
		{"", 12000, "12,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.currency, tt.amount))
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer

	err := Render(&buf, Summary{
		Title: "Trip Summary",
		Details: []Line{
			{Label: "From", Value: "Delhi (DEL)"},
			{Label: "To", Value: "São Paulo (GRU)"},
		},
		ItemsHeading: "Cost Breakdown:",
		Items: []Line{
			{Label: "Transportation", Value: FormatAmount("INR", 12000)},
		},
		Total: Line{Label: "Total", Value: FormatAmount("INR", 12000)},
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "Trip Summary")
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, Summary{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestRender_WriteError(t *testing.T) {
	err := Render(failingWriter{}, Summary{Title: "x"})

	assert.ErrorContains(t, err, "pdf: render failed")
}
