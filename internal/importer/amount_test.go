package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"-588,74", "-588.74"},
		{"-588.74", "-588.74"},
		{"10,00", "10"},
		{"10.00", "10"},
		{"1.234.567,89", "1234567.89"},
		{"1,234,567.89", "1234567.89"},
		{"1,234", "1234"},
		{"0,5", "0.5"},
		{"€ 12,50", "12.5"},
		{"$1,000.00", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "12..3"} {
		_, err := parseAmount(in)
		assert.Error(t, err, in)
	}
}
