package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBrand(t *testing.T) {
	tests := []struct {
		number string
		brand  string
	}{
		{"4111111111111111", BrandVisa},
		{"4000000000000002", BrandVisa},
		{"5555555555554444", BrandMastercard},
		{"2221000000000009", BrandMastercard},
		{"2720990000000000", BrandMastercard},
		{"378282246310005", BrandAmex},
		{"341111111111111", BrandAmex},
		{"6011111111111117", BrandDiscover},
		{"6221260000000000", BrandDiscover},
		{"6451111111111117", BrandDiscover},
		{"3530111333300000", BrandUnknown}, // JCB, not in the table
		{"", BrandUnknown},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.brand, DetectBrand(tc.number), "number %q", tc.number)
	}
}

func TestDetectBrandNormalized(t *testing.T) {
	assert.Equal(t, BrandVisa, DetectBrand(NormalizeDigits("4111 1111 1111 1111")))
}

func TestLastFour(t *testing.T) {
	assert.Equal(t, "1111", LastFour("4111111111111111"))
	assert.Equal(t, "6789", LastFour("123456789"))

	// shorter inputs come back whole
	assert.Equal(t, "123", LastFour("123"))
	assert.Equal(t, "", LastFour(""))
}
