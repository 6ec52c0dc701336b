package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "4111111111111111", NormalizeDigits("4111 1111 1111 1111"))
	assert.Equal(t, "4111111111111111", NormalizeDigits("4111-1111-1111-1111"))
	assert.Equal(t, "", NormalizeDigits("no digits here"))
}

func TestLuhnValid(t *testing.T) {
	assert.True(t, LuhnValid("4111111111111111"))
	assert.False(t, LuhnValid("4111111111111112"))

	// length gate
	assert.False(t, LuhnValid("411111111111"))         // 12 digits
	assert.False(t, LuhnValid("41111111111111111111")) // 20 digits

	// amex test number
	assert.True(t, LuhnValid("378282246310005"))
}

func TestCvvValid(t *testing.T) {
	assert.True(t, CvvValid("123", BrandVisa))
	assert.False(t, CvvValid("1234", BrandVisa))
	assert.True(t, CvvValid("1234", BrandAmex))
	assert.False(t, CvvValid("123", BrandAmex))
	assert.False(t, CvvValid("12", BrandMastercard))
}

func TestExpiryValidAt(t *testing.T) {
	jan2024 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	feb2024 := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	// valid through the end of its expiry month
	assert.True(t, ExpiryValidAt("01", "24", jan2024))
	assert.False(t, ExpiryValidAt("01", "24", feb2024))

	// two-digit years are 2000+year
	assert.True(t, ExpiryValidAt("12", "30", jan2024))
	assert.True(t, ExpiryValidAt("12", "2030", jan2024))
	assert.False(t, ExpiryValidAt("12", "20", jan2024))

	// month bounds
	assert.False(t, ExpiryValidAt("0", "30", jan2024))
	assert.False(t, ExpiryValidAt("13", "30", jan2024))

	// garbage input
	assert.False(t, ExpiryValidAt("ab", "30", jan2024))
	assert.False(t, ExpiryValidAt("01", "xy", jan2024))
}

func TestRoutingNumberValid(t *testing.T) {
	// valid ABA checksum example
	assert.True(t, RoutingNumberValid("011000015"))

	// any single-digit transposition fails
	assert.False(t, RoutingNumberValid("101000015"))
	assert.False(t, RoutingNumberValid("011000051"))

	assert.False(t, RoutingNumberValid("01100001"))
	assert.False(t, RoutingNumberValid("0110000155"))
	assert.False(t, RoutingNumberValid("01100001a"))
}

func TestAccountNumberValid(t *testing.T) {
	assert.False(t, AccountNumberValid("123"))
	assert.True(t, AccountNumberValid("1234"))
	assert.True(t, AccountNumberValid("12345678901234567"))
	assert.False(t, AccountNumberValid("123456789012345678"))
}
