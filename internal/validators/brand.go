package validators

import "strings"

// Card brand names as stored and displayed.
const (
	BrandVisa       = "Visa"
	BrandMastercard = "Mastercard"
	BrandAmex       = "American Express"
	BrandDiscover   = "Discover"
	BrandUnknown    = "Unknown"
)

type brandRule struct {
	prefixes []string
	brand    string
}

// IIN prefix rules, first match wins. Order matters: some ranges would
// otherwise overlap.
var brandRules = []brandRule{
	{prefixes: []string{"4"}, brand: BrandVisa},
	{prefixes: []string{"51", "52", "53", "54", "55", "22", "23", "24", "25", "26", "27"}, brand: BrandMastercard},
	{prefixes: []string{"34", "37"}, brand: BrandAmex},
	{prefixes: []string{"6011", "622", "64", "65"}, brand: BrandDiscover},
}

// DetectBrand derives the card brand from the leading digits of a
// normalized card number.
func DetectBrand(digits string) string {
	for _, rule := range brandRules {
		for _, prefix := range rule.prefixes {
			if strings.HasPrefix(digits, prefix) {
				return rule.brand
			}
		}
	}
	return BrandUnknown
}

// LastFour returns the last 4 characters of a digit-only string. Shorter
// inputs are returned whole; callers should have validated length first.
func LastFour(digits string) string {
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
