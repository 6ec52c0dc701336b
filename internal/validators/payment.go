package validators

import (
	"strconv"
	"strings"
	"time"

	creditcard "github.com/durango/go-credit-card"
)

// NormalizeDigits strips every non-digit character from the input.
// Raw card, account and routing numbers go through this before any
// validation or derivation.
func NormalizeDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LuhnValid reports whether the digit string is a plausible card number:
// length between 13 and 19 and a valid mod-10 check digit.
func LuhnValid(digits string) bool {
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	card := creditcard.Card{Number: digits}
	return card.ValidateNumber()
}

// CvvValid checks the CVV length for the given card brand. American
// Express uses a 4-digit code, everything else uses 3.
func CvvValid(cvv, brand string) bool {
	cleaned := NormalizeDigits(cvv)
	if brand == BrandAmex {
		return len(cleaned) == 4
	}
	return len(cleaned) == 3
}

// ExpiryValid checks a card expiry against the current date.
func ExpiryValid(month, year string) bool {
	return ExpiryValidAt(month, year, time.Now())
}

// ExpiryValidAt checks a card expiry against the supplied date. A card
// expiring in the current month is still valid. Two-digit years are
// interpreted as 2000+year.
func ExpiryValidAt(month, year string, now time.Time) bool {
	expMonth, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return false
	}
	expYear, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return false
	}

	if expYear < 100 {
		expYear += 2000
	}

	if expMonth < 1 || expMonth > 12 {
		return false
	}
	if expYear < now.Year() {
		return false
	}
	if expYear == now.Year() && expMonth < int(now.Month()) {
		return false
	}

	return true
}

// ABA routing number checksum weights.
var routingWeights = [9]int{3, 7, 1, 3, 7, 1, 3, 7, 1}

// RoutingNumberValid checks an ABA routing number: exactly 9 digits with
// a valid weighted checksum.
func RoutingNumberValid(digits string) bool {
	if len(digits) != 9 {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		d := digits[i]
		if d < '0' || d > '9' {
			return false
		}
		sum += int(d-'0') * routingWeights[i]
	}

	return sum%10 == 0
}

// AccountNumberValid checks a US bank account number shape, between 4
// and 17 digits.
func AccountNumberValid(digits string) bool {
	return len(digits) >= 4 && len(digits) <= 17
}
