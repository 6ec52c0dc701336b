package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	card := PaymentMethod{Kind: KindCreditCard, Brand: "Visa", LastFour: "4242"}
	assert.Equal(t, "Visa ending in 4242", card.Summary())

	bank := PaymentMethod{Kind: KindBankAccount, BankName: "Chase", AccountType: AccountTypeChecking, LastFour: "6789"}
	assert.Equal(t, "Chase checking ending in 6789", bank.Summary())

	noName := PaymentMethod{Kind: KindACH, AccountType: AccountTypeSavings, LastFour: "0001"}
	assert.Equal(t, "Bank account savings ending in 0001", noName.Summary())

	unknownBrand := PaymentMethod{Kind: KindDebitCard, LastFour: "9999"}
	assert.Equal(t, "Card ending in 9999", unknownBrand.Summary())
}

func TestIsExpired(t *testing.T) {
	jan2024 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	feb2024 := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	card := PaymentMethod{Kind: KindCreditCard, ExpiryMonth: "01", ExpiryYear: "24"}

	// expiring this month is not yet expired
	assert.False(t, card.IsExpired(jan2024))
	assert.True(t, card.IsExpired(feb2024))

	fourDigit := PaymentMethod{Kind: KindCreditCard, ExpiryMonth: "01", ExpiryYear: "2024"}
	assert.True(t, fourDigit.IsExpired(feb2024))

	// bank methods never expire
	bank := PaymentMethod{Kind: KindBankAccount}
	assert.False(t, bank.IsExpired(feb2024))
}

func TestExpiryStatus(t *testing.T) {
	jan2024 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	expired := PaymentMethod{Kind: KindCreditCard, ExpiryMonth: "12", ExpiryYear: "23"}
	assert.Equal(t, ExpiryExpired, expired.ExpiryStatus(jan2024))

	soon := PaymentMethod{Kind: KindCreditCard, ExpiryMonth: "03", ExpiryYear: "24"}
	assert.Equal(t, ExpirySoon, soon.ExpiryStatus(jan2024))

	ok := PaymentMethod{Kind: KindCreditCard, ExpiryMonth: "12", ExpiryYear: "30"}
	assert.Equal(t, ExpiryOK, ok.ExpiryStatus(jan2024))

	bank := PaymentMethod{Kind: KindACH}
	assert.Equal(t, ExpiryNotACard, bank.ExpiryStatus(jan2024))
}
