package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment method kinds.
const (
	KindCreditCard  = "credit_card"
	KindDebitCard   = "debit_card"
	KindACH         = "ach"
	KindBankAccount = "bank_account"
)

// Bank account types.
const (
	AccountTypeChecking = "checking"
	AccountTypeSavings  = "savings"
)

// Expiry statuses used by the dashboard badge.
const (
	ExpiryOK       = "ok"
	ExpirySoon     = "expiring_soon"
	ExpiryExpired  = "expired"
	ExpiryNotACard = ""
)

// PaymentMethod holds only non-sensitive derived fields. The raw card or
// bank numbers live in the external vault, referenced by VaultSecretRef.
// A nil VaultSecretRef means tokenization was skipped because the vault
// was unavailable when the method was created.
type PaymentMethod struct {
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
	Kind           string             `bson:"kind" json:"kind" validate:"required"`
	Brand          string             `bson:"brand,omitempty" json:"brand,omitempty"`
	LastFour       string             `bson:"last_four" json:"lastFour"`
	ExpiryMonth    string             `bson:"expiry_month,omitempty" json:"expiryMonth,omitempty"`
	ExpiryYear     string             `bson:"expiry_year,omitempty" json:"expiryYear,omitempty"`
	HolderName     string             `bson:"holder_name,omitempty" json:"holderName,omitempty"`
	BankName       string             `bson:"bank_name,omitempty" json:"bankName,omitempty"`
	AccountType    string             `bson:"account_type,omitempty" json:"accountType,omitempty"`
	Nickname       string             `bson:"nickname,omitempty" json:"nickname,omitempty"`
	VaultSecretRef *string            `bson:"vault_secret_ref" json:"vaultSecretRef,omitempty"`
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	OwnerID        primitive.ObjectID `bson:"owner_id" json:"ownerId"`
	IsDefault      bool               `bson:"is_default" json:"isDefault"`
	IsActive       bool               `bson:"is_active" json:"isActive"`
}

// IsCard reports whether the method is a card kind.
func (m PaymentMethod) IsCard() bool {
	return m.Kind == KindCreditCard || m.Kind == KindDebitCard
}

// IsBank reports whether the method is a bank kind.
func (m PaymentMethod) IsBank() bool {
	return m.Kind == KindACH || m.Kind == KindBankAccount
}

// Summary builds the human display string, e.g. "Visa ending in 4242" or
// "Chase checking ending in 6789".
func (m PaymentMethod) Summary() string {
	if m.IsBank() {
		name := strings.TrimSpace(m.BankName)
		if name == "" {
			name = "Bank account"
		}
		if m.AccountType != "" {
			return fmt.Sprintf("%s %s ending in %s", name, m.AccountType, m.LastFour)
		}
		return fmt.Sprintf("%s ending in %s", name, m.LastFour)
	}

	brand := m.Brand
	if brand == "" {
		brand = "Card"
	}
	return fmt.Sprintf("%s ending in %s", brand, m.LastFour)
}

// IsExpired reports whether a card method is past its expiry. A card
// expiring in the current month is not expired until the month ends.
// Bank methods never expire.
func (m PaymentMethod) IsExpired(today time.Time) bool {
	if !m.IsCard() {
		return false
	}

	year, month, ok := m.expiry()
	if !ok {
		return false
	}

	if year < today.Year() {
		return true
	}
	return year == today.Year() && month < int(today.Month())
}

// ExpiryStatus classifies a card's expiry for display: expired, expiring
// within two months, or ok. Bank methods return an empty status.
func (m PaymentMethod) ExpiryStatus(today time.Time) string {
	if !m.IsCard() {
		return ExpiryNotACard
	}

	year, month, ok := m.expiry()
	if !ok {
		return ExpiryNotACard
	}

	if m.IsExpired(today) {
		return ExpiryExpired
	}

	monthsLeft := (year-today.Year())*12 + month - int(today.Month())
	if monthsLeft <= 2 {
		return ExpirySoon
	}
	return ExpiryOK
}

func (m PaymentMethod) expiry() (year, month int, ok bool) {
	month, err := strconv.Atoi(strings.TrimSpace(m.ExpiryMonth))
	if err != nil {
		return 0, 0, false
	}
	year, err = strconv.Atoi(strings.TrimSpace(m.ExpiryYear))
	if err != nil {
		return 0, 0, false
	}
	if year < 100 {
		year += 2000
	}
	return year, month, true
}

// AddPaymentMethodRequest carries the raw payment data submitted by a
// client. Card and bank fields are populated depending on Kind; the raw
// numbers never leave the service layer.
type AddPaymentMethodRequest struct {
	Kind         string `json:"kind" validate:"required"`
	Nickname     string `json:"nickname,omitempty"`
	SetAsDefault bool   `json:"setAsDefault"`

	// Card fields
	CardNumber     string `json:"cardNumber,omitempty"`
	ExpiryMonth    string `json:"expiryMonth,omitempty"`
	ExpiryYear     string `json:"expiryYear,omitempty"`
	CVV            string `json:"cvv,omitempty"`
	CardHolderName string `json:"cardHolderName,omitempty"`

	// Bank fields
	RoutingNumber     string `json:"routingNumber,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty"`
	AccountType       string `json:"accountType,omitempty"`
	BankName          string `json:"bankName,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
}

// UpdatePaymentMethodRequest carries the only fields mutable after
// creation. Nil means "leave unchanged".
type UpdatePaymentMethodRequest struct {
	Nickname  *string `json:"nickname,omitempty"`
	IsDefault *bool   `json:"isDefault,omitempty"`
}
