package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coverly-api-io/api/internal/validators"
	"coverly-api-io/api/pkg/models"
	"coverly-api-io/api/pkg/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxPaymentMethods caps the active methods per owner.
const MaxPaymentMethods = 10

// CacheNotifier is called after every mutating operation so downstream
// caches can invalidate. Failures are the notifier's problem, never the
// operation's.
type CacheNotifier func(ctx context.Context, ownerID string)

// PaymentMethodService exposes the payment method vault operations. All
// operations are scoped to the authenticated owner.
type PaymentMethodService interface {
	List(ctx context.Context, ownerID primitive.ObjectID) ([]models.PaymentMethod, error)
	Get(ctx context.Context, ownerID, methodID primitive.ObjectID) (*models.PaymentMethod, error)
	Add(ctx context.Context, ownerID primitive.ObjectID, req models.AddPaymentMethodRequest) (*models.PaymentMethod, error)
	UpdateMetadata(ctx context.Context, ownerID, methodID primitive.ObjectID, req models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error)
	SoftDelete(ctx context.Context, ownerID, methodID primitive.ObjectID) error
	SetDefault(ctx context.Context, ownerID, methodID primitive.ObjectID) (*models.PaymentMethod, error)
}

type paymentMethodService struct {
	repo   MethodRepository
	vault  VaultClient
	notify CacheNotifier
	now    func() time.Time
}

// NewPaymentMethodService wires the service with its store, vault client
// and cache notifier. notify may be nil.
func NewPaymentMethodService(repo MethodRepository, vault VaultClient, notify CacheNotifier) PaymentMethodService {
	if notify == nil {
		notify = func(context.Context, string) {}
	}
	return &paymentMethodService{
		repo:   repo,
		vault:  vault,
		notify: notify,
		now:    time.Now,
	}
}

func (s *paymentMethodService) List(ctx context.Context, ownerID primitive.ObjectID) ([]models.PaymentMethod, error) {
	methods, err := s.repo.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if methods == nil {
		methods = []models.PaymentMethod{}
	}
	return methods, nil
}

func (s *paymentMethodService) Get(ctx context.Context, ownerID, methodID primitive.ObjectID) (*models.PaymentMethod, error) {
	return s.repo.FindActiveByID(ctx, ownerID, methodID)
}

func (s *paymentMethodService) Add(ctx context.Context, ownerID primitive.ObjectID, req models.AddPaymentMethodRequest) (*models.PaymentMethod, error) {
	now := s.now()

	method := &models.PaymentMethod{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Kind:      req.Kind,
		Nickname:  req.Nickname,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var secretValue, secretName, secretDescription string

	switch req.Kind {
	case models.KindCreditCard, models.KindDebitCard:
		if req.CardNumber == "" || req.ExpiryMonth == "" || req.ExpiryYear == "" || req.CVV == "" {
			return nil, NewValidationError("kind", "card data incomplete")
		}

		number := validators.NormalizeDigits(req.CardNumber)
		brand := validators.DetectBrand(number)

		if !validators.LuhnValid(number) {
			return nil, NewValidationError("cardNumber", "card number failed checksum validation")
		}
		if !validators.CvvValid(req.CVV, brand) {
			return nil, NewValidationError("cvv", "invalid cvv length for card brand")
		}
		if !validators.ExpiryValidAt(req.ExpiryMonth, req.ExpiryYear, now) {
			return nil, NewValidationError("expiry", "card expiry is invalid or in the past")
		}

		method.Brand = brand
		method.LastFour = validators.LastFour(number)
		method.ExpiryMonth = req.ExpiryMonth
		method.ExpiryYear = req.ExpiryYear
		method.HolderName = req.CardHolderName

		payload, err := json.Marshal(VaultCardData{CardNumber: number, CVV: validators.NormalizeDigits(req.CVV)})
		if err != nil {
			return nil, &StorageError{Err: err}
		}
		secretValue = string(payload)
		secretName = fmt.Sprintf("card_%s_%d", ownerID.Hex(), now.UnixNano())
		secretDescription = "Card ending in " + method.LastFour

	case models.KindACH, models.KindBankAccount:
		if req.AccountNumber == "" || req.RoutingNumber == "" {
			return nil, NewValidationError("kind", "bank data incomplete")
		}

		account := validators.NormalizeDigits(req.AccountNumber)
		routing := validators.NormalizeDigits(req.RoutingNumber)

		if !validators.RoutingNumberValid(routing) {
			return nil, NewValidationError("routingNumber", "routing number failed ABA checksum validation")
		}
		if !validators.AccountNumberValid(account) {
			return nil, NewValidationError("accountNumber", "account number must be 4 to 17 digits")
		}

		accountType := req.AccountType
		if accountType == "" {
			accountType = models.AccountTypeChecking
		}
		if accountType != models.AccountTypeChecking && accountType != models.AccountTypeSavings {
			return nil, NewValidationError("accountType", "account type must be checking or savings")
		}

		method.LastFour = validators.LastFour(account)
		method.AccountType = accountType
		method.BankName = req.BankName
		method.HolderName = req.AccountHolderName

		payload, err := json.Marshal(VaultBankData{AccountNumber: account, RoutingNumber: routing})
		if err != nil {
			return nil, &StorageError{Err: err}
		}
		secretValue = string(payload)
		secretName = fmt.Sprintf("bank_%s_%d", ownerID.Hex(), now.UnixNano())
		secretDescription = "Bank account ending in " + method.LastFour

	case "":
		return nil, NewValidationError("kind", "payment method kind is required")
	default:
		return nil, NewValidationError("kind", "unrecognized payment method kind")
	}

	count, err := s.repo.CountActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count >= MaxPaymentMethods {
		return nil, NewValidationError("", "max allowed payment methods reached. please delete another method to accommodate a new one")
	}

	// Tokenize the sensitive payload. Vault unavailability never blocks
	// creation: the method is persisted without a secret reference and
	// can't later be read back for raw-value operations.
	secretRef, err := s.vault.CreateSecret(ctx, secretValue, secretName, secretDescription)
	if err != nil {
		util.LogWarning(fmt.Sprintf("vault tokenization skipped for owner %s: %v", ownerID.Hex(), err))
	} else {
		method.VaultSecretRef = &secretRef
	}

	if err := s.repo.Insert(ctx, method); err != nil {
		return nil, err
	}

	// The owner's first active method always becomes the default, even
	// without the explicit flag. Consumer flows assume a default exists
	// once any method does.
	if req.SetAsDefault || count == 0 {
		if err := s.repo.PromoteDefault(ctx, ownerID, method.ID); err != nil {
			return nil, err
		}
		method.IsDefault = true
	}

	s.notify(ctx, ownerID.Hex())

	return method, nil
}

func (s *paymentMethodService) UpdateMetadata(ctx context.Context, ownerID, methodID primitive.ObjectID, req models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error) {
	if _, err := s.repo.FindActiveByID(ctx, ownerID, methodID); err != nil {
		return nil, err
	}

	if req.Nickname != nil {
		if err := s.repo.UpdateNickname(ctx, ownerID, methodID, *req.Nickname); err != nil {
			return nil, err
		}
	}

	if req.IsDefault != nil {
		if *req.IsDefault {
			if err := s.repo.PromoteDefault(ctx, ownerID, methodID); err != nil {
				return nil, err
			}
		} else {
			// Explicitly clearing the flag never auto-assigns a new
			// default elsewhere.
			if err := s.repo.ClearDefault(ctx, ownerID, methodID); err != nil {
				return nil, err
			}
		}
	}

	s.notify(ctx, ownerID.Hex())

	return s.repo.FindActiveByID(ctx, ownerID, methodID)
}

func (s *paymentMethodService) SoftDelete(ctx context.Context, ownerID, methodID primitive.ObjectID) error {
	method, err := s.repo.FindActiveByID(ctx, ownerID, methodID)
	if err != nil {
		return err
	}

	if err := s.repo.Deactivate(ctx, ownerID, methodID); err != nil {
		return err
	}

	// Best-effort secret purge. An orphaned secret beats a "deleted"
	// method that is still usable, so a vault failure here is only a
	// logged warning and never rolls back the deactivation.
	if method.VaultSecretRef != nil {
		if err := s.vault.DeleteSecret(ctx, *method.VaultSecretRef); err != nil {
			util.LogWarning(fmt.Sprintf("failed to delete vault secret for method %s: %v", methodID.Hex(), err))
		}
	}

	s.notify(ctx, ownerID.Hex())

	return nil
}

func (s *paymentMethodService) SetDefault(ctx context.Context, ownerID, methodID primitive.ObjectID) (*models.PaymentMethod, error) {
	method, err := s.repo.FindActiveByID(ctx, ownerID, methodID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.PromoteDefault(ctx, ownerID, methodID); err != nil {
		return nil, err
	}
	method.IsDefault = true

	s.notify(ctx, ownerID.Hex())

	return method, nil
}
