package controllers

import (
	"context"
	"net/http"
	"time"

	"coverly-api-io/api/internal/auth"
	"coverly-api-io/api/pkg/models"
	"coverly-api-io/api/pkg/services"
	"coverly-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestTimeout = 30 * time.Second

var validate = validator.New()

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

type PaymentMethodController struct {
	paymentService services.PaymentMethodService
}

// InitPaymentMethodController creates a payment method controller with an injected service
func InitPaymentMethodController(paymentService services.PaymentMethodService) *PaymentMethodController {
	return &PaymentMethodController{
		paymentService: paymentService,
	}
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case services.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized
	case services.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func callerAndMethodID(c *gin.Context) (owner, method primitive.ObjectID, err error) {
	owner, err = auth.ValidateUserID(c)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}

	methodID := c.Param("methodid")
	method, err = primitive.ObjectIDFromHex(methodID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, errors.New("bad payment method id")
	}

	return owner, method, nil
}

// Ping handles GET /ping
func Ping(c *gin.Context) {
	util.HandleSuccess(c, http.StatusOK, "pong", nil)
}

// GetPaymentMethods handles GET /users/:userid/payment-methods
func (pc *PaymentMethodController) GetPaymentMethods() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := withTimeout()
		defer cancel()

		userID, err := auth.ValidateUserID(c)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err)
			return
		}

		methods, err := pc.paymentService.List(ctx, userID)
		if err != nil {
			util.HandleError(c, statusFor(err), err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"methods": methods})
	}
}

// GetPaymentMethod handles GET /users/:userid/payment-methods/:methodid
func (pc *PaymentMethodController) GetPaymentMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := withTimeout()
		defer cancel()

		userID, methodID, err := callerAndMethodID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		method, err := pc.paymentService.Get(ctx, userID, methodID)
		if err != nil {
			util.HandleError(c, statusFor(err), err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"method": method})
	}
}

// AddPaymentMethod handles POST /users/:userid/payment-methods
func (pc *PaymentMethodController) AddPaymentMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := withTimeout()
		defer cancel()

		userID, err := auth.ValidateUserID(c)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err)
			return
		}

		var req models.AddPaymentMethodRequest
		if err := c.BindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		if err := validate.Struct(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		method, err := pc.paymentService.Add(ctx, userID, req)
		if err != nil {
			util.HandleError(c, statusFor(err), err)
			return
		}

		// A missing secret reference means the vault was unreachable and
		// tokenization was skipped; the method is still usable.
		if method.VaultSecretRef == nil {
			util.HandleSuccessMeta(c, http.StatusCreated, "payment method created", gin.H{"method": method}, gin.H{
				"warnings": []string{"sensitive data could not be tokenized; the method cannot be used for raw-value operations"},
			})
			return
		}

		util.HandleSuccess(c, http.StatusCreated, "payment method created", gin.H{"method": method})
	}
}

// UpdatePaymentMethod handles PATCH /users/:userid/payment-methods/:methodid
func (pc *PaymentMethodController) UpdatePaymentMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := withTimeout()
		defer cancel()

		userID, methodID, err := callerAndMethodID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		var req models.UpdatePaymentMethodRequest
		if err := c.BindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		method, err := pc.paymentService.UpdateMetadata(ctx, userID, methodID, req)
		if err != nil {
			util.HandleError(c, statusFor(err), err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "payment method updated", gin.H{"method": method})
	}
}

// DeletePaymentMethod handles DELETE /users/:userid/payment-methods/:methodid
func (pc *PaymentMethodController) DeletePaymentMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := withTimeout()
		defer cancel()

		userID, methodID, err := callerAndMethodID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		if err := pc.paymentService.SoftDelete(ctx, userID, methodID); err != nil {
			util.HandleError(c, statusFor(err), err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "payment method deleted", gin.H{"_id": methodID.Hex()})
	}
}

// SetDefaultPaymentMethod handles POST /users/:userid/payment-methods/:methodid/default
func (pc *PaymentMethodController) SetDefaultPaymentMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := withTimeout()
		defer cancel()

		userID, methodID, err := callerAndMethodID(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		method, err := pc.paymentService.SetDefault(ctx, userID, methodID)
		if err != nil {
			util.HandleError(c, statusFor(err), err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "default payment method changed", gin.H{"method": method})
	}
}
