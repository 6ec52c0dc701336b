package container

import (
	"context"

	"coverly-api-io/api/internal"
	"coverly-api-io/api/pkg/controllers"
	"coverly-api-io/api/pkg/services"
	"coverly-api-io/api/pkg/util"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type ServiceContainer struct {
	PaymentMethodService services.PaymentMethodService

	PaymentMethodController *controllers.PaymentMethodController

	Redis *redis.Client
}

// NewServiceContainer wires repositories, external clients and services.
// Everything downstream receives its dependencies through constructors.
func NewServiceContainer(db *mongo.Client, rdb *redis.Client) *ServiceContainer {
	collection := util.GetCollection(db, "UserPaymentMethods")
	repo := services.NewMethodRepository(db, collection)

	vault := services.NewVaultClient(util.LoadEnvFor("VAULT_URL"), util.LoadEnvFor("VAULT_API_KEY"))

	notify := func(ctx context.Context, ownerID string) {
		if err := internal.PublishCacheMessage(ctx, rdb, internal.CacheInvalidatePaymentMethods, ownerID); err != nil {
			util.LogError("failed to publish payment cache invalidation", err)
		}
	}

	paymentService := services.NewPaymentMethodService(repo, vault, notify)
	paymentController := controllers.InitPaymentMethodController(paymentService)

	return &ServiceContainer{
		PaymentMethodService:    paymentService,
		PaymentMethodController: paymentController,
		Redis:                   rdb,
	}
}
