package services

import (
	"context"

	"coverly-api-io/api/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// MethodRepository is the row store for payment methods, injected into
// the service so tests can substitute a fake. Every query is scoped by
// owner; inactive rows are invisible to all lookups.
type MethodRepository interface {
	FindActiveByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.PaymentMethod, error)
	FindActiveByID(ctx context.Context, ownerID, methodID primitive.ObjectID) (*models.PaymentMethod, error)
	CountActive(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
	Insert(ctx context.Context, method *models.PaymentMethod) error
	UpdateNickname(ctx context.Context, ownerID, methodID primitive.ObjectID, nickname string) error
	// PromoteDefault atomically clears is_default on every other active
	// method owned by ownerID, then sets it on the target.
	PromoteDefault(ctx context.Context, ownerID, methodID primitive.ObjectID) error
	ClearDefault(ctx context.Context, ownerID, methodID primitive.ObjectID) error
	// Deactivate soft-deletes the method: is_active=false, is_default=false.
	Deactivate(ctx context.Context, ownerID, methodID primitive.ObjectID) error
}

type mongoMethodRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMethodRepository builds the mongo-backed repository. The client is
// kept for starting transaction sessions.
func NewMethodRepository(client *mongo.Client, collection *mongo.Collection) MethodRepository {
	return &mongoMethodRepository{client: client, collection: collection}
}

func (r *mongoMethodRepository) FindActiveByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.PaymentMethod, error) {
	filter := bson.M{"owner_id": ownerID, "is_active": true}
	findOptions := options.Find().SetSort(bson.D{
		{Key: "is_default", Value: -1},
		{Key: "created_at", Value: -1},
	})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	defer cursor.Close(ctx)

	var methods []models.PaymentMethod
	if err := cursor.All(ctx, &methods); err != nil {
		return nil, &StorageError{Err: err}
	}

	return methods, nil
}

func (r *mongoMethodRepository) FindActiveByID(ctx context.Context, ownerID, methodID primitive.ObjectID) (*models.PaymentMethod, error) {
	filter := bson.M{"_id": methodID, "owner_id": ownerID, "is_active": true}

	var method models.PaymentMethod
	err := r.collection.FindOne(ctx, filter).Decode(&method)
	if err == mongo.ErrNoDocuments {
		return nil, NewNotFoundError()
	}
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	return &method, nil
}

func (r *mongoMethodRepository) CountActive(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"owner_id": ownerID, "is_active": true})
	if err != nil {
		return 0, &StorageError{Err: err}
	}
	return count, nil
}

func (r *mongoMethodRepository) Insert(ctx context.Context, method *models.PaymentMethod) error {
	if _, err := r.collection.InsertOne(ctx, method); err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

func (r *mongoMethodRepository) UpdateNickname(ctx context.Context, ownerID, methodID primitive.ObjectID, nickname string) error {
	filter := bson.M{"_id": methodID, "owner_id": ownerID, "is_active": true}
	update := bson.M{"$set": bson.M{"nickname": nickname}}
	return r.updateOne(ctx, filter, update)
}

func (r *mongoMethodRepository) PromoteDefault(ctx context.Context, ownerID, methodID primitive.ObjectID) error {
	callback := func(sessCtx mongo.SessionContext) (any, error) {
		clearFilter := bson.M{
			"owner_id":   ownerID,
			"_id":        bson.M{"$ne": methodID},
			"is_active":  true,
			"is_default": true,
		}
		clearUpdate := bson.M{"$set": bson.M{"is_default": false}}
		if _, err := r.collection.UpdateMany(sessCtx, clearFilter, clearUpdate); err != nil {
			return nil, err
		}

		setFilter := bson.M{"_id": methodID, "owner_id": ownerID, "is_active": true}
		setUpdate := bson.M{"$set": bson.M{"is_default": true}}
		res, err := r.collection.UpdateOne(sessCtx, setFilter, setUpdate)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, mongo.ErrNoDocuments
		}

		return nil, nil
	}

	if err := r.executeTransaction(ctx, callback); err != nil {
		if err == mongo.ErrNoDocuments {
			return NewNotFoundError()
		}
		return &StorageError{Err: err}
	}

	return nil
}

func (r *mongoMethodRepository) ClearDefault(ctx context.Context, ownerID, methodID primitive.ObjectID) error {
	filter := bson.M{"_id": methodID, "owner_id": ownerID, "is_active": true}
	update := bson.M{"$set": bson.M{"is_default": false}}
	return r.updateOne(ctx, filter, update)
}

func (r *mongoMethodRepository) Deactivate(ctx context.Context, ownerID, methodID primitive.ObjectID) error {
	filter := bson.M{"_id": methodID, "owner_id": ownerID, "is_active": true}
	update := bson.M{"$set": bson.M{"is_active": false, "is_default": false}}
	return r.updateOne(ctx, filter, update)
}

func (r *mongoMethodRepository) updateOne(ctx context.Context, filter, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return &StorageError{Err: err}
	}
	if res.MatchedCount == 0 {
		return NewNotFoundError()
	}
	return nil
}

// executeTransaction runs the callback inside a session with majority
// write concern so default promotion is never observed half-applied.
func (r *mongoMethodRepository) executeTransaction(ctx context.Context, callback func(mongo.SessionContext) (any, error)) error {
	wc := writeconcern.New(writeconcern.WMajority())
	txnOptions := options.Transaction().SetWriteConcern(wc)

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, callback, txnOptions)
	return err
}
