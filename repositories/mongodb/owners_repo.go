package mongodb

import (
	// Go Internal Packages
	"context"

	// Local Packages
	errors "remit-api/errors"
	models "remit-api/models"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// OwnerRepository reads the balance/KYC view of an account. The user
// management service owns the rest of the document; this core never
// writes to it.
type OwnerRepository struct {
	collection *mongo.Collection
}

func NewOwnerRepository(client *mongo.Client, database string) *OwnerRepository {
	return &OwnerRepository{collection: client.Database(database).Collection("users")}
}

func (r *OwnerRepository) FindByID(ctx context.Context, ownerID string) (models.Owner, error) {
	var owner models.Owner
	err := r.collection.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&owner)
	if err == mongo.ErrNoDocuments {
		return models.Owner{}, errors.ErrOwnerNotFound
	}
	if err != nil {
		return models.Owner{}, err
	}
	return owner, nil
}
