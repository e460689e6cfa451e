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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TxRepository struct {
	collection *mongo.Collection
}

func NewTxRepository(client *mongo.Client, database string) *TxRepository {
	return &TxRepository{collection: client.Database(database).Collection("transactions")}
}

// Create inserts a new transaction. The transaction id is the document
// id, so mongo's unique index enforces id uniqueness for us.
func (r *TxRepository) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	_, err := r.collection.InsertOne(ctx, tx)
	if mongo.IsDuplicateKeyError(err) {
		return models.Transaction{}, errors.ErrDuplicateTx
	}
	if err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// FindByID returns the transaction with the given id.
func (r *TxRepository) FindByID(ctx context.Context, txID string) (models.Transaction, error) {
	var tx models.Transaction
	err := r.collection.FindOne(ctx, bson.M{"_id": txID}).Decode(&tx)
	if err == mongo.ErrNoDocuments {
		return models.Transaction{}, errors.ErrTxNotFound
	}
	if err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// FindByOwner returns all transactions initiated by the owner, newest
// first.
func (r *TxRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}

	var txs []models.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// Update replaces the whole record. Updates are last-write-wins; there
// is no version token on the document.
func (r *TxRepository) Update(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tx.TxID}, tx)
	if err != nil {
		return models.Transaction{}, err
	}
	if res.MatchedCount == 0 {
		return models.Transaction{}, errors.ErrTxNotFound
	}
	return tx, nil
}
