package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

// GetInventory returns the row of one (product, store) pair.
func (r *MongoDBRepository) GetInventory(ctx context.Context, productID, storeID int64) (*models.ProductInventory, error) {
	var inv models.ProductInventory
	filter := bson.M{"product_id": productID, "store_id": storeID}
	if err := r.collection(inventoryCollection).FindOne(ctx, filter).Decode(&inv); err != nil {
		return nil, translateError(err)
	}
	return &inv, nil
}

// ListInventoryByProduct returns the per-store rows of a product.
func (r *MongoDBRepository) ListInventoryByProduct(ctx context.Context, productID int64) ([]models.ProductInventory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "store_id", Value: 1}})
	rows, err := findAll[models.ProductInventory](ctx, r.collection(inventoryCollection), bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory of product %d: %w", productID, err)
	}
	return rows, nil
}

// ListInventoryByStore returns every product row held at a store.
func (r *MongoDBRepository) ListInventoryByStore(ctx context.Context, storeID int64) ([]models.ProductInventory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "product_id", Value: 1}})
	rows, err := findAll[models.ProductInventory](ctx, r.collection(inventoryCollection), bson.M{"store_id": storeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory of store %d: %w", storeID, err)
	}
	return rows, nil
}

// UpsertInventory sets the quantity of a (product, store) pair, creating the row
// on first write.
func (r *MongoDBRepository) UpsertInventory(ctx context.Context, productID, storeID int64, quantity int) (*models.ProductInventory, error) {
	now := time.Now().UTC()
	filter := bson.M{"product_id": productID, "store_id": storeID}
	update := bson.M{"$set": bson.M{"quantity": quantity, "updated_at": now}}

	_, err := r.collection(inventoryCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert inventory %d/%d: %w", productID, storeID, err)
	}

	return &models.ProductInventory{
		ProductID: productID,
		StoreID:   storeID,
		Quantity:  quantity,
		UpdatedAt: now,
	}, nil
}
