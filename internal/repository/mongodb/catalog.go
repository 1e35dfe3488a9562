package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

func (r *MongoDBRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := findAll[models.Category](ctx, r.collection(categoriesCollection), bson.M{}, byID())
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *MongoDBRepository) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	if err := r.collection(categoriesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *MongoDBRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := r.collection(categoriesCollection).FindOne(ctx, bson.M{"slug": slug}).Decode(&c); err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *MongoDBRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	id, err := r.nextID(ctx, categoriesCollection)
	if err != nil {
		return err
	}
	c.ID = id
	if _, err := r.collection(categoriesCollection).InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to insert category: %w", translateError(err))
	}
	return nil
}

func (r *MongoDBRepository) UpdateCategory(ctx context.Context, c *models.Category) error {
	res, err := r.collection(categoriesCollection).ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("failed to update category %d: %w", c.ID, translateError(err))
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoDBRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.collection(categoriesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListStores returns the physical shops ordered by id.
func (r *MongoDBRepository) ListStores(ctx context.Context) ([]models.Store, error) {
	stores, err := findAll[models.Store](ctx, r.collection(storesCollection), bson.M{}, byID())
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

func (r *MongoDBRepository) GetStore(ctx context.Context, id int64) (*models.Store, error) {
	var s models.Store
	if err := r.collection(storesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

func (r *MongoDBRepository) CreateStore(ctx context.Context, s *models.Store) error {
	id, err := r.nextID(ctx, storesCollection)
	if err != nil {
		return err
	}
	s.ID = id
	if _, err := r.collection(storesCollection).InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to insert store: %w", translateError(err))
	}
	return nil
}

func (r *MongoDBRepository) UpdateStore(ctx context.Context, s *models.Store) error {
	res, err := r.collection(storesCollection).ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return fmt.Errorf("failed to update store %d: %w", s.ID, translateError(err))
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteStore removes a store and the inventory rows held for it.
func (r *MongoDBRepository) DeleteStore(ctx context.Context, id int64) error {
	res, err := r.collection(storesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete store %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	if _, err := r.collection(inventoryCollection).DeleteMany(ctx, bson.M{"store_id": id}); err != nil {
		return fmt.Errorf("failed to delete inventory of store %d: %w", id, err)
	}
	return nil
}
