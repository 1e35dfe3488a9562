package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

// ListProducts returns every product ordered by id.
func (r *MongoDBRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := findAll[models.Product](ctx, r.collection(productsCollection), bson.M{}, byID())
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListFeaturedProducts returns products flagged for the storefront front page.
func (r *MongoDBRepository) ListFeaturedProducts(ctx context.Context) ([]models.Product, error) {
	products, err := findAll[models.Product](ctx, r.collection(productsCollection), bson.M{"is_featured": true}, byID())
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	return products, nil
}

// ListProductsByCategory returns the products of one category.
func (r *MongoDBRepository) ListProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	products, err := findAll[models.Product](ctx, r.collection(productsCollection), bson.M{"category_id": categoryID}, byID())
	if err != nil {
		return nil, fmt.Errorf("failed to list products of category %d: %w", categoryID, err)
	}
	return products, nil
}

func (r *MongoDBRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := r.collection(productsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// FindProductBySKU looks a product up by exact SKU.
func (r *MongoDBRepository) FindProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var p models.Product
	if err := r.collection(productsCollection).FindOne(ctx, bson.M{"sku": sku}).Decode(&p); err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// CreateProduct assigns an id and timestamps and inserts the product.
func (r *MongoDBRepository) CreateProduct(ctx context.Context, p *models.Product) error {
	id, err := r.nextID(ctx, productsCollection)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.collection(productsCollection).InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to insert product: %w", translateError(err))
	}
	return nil
}

// UpdateProduct replaces the stored product. CreatedAt is kept as given.
func (r *MongoDBRepository) UpdateProduct(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.collection(productsCollection).ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", p.ID, translateError(err))
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateProductStock writes the aggregate quantity and status of a product.
func (r *MongoDBRepository) UpdateProductStock(ctx context.Context, id int64, quantity int, status models.ProductStatus) error {
	update := bson.M{"$set": bson.M{
		"quantity":   quantity,
		"status":     status,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.collection(productsCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update stock of product %d: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product together with its store inventory rows.
func (r *MongoDBRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.collection(productsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	if _, err := r.collection(inventoryCollection).DeleteMany(ctx, bson.M{"product_id": id}); err != nil {
		return fmt.Errorf("failed to delete inventory of product %d: %w", id, err)
	}
	return nil
}
