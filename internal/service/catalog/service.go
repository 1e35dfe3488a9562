package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

// Repository is the storage surface of the admin catalog.
type Repository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	ListFeaturedProducts(ctx context.Context) ([]models.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	UpdateProductStock(ctx context.Context, id int64, quantity int, status models.ProductStatus) error
	DeleteProduct(ctx context.Context, id int64) error

	ListStores(ctx context.Context) ([]models.Store, error)
	GetStore(ctx context.Context, id int64) (*models.Store, error)
	CreateStore(ctx context.Context, s *models.Store) error
	UpdateStore(ctx context.Context, s *models.Store) error
	DeleteStore(ctx context.Context, id int64) error

	ListInventoryByProduct(ctx context.Context, productID int64) ([]models.ProductInventory, error)
	ListInventoryByStore(ctx context.Context, storeID int64) ([]models.ProductInventory, error)
	UpsertInventory(ctx context.Context, productID, storeID int64, quantity int) (*models.ProductInventory, error)
}

// Service implements catalog reads for the storefront and edits for the admin.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService builds the catalog service. A nil logger is replaced by a no-op one.
func NewService(repository Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// CategoryInput is the editable part of a category.
type CategoryInput struct {
	Name string
	Icon string
	Slug string
}

// ProductInput is the editable part of a product.
type ProductInput struct {
	Name           string
	Description    string
	Slug           string
	Image          string
	CategoryID     int64
	Status         models.ProductStatus
	SKU            string
	Quantity       int
	IsFeatured     bool
	Specifications map[string]string
}

// StoreInput is the editable part of a store.
type StoreInput struct {
	Name              string
	Address           string
	Image             string
	WorkHoursWeekdays string
	WorkHoursWeekend  string
	Phone             string
}

// StockChange is the result of a manual per-store quantity edit.
type StockChange struct {
	Inventory models.ProductInventory `json:"inventory"`
	Product   models.Product          `json:"product"`
	Source    models.StatusSource     `json:"statusSource"`
}

// ListCategories returns every category.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// GetCategory returns one category by id.
func (s *Service) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// GetCategoryBySlug returns the category with the given slug.
func (s *Service) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.repo.GetCategoryBySlug(ctx, slug)
}

// CreateCategory stores a new category. Slugs are unique.
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	c := &models.Category{Name: strings.TrimSpace(in.Name), Icon: in.Icon, Slug: strings.TrimSpace(in.Slug)}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("category created", zap.Int64("category_id", c.ID), zap.String("slug", c.Slug))
	return c, nil
}

// UpdateCategory replaces the editable fields of a category.
func (s *Service) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*models.Category, error) {
	c := &models.Category{ID: id, Name: strings.TrimSpace(in.Name), Icon: in.Icon, Slug: strings.TrimSpace(in.Slug)}
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory refuses to remove a category that still has products.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	products, err := s.repo.ListProductsByCategory(ctx, id)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return fmt.Errorf("%w: category %d still has %d products", models.ErrConflict, id, len(products))
	}
	return s.repo.DeleteCategory(ctx, id)
}

// ListProducts returns the full catalog.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListProducts(ctx)
}

// ListFeaturedProducts returns products flagged for the front page.
func (s *Service) ListFeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListFeaturedProducts(ctx)
}

// ListProductsByCategory returns the products of one category.
func (s *Service) ListProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	return s.repo.ListProductsByCategory(ctx, categoryID)
}

// GetProduct returns one product by id.
func (s *Service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// CreateProduct stores a new product. The stored status follows ResolveStatus: a
// positive quantity always means in stock.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	p, err := s.buildProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.Int64("product_id", p.ID), zap.String("sku", p.SKU))
	return p, nil
}

// UpdateProduct replaces the editable fields of a product, keeping its id and creation time.
func (s *Service) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*models.Product, error) {
	existing, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.buildProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes a product and its store inventory rows.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

func (s *Service) buildProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	decision, err := models.ResolveStatus(in.Quantity, in.Status)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d does not exist", models.ErrValidation, in.CategoryID)
		}
		return nil, err
	}

	return &models.Product{
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Slug:           strings.TrimSpace(in.Slug),
		Image:          in.Image,
		CategoryID:     in.CategoryID,
		Status:         decision.Status,
		SKU:            strings.TrimSpace(in.SKU),
		Quantity:       in.Quantity,
		IsFeatured:     in.IsFeatured,
		Specifications: in.Specifications,
	}, nil
}

// ListStores returns the physical shops.
func (s *Service) ListStores(ctx context.Context) ([]models.Store, error) {
	return s.repo.ListStores(ctx)
}

// GetStore returns one store by id.
func (s *Service) GetStore(ctx context.Context, id int64) (*models.Store, error) {
	return s.repo.GetStore(ctx, id)
}

// CreateStore stores a new shop location.
func (s *Service) CreateStore(ctx context.Context, in StoreInput) (*models.Store, error) {
	st := storeFromInput(0, in)
	if err := s.repo.CreateStore(ctx, st); err != nil {
		return nil, err
	}
	s.logger.Info("store created", zap.Int64("store_id", st.ID))
	return st, nil
}

// UpdateStore replaces the editable fields of a store.
func (s *Service) UpdateStore(ctx context.Context, id int64, in StoreInput) (*models.Store, error) {
	st := storeFromInput(id, in)
	if err := s.repo.UpdateStore(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// DeleteStore removes a store and the inventory rows held for it.
func (s *Service) DeleteStore(ctx context.Context, id int64) error {
	if err := s.repo.DeleteStore(ctx, id); err != nil {
		return err
	}
	s.logger.Info("store deleted", zap.Int64("store_id", id))
	return nil
}

func storeFromInput(id int64, in StoreInput) *models.Store {
	return &models.Store{
		ID:                id,
		Name:              strings.TrimSpace(in.Name),
		Address:           in.Address,
		Image:             in.Image,
		WorkHoursWeekdays: in.WorkHoursWeekdays,
		WorkHoursWeekend:  in.WorkHoursWeekend,
		Phone:             in.Phone,
	}
}

// ProductInventory returns the per-store rows of a product.
func (s *Service) ProductInventory(ctx context.Context, productID int64) ([]models.ProductInventory, error) {
	return s.repo.ListInventoryByProduct(ctx, productID)
}

// StoreInventory returns the product rows held at a store.
func (s *Service) StoreInventory(ctx context.Context, storeID int64) ([]models.ProductInventory, error) {
	return s.repo.ListInventoryByStore(ctx, storeID)
}

// SetStoreQuantity overwrites one store's quantity of a product and recomputes
// the product aggregate. A manual coming_soon survives while the total stays 0
// or below.
func (s *Service) SetStoreQuantity(ctx context.Context, productID, storeID int64, quantity int) (*StockChange, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", models.ErrValidation)
	}
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetStore(ctx, storeID); err != nil {
		return nil, err
	}

	inv, err := s.repo.UpsertInventory(ctx, productID, storeID, quantity)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListInventoryByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, r := range rows {
		total += r.Quantity
	}

	// Synced cells may be negative; the status treats such a total as empty.
	decision, err := models.ResolveStatus(max(total, 0), product.Status)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProductStock(ctx, productID, total, decision.Status); err != nil {
		return nil, err
	}
	product.Quantity = total
	product.Status = decision.Status

	s.logger.Info("store quantity set",
		zap.Int64("product_id", productID),
		zap.Int64("store_id", storeID),
		zap.Int("quantity", quantity),
		zap.Int("total", total),
		zap.String("status", string(decision.Status)))

	return &StockChange{Inventory: *inv, Product: *product, Source: decision.Source}, nil
}
