package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
	"github.com/Damaurora/DamaskVapers/internal/service/catalog"
)

// CatalogService is what the catalog endpoints need from the service layer.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, in catalog.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, in catalog.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	ListFeaturedProducts(ctx context.Context) ([]models.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, in catalog.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, in catalog.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListStores(ctx context.Context) ([]models.Store, error)
	GetStore(ctx context.Context, id int64) (*models.Store, error)
	CreateStore(ctx context.Context, in catalog.StoreInput) (*models.Store, error)
	UpdateStore(ctx context.Context, id int64, in catalog.StoreInput) (*models.Store, error)
	DeleteStore(ctx context.Context, id int64) error

	ProductInventory(ctx context.Context, productID int64) ([]models.ProductInventory, error)
	StoreInventory(ctx context.Context, storeID int64) ([]models.ProductInventory, error)
	SetStoreQuantity(ctx context.Context, productID, storeID int64, quantity int) (*catalog.StockChange, error)
}

// CatalogHandler serves categories, products, stores and store inventory.
type CatalogHandler struct {
	svc    CatalogService
	logger *zap.Logger
}

// NewCatalogHandler constructs the catalog HTTP handler.
func NewCatalogHandler(svc CatalogService, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{svc: svc, logger: logger}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
	Slug string `json:"slug" binding:"required"`
}

func (r categoryRequest) input() catalog.CategoryInput {
	return catalog.CategoryInput{Name: r.Name, Icon: r.Icon, Slug: r.Slug}
}

type productRequest struct {
	Name           string               `json:"name" binding:"required"`
	Description    string               `json:"description"`
	Slug           string               `json:"slug" binding:"required"`
	Image          string               `json:"image"`
	CategoryID     int64                `json:"categoryId" binding:"required,gt=0"`
	Status         models.ProductStatus `json:"status" binding:"omitempty,product_status"`
	SKU            string               `json:"sku"`
	Quantity       int                  `json:"quantity" binding:"gte=0"`
	IsFeatured     bool                 `json:"isFeatured"`
	Specifications map[string]string    `json:"specifications"`
}

func (r productRequest) input() catalog.ProductInput {
	return catalog.ProductInput{
		Name:           r.Name,
		Description:    r.Description,
		Slug:           r.Slug,
		Image:          r.Image,
		CategoryID:     r.CategoryID,
		Status:         r.Status,
		SKU:            r.SKU,
		Quantity:       r.Quantity,
		IsFeatured:     r.IsFeatured,
		Specifications: r.Specifications,
	}
}

type storeRequest struct {
	Name              string `json:"name" binding:"required"`
	Address           string `json:"address" binding:"required"`
	Image             string `json:"image"`
	WorkHoursWeekdays string `json:"workHoursWeekdays"`
	WorkHoursWeekend  string `json:"workHoursWeekend"`
	Phone             string `json:"phone"`
}

func (r storeRequest) input() catalog.StoreInput {
	return catalog.StoreInput{
		Name:              r.Name,
		Address:           r.Address,
		Image:             r.Image,
		WorkHoursWeekdays: r.WorkHoursWeekdays,
		WorkHoursWeekend:  r.WorkHoursWeekend,
		Phone:             r.Phone,
	}
}

type inventoryRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	category, err := h.svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) GetCategoryBySlug(c *gin.Context) {
	category, err := h.svc.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.logger, err)
		return
	}
	category, err := h.svc.CreateCategory(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.logger, err)
		return
	}
	category, err := h.svc.UpdateCategory(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) ListFeaturedProducts(c *gin.Context) {
	products, err := h.svc.ListFeaturedProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) ListProductsByCategory(c *gin.Context) {
	id, err := paramID(c, "categoryId")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	products, err := h.svc.ListProductsByCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	product, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.logger, err)
		return
	}
	product, err := h.svc.CreateProduct(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.logger, err)
		return
	}
	product, err := h.svc.UpdateProduct(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ListStores(c *gin.Context) {
	stores, err := h.svc.ListStores(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (h *CatalogHandler) GetStore(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	store, err := h.svc.GetStore(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *CatalogHandler) CreateStore(c *gin.Context) {
	var req storeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.logger, err)
		return
	}
	store, err := h.svc.CreateStore(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, store)
}

func (h *CatalogHandler) UpdateStore(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req storeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.logger, err)
		return
	}
	store, err := h.svc.UpdateStore(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *CatalogHandler) DeleteStore(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.svc.DeleteStore(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ProductInventory(c *gin.Context) {
	id, err := paramID(c, "productId")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	rows, err := h.svc.ProductInventory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *CatalogHandler) StoreInventory(c *gin.Context) {
	id, err := paramID(c, "storeId")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	rows, err := h.svc.StoreInventory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// SetStoreQuantity handles PUT /api/inventory/:productId/:storeId.
func (h *CatalogHandler) SetStoreQuantity(c *gin.Context) {
	productID, err := paramID(c, "productId")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	storeID, err := paramID(c, "storeId")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.logger, err)
		return
	}
	change, err := h.svc.SetStoreQuantity(c.Request.Context(), productID, storeID, *req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, change)
}
