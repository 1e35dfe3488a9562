package models

import "time"

// Category groups products on the storefront.
type Category struct {
	ID   int64  `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
	Icon string `bson:"icon" json:"icon"`
	Slug string `bson:"slug" json:"slug"`
}

// Store is a physical shop location.
type Store struct {
	ID                int64  `bson:"_id" json:"id"`
	Name              string `bson:"name" json:"name"`
	Address           string `bson:"address" json:"address"`
	Image             string `bson:"image,omitempty" json:"image,omitempty"`
	WorkHoursWeekdays string `bson:"work_hours_weekdays" json:"workHoursWeekdays"`
	WorkHoursWeekend  string `bson:"work_hours_weekend" json:"workHoursWeekend"`
	Phone             string `bson:"phone" json:"phone"`
}

// Product is a catalog entry. Quantity is the aggregate across all stores.
type Product struct {
	ID             int64             `bson:"_id" json:"id"`
	Name           string            `bson:"name" json:"name"`
	Description    string            `bson:"description" json:"description"`
	Slug           string            `bson:"slug" json:"slug"`
	Image          string            `bson:"image,omitempty" json:"image,omitempty"`
	CategoryID     int64             `bson:"category_id" json:"categoryId"`
	Status         ProductStatus     `bson:"status" json:"status"`
	SKU            string            `bson:"sku,omitempty" json:"sku,omitempty"`
	Quantity       int               `bson:"quantity" json:"quantity"`
	IsFeatured     bool              `bson:"is_featured" json:"isFeatured"`
	Specifications map[string]string `bson:"specifications,omitempty" json:"specifications,omitempty"`
	CreatedAt      time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time         `bson:"updated_at" json:"updatedAt"`
}

// ProductInventory holds the units of one product at one store.
type ProductInventory struct {
	ProductID int64     `bson:"product_id" json:"productId"`
	StoreID   int64     `bson:"store_id" json:"storeId"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
