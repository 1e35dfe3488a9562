package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

// DefaultSettings is the settings record of a fresh installation.
func DefaultSettings() models.Settings {
	return models.Settings{
		ShopName:      "Damask Shop",
		Logo:          "/logo.svg",
		Description:   "Магазин электронных сигарет и вейп-устройств",
		SyncFrequency: models.SyncManual,
	}
}

// DefaultStores are the two physical shops.
func DefaultStores() []models.Store {
	return []models.Store{
		{
			Name:              "Магазин на Гагарина",
			Address:           "ул. Гагарина 26А",
			WorkHoursWeekdays: "10:00 - 20:00",
			WorkHoursWeekend:  "11:00 - 19:00",
			Phone:             "+7 (912) 345-67-89",
		},
		{
			Name:              "Магазин на Победе",
			Address:           "ул. Победы 28Б",
			WorkHoursWeekdays: "10:00 - 20:00",
			WorkHoursWeekend:  "11:00 - 19:00",
			Phone:             "+7 (912) 345-67-88",
		},
	}
}

func DefaultCategories() []models.Category {
	return []models.Category{
		{Name: "Поды", Icon: "pod", Slug: "pods"},
		{Name: "Под-моды", Icon: "pod-mod", Slug: "pod-mods"},
		{Name: "Одноразки", Icon: "disposable", Slug: "disposables"},
		{Name: "Жидкости", Icon: "liquid", Slug: "liquids"},
		{Name: "Табак", Icon: "tobacco", Slug: "tobacco"},
		{Name: "Жевательный табак", Icon: "chewing-tobacco", Slug: "chewing-tobacco"},
	}
}

// Seed fills an empty database with the default settings, stores and categories.
// Collections that already hold data are left alone.
func (r *MongoDBRepository) Seed(ctx context.Context) error {
	if _, err := r.GetSettings(ctx); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("failed to check settings: %w", err)
		}
		settings := DefaultSettings()
		if err := r.SaveSettings(ctx, &settings); err != nil {
			return err
		}
		r.logger.Info("default settings seeded")
	}

	storeCount, err := r.collection(storesCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count stores: %w", err)
	}
	if storeCount == 0 {
		for _, s := range DefaultStores() {
			if err := r.CreateStore(ctx, &s); err != nil {
				return err
			}
		}
		r.logger.Info("default stores seeded", zap.Int("count", len(DefaultStores())))
	}

	categoryCount, err := r.collection(categoriesCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if categoryCount == 0 {
		for _, c := range DefaultCategories() {
			if err := r.CreateCategory(ctx, &c); err != nil {
				return err
			}
		}
		r.logger.Info("default categories seeded", zap.Int("count", len(DefaultCategories())))
	}

	return nil
}
