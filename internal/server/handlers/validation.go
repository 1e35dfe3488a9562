package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

// RegisterValidators adds the domain rules to gin's binding validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("product_status", validProductStatus); err != nil {
		return fmt.Errorf("register product_status: %w", err)
	}
	if err := v.RegisterValidation("sync_frequency", validSyncFrequency); err != nil {
		return fmt.Errorf("register sync_frequency: %w", err)
	}
	return nil
}

func validProductStatus(fl validator.FieldLevel) bool {
	return models.ProductStatus(fl.Field().String()).Valid()
}

func validSyncFrequency(fl validator.FieldLevel) bool {
	return models.SyncFrequency(fl.Field().String()).Valid()
}
