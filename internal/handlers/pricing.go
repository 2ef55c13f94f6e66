package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/habalhub/habal-backend/internal/models"
	"github.com/habalhub/habal-backend/internal/services"
)

// LoadPricingSettings returns the single pricing row, going through the
// Redis cache first and filling it on a miss. Cache failures fall back to
// the database silently.
func LoadPricingSettings(db *gorm.DB) (*models.PricingSettings, error) {
	ctx := context.Background()

	if cached, err := services.GetCachedPricingSettings(ctx); err == nil && cached != nil {
		return cached, nil
	}

	var pricing models.PricingSettings
	if err := db.First(&pricing, models.PricingSettingsID).Error; err != nil {
		return nil, err
	}

	if err := services.CachePricingSettings(ctx, &pricing); err != nil {
		logrus.WithError(err).Warn("failed to cache pricing settings")
	}
	return &pricing, nil
}

// GetPricing exposes the current fare parameters to any authenticated user
func GetPricing(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		pricing, err := LoadPricingSettings(db)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to load pricing settings"})
			return
		}
		c.JSON(200, gin.H{"pricing": pricing})
	}
}

// UpdatePricing lets an admin replace the fare parameters. The row is
// upserted on its fixed ID so a missing seed row never blocks the update.
func UpdatePricing(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			BaseFare        float64 `json:"baseFare" binding:"required"`
			PerKm           float64 `json:"perKm" binding:"required"`
			SurgeMultiplier float64 `json:"surgeMultiplier" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if input.BaseFare < 0 || input.PerKm < 0 || input.SurgeMultiplier <= 0 {
			c.JSON(400, gin.H{"error": "Pricing values must be positive"})
			return
		}

		pricing := models.PricingSettings{
			ID:              models.PricingSettingsID,
			BaseFare:        input.BaseFare,
			PerKm:           input.PerKm,
			SurgeMultiplier: input.SurgeMultiplier,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"base_fare", "per_km", "surge_multiplier", "updated_at"}),
		}).Create(&pricing).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update pricing settings"})
			return
		}

		if err := services.InvalidatePricingSettings(context.Background()); err != nil {
			logrus.WithError(err).Warn("failed to invalidate pricing cache")
		}

		c.JSON(200, gin.H{
			"message": "Pricing settings updated",
			"pricing": pricing,
		})
	}
}
