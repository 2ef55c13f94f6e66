package database

import (
	"gorm.io/gorm"

	"github.com/habalhub/habal-backend/internal/models"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.UserRole{},
		&models.Driver{},
		&models.Ride{},
		&models.Payment{},
		&models.PricingSettings{},
	)
	if err != nil {
		return err
	}

	// Enum-style CHECK constraints; the application validates too, these
	// are the backstop against direct writes.
	db.Exec(`ALTER TABLE drivers DROP CONSTRAINT IF EXISTS drivers_approval_status_check`)
	if err := db.Exec(`ALTER TABLE drivers ADD CONSTRAINT drivers_approval_status_check CHECK (approval_status IN ('pending', 'approved', 'rejected'))`).Error; err != nil {
		return err
	}

	db.Exec(`ALTER TABLE rides DROP CONSTRAINT IF EXISTS rides_status_check`)
	if err := db.Exec(`ALTER TABLE rides ADD CONSTRAINT rides_status_check CHECK (status IN ('requested', 'assigned', 'accepted', 'in_progress', 'completed', 'cancelled'))`).Error; err != nil {
		return err
	}

	db.Exec(`ALTER TABLE payments DROP CONSTRAINT IF EXISTS payments_method_check`)
	if err := db.Exec(`ALTER TABLE payments ADD CONSTRAINT payments_method_check CHECK (method IN ('gcash', 'paymaya', 'cod'))`).Error; err != nil {
		return err
	}

	db.Exec(`ALTER TABLE payments DROP CONSTRAINT IF EXISTS payments_status_check`)
	if err := db.Exec(`ALTER TABLE payments ADD CONSTRAINT payments_status_check CHECK (status IN ('pending', 'paid', 'failed', 'refunded'))`).Error; err != nil {
		return err
	}

	// Availability can only be true on an approved driver row.
	db.Exec(`ALTER TABLE drivers DROP CONSTRAINT IF EXISTS drivers_availability_check`)
	if err := db.Exec(`ALTER TABLE drivers ADD CONSTRAINT drivers_availability_check CHECK (NOT is_available OR approval_status = 'approved')`).Error; err != nil {
		return err
	}

	// Seed the pricing singleton so fare quotes work out of the box.
	var count int64
	if err := db.Model(&models.PricingSettings{}).Where("id = ?", models.PricingSettingsID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		seed := models.PricingSettings{
			ID:              models.PricingSettingsID,
			BaseFare:        25,
			PerKm:           10,
			SurgeMultiplier: 1,
		}
		if err := db.Create(&seed).Error; err != nil {
			return err
		}
	}

	return nil
}
