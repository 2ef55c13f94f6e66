package handlers

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/habalhub/habal-backend/internal/middleware"
	"github.com/habalhub/habal-backend/internal/models"
	"github.com/habalhub/habal-backend/internal/services"
)

// RegisterDriver files a driver application: vehicle details plus the two
// required documents (official receipt and certificate of registration).
// Documents are uploaded first, scoped under the applicant's id; if either
// upload fails the application is aborted and must be resubmitted.
func RegisterDriver(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var existing models.Driver
		if err := db.Where("user_id = ?", userId).First(&existing).Error; err == nil {
			c.JSON(409, gin.H{"error": "Driver application already exists", "approvalStatus": existing.ApprovalStatus})
			return
		}

		vehicleMake := c.PostForm("vehicleMake")
		vehicleModel := c.PostForm("vehicleModel")
		plateNumber := c.PostForm("plateNumber")
		licenseNumber := c.PostForm("licenseNumber")
		if vehicleMake == "" || vehicleModel == "" || plateNumber == "" || licenseNumber == "" {
			c.JSON(400, gin.H{"error": "Vehicle make, model, plate number and license number are required"})
			return
		}

		orFile, err := c.FormFile("orDocument")
		if err != nil {
			c.JSON(400, gin.H{"error": "Official receipt (OR) document is required"})
			return
		}
		crFile, err := c.FormFile("crDocument")
		if err != nil {
			c.JSON(400, gin.H{"error": "Certificate of registration (CR) document is required"})
			return
		}

		folder := fmt.Sprintf("drivers/%d", userId)
		orURL, err := services.UploadFile(orFile, folder)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload OR document: " + err.Error()})
			return
		}
		crURL, err := services.UploadFile(crFile, folder)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload CR document: " + err.Error()})
			return
		}

		driver := models.Driver{
			UserID:         userId,
			VehicleMake:    vehicleMake,
			VehicleModel:   vehicleModel,
			PlateNumber:    plateNumber,
			LicenseNumber:  licenseNumber,
			ORDocumentURL:  orURL,
			CRDocumentURL:  crURL,
			ApprovalStatus: models.DriverStatusPending,
			IsAvailable:    false,
		}

		if err := db.Create(&driver).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to submit application"})
			return
		}

		hub.NotifyDriverApplication(driver.ID, userId)

		c.JSON(201, gin.H{
			"message": "Application submitted. Await admin approval.",
			"driver":  driver,
		})
	}
}

// GetMyDriver returns the caller's own driver record
func GetMyDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var driver models.Driver
		if err := db.Where("user_id = ?", userId).First(&driver).Error; err != nil {
			c.JSON(404, gin.H{"error": "No driver application found"})
			return
		}

		c.JSON(200, driver)
	}
}

// AvailableDrivers is the Driver Directory: every approved driver whose
// availability flag is on, in stable creation order. First entry doubles
// as the default auto-assignment candidate.
func AvailableDrivers(db *gorm.DB) ([]models.Driver, error) {
	var drivers []models.Driver
	err := db.Where("approval_status = ? AND is_available = ?", models.DriverStatusApproved, true).
		Order("created_at asc").
		Find(&drivers).Error
	return drivers, err
}

// GetAvailableDrivers lists the directory for manual driver selection
func GetAvailableDrivers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		drivers, err := AvailableDrivers(db)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to load available drivers"})
			return
		}

		out := make([]gin.H, 0, len(drivers))
		for _, d := range drivers {
			out = append(out, gin.H{
				"userId":       d.UserID,
				"vehicleMake":  d.VehicleMake,
				"vehicleModel": d.VehicleModel,
				"plateNumber":  d.PlateNumber,
				"isAvailable":  d.IsAvailable,
			})
		}

		c.JSON(200, gin.H{"drivers": out})
	}
}

// UpdateDriverAvailability toggles the caller's availability flag. The
// update carries the approval guard in its WHERE clause: a non-approved
// row matches zero rows and the toggle is rejected rather than applied.
func UpdateDriverAvailability(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		if !middleware.HasRole(c, string(models.RoleDriver)) {
			c.JSON(403, gin.H{"error": "Only drivers can update availability"})
			return
		}

		var input struct {
			IsAvailable *bool `json:"isAvailable" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.Driver{}).
			Where("user_id = ? AND approval_status = ?", userId, models.DriverStatusApproved).
			Update("is_available", *input.IsAvailable)
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to update availability"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(409, gin.H{"error": "Availability can only be changed on an approved driver"})
			return
		}

		// Mirror to Redis for quick lookups; best effort.
		services.SetDriverAvailability(context.Background(), userId, *input.IsAvailable)

		c.JSON(200, gin.H{"isAvailable": *input.IsAvailable})
	}
}
