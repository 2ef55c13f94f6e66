package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/habalhub/habal-backend/internal/models"
)

// CreatePayment records a payment attempt against one of the caller's
// rides. New records always start pending regardless of what the client
// sends; only an admin can move them afterwards.
func CreatePayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			RideID    uint    `json:"rideId" binding:"required"`
			Method    string  `json:"method" binding:"required"`
			Amount    float64 `json:"amount"`
			Reference string  `json:"reference"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if !models.ValidPaymentMethod(models.PaymentMethod(input.Method)) {
			c.JSON(400, gin.H{"error": "Unsupported payment method"})
			return
		}
		if input.Amount < 0 {
			c.JSON(400, gin.H{"error": "Amount must not be negative"})
			return
		}

		var ride models.Ride
		if err := db.First(&ride, input.RideID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}
		if ride.RiderID != userId {
			c.JSON(403, gin.H{"error": "You can only pay for your own rides"})
			return
		}

		amount := input.Amount
		if amount == 0 {
			amount = ride.FareDue()
		}

		payment := models.Payment{
			RideID:    ride.ID,
			PayerID:   userId,
			Method:    models.PaymentMethod(input.Method),
			Amount:    amount,
			Reference: input.Reference,
			Status:    models.PaymentStatusPending,
		}
		if err := db.Create(&payment).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to record payment"})
			return
		}

		c.JSON(201, gin.H{
			"message": "Payment recorded",
			"payment": payment,
		})
	}
}

// GetMyPayments returns the caller's payment history, newest first
func GetMyPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var payments []models.Payment
		if err := db.Preload("Ride").Where("payer_id = ?", userId).
			Order("created_at desc").Find(&payments).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load payments"})
			return
		}

		c.JSON(200, gin.H{"payments": payments})
	}
}
