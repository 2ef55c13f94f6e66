package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/habalhub/habal-backend/internal/models"
	"github.com/habalhub/habal-backend/internal/services"
)

// Admin surface: driver approval workflow, user management, pricing is in
// pricing.go, payment oversight and final-fare correction. All routes in
// this file sit behind the admin role middleware.

// GetPendingDrivers lists driver applications awaiting review, oldest first
func GetPendingDrivers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var drivers []models.Driver
		if err := db.Preload("User").
			Where("approval_status = ?", models.DriverStatusPending).
			Order("created_at asc").Find(&drivers).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load pending drivers"})
			return
		}

		c.JSON(200, gin.H{"drivers": drivers})
	}
}

// ApproveDriver moves a pending application to approved and grants the
// driver role. The approval itself is a conditional update: a concurrent
// decision makes it a conflict, not a silent double-approve. The role
// grant is idempotent, so a retry after a partial failure converges.
func ApproveDriver(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID, err := strconv.ParseUint(c.Param("driverId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid driver ID"})
			return
		}

		var driver models.Driver
		if err := db.First(&driver, driverID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		result := db.Model(&models.Driver{}).
			Where("id = ? AND approval_status = ?", driver.ID, models.DriverStatusPending).
			Update("approval_status", models.DriverStatusApproved)
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to approve driver"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(409, gin.H{"error": "Application already decided, please refresh"})
			return
		}

		hub.NotifyDriverApproval(services.DriverApprovalEvent{
			DriverID:       driver.ID,
			ApprovalStatus: string(models.DriverStatusApproved),
		}, driver.UserID)

		if err := GrantRole(db, driver.UserID, models.RoleDriver); err != nil {
			// Approval committed; the grant can be retried by approving
			// again or via any later grant path.
			logrus.WithError(err).WithField("userId", driver.UserID).Error("driver role grant failed after approval")
			c.JSON(200, gin.H{
				"message": "Driver approved",
				"warning": "Driver role grant failed, retry the approval to finish",
			})
			return
		}

		c.JSON(200, gin.H{"message": "Driver approved"})
	}
}

// RejectDriver moves a pending application to rejected
func RejectDriver(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID, err := strconv.ParseUint(c.Param("driverId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid driver ID"})
			return
		}

		var driver models.Driver
		if err := db.First(&driver, driverID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		result := db.Model(&models.Driver{}).
			Where("id = ? AND approval_status = ?", driver.ID, models.DriverStatusPending).
			Update("approval_status", models.DriverStatusRejected)
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to reject driver"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(409, gin.H{"error": "Application already decided, please refresh"})
			return
		}

		hub.NotifyDriverApproval(services.DriverApprovalEvent{
			DriverID:       driver.ID,
			ApprovalStatus: string(models.DriverStatusRejected),
		}, driver.UserID)

		c.JSON(200, gin.H{"message": "Driver rejected"})
	}
}

type adminUserView struct {
	ID           uint    `json:"id"`
	Email        string  `json:"email"`
	FullName     string  `json:"fullName"`
	Phone        string  `json:"phone"`
	Roles        []string `json:"roles"`
	PrimaryRole  string  `json:"primaryRole"`
	DriverStatus *string `json:"driverStatus,omitempty"`
}

// primaryRole collapses a role set into the single label shown in the
// admin user list: banned and admin outrank driver, driver outranks rider.
func primaryRole(roles models.RoleSet, hasDriverRow bool) string {
	switch {
	case roles.Has(models.RoleBanned):
		return string(models.RoleBanned)
	case roles.Has(models.RoleAdmin):
		return string(models.RoleAdmin)
	case roles.Has(models.RoleDriver) || hasDriverRow:
		return string(models.RoleDriver)
	default:
		return string(models.RoleRider)
	}
}

// GetUsers lists all accounts with profile, roles and driver status
func GetUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at desc").Find(&users).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load users"})
			return
		}

		views := make([]adminUserView, 0, len(users))
		for _, u := range users {
			view := adminUserView{ID: u.ID, Email: u.Email}

			var profile models.Profile
			if err := db.First(&profile, "user_id = ?", u.ID).Error; err == nil {
				view.FullName = profile.FullName
				view.Phone = profile.Phone
			}

			var driver models.Driver
			hasDriver := false
			if err := db.First(&driver, "user_id = ?", u.ID).Error; err == nil {
				hasDriver = driver.ApprovalStatus == models.DriverStatusApproved
				status := string(driver.ApprovalStatus)
				view.DriverStatus = &status
			}

			roles := FetchRoles(db, u.ID)
			view.Roles = roles.Strings()
			view.PrimaryRole = primaryRole(roles, hasDriver)
			views = append(views, view)
		}

		c.JSON(200, gin.H{"users": views})
	}
}

// GetUserDetail returns one account with profile, roles, driver record and
// recent rides
func GetUserDetail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid user ID"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		var profile models.Profile
		db.First(&profile, "user_id = ?", user.ID)

		var driver *models.Driver
		var liveAvailable *bool
		var d models.Driver
		if err := db.First(&d, "user_id = ?", user.ID).Error; err == nil {
			driver = &d
			// Redis mirror of the availability flag; absent when the driver
			// has not toggled recently.
			if avail, err := services.GetDriverAvailability(c.Request.Context(), d.UserID); err == nil {
				liveAvailable = &avail
			}
		}

		var rides []models.Ride
		db.Where("rider_id = ? OR driver_id = ?", user.ID, user.ID).
			Order("created_at desc").Limit(20).Find(&rides)

		c.JSON(200, gin.H{
			"user":          user,
			"profile":       profile,
			"roles":         FetchRoles(db, user.ID).Strings(),
			"driver":        driver,
			"liveAvailable": liveAvailable,
			"rides":         rides,
		})
	}
}

// DeleteUser removes an account and its dependent rows in one transaction.
// Rides and payments are kept for the record; only identity rows go.
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid user ID"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserRole{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Driver{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Profile{}).Error; err != nil {
				return err
			}
			return tx.Delete(&user).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete user"})
			return
		}

		c.JSON(200, gin.H{"message": "User deleted"})
	}
}

// BanUser grants the banned role, which blocks login. Idempotent.
func BanUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid user ID"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		if err := GrantRole(db, user.ID, models.RoleBanned); err != nil {
			c.JSON(500, gin.H{"error": "Failed to ban user"})
			return
		}

		c.JSON(200, gin.H{"message": "User banned"})
	}
}

// GetStats summarizes the system for the admin dashboard
func GetStats(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userCount, pendingDrivers, activeRides, pendingPayments int64
		db.Model(&models.User{}).Count(&userCount)
		db.Model(&models.Driver{}).Where("approval_status = ?", models.DriverStatusPending).Count(&pendingDrivers)
		db.Model(&models.Ride{}).Where("status NOT IN ?", []models.RideStatus{models.RideStatusCompleted, models.RideStatusCancelled}).Count(&activeRides)
		db.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusPending).Count(&pendingPayments)

		c.JSON(200, gin.H{
			"users":            userCount,
			"pendingDrivers":   pendingDrivers,
			"activeRides":      activeRides,
			"pendingPayments":  pendingPayments,
			"connectedClients": hub.GetConnectedClients(),
		})
	}
}

// GetPayments lists the most recent payments across all users
func GetPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payments []models.Payment
		if err := db.Preload("Ride").Preload("Payer").
			Order("created_at desc").Limit(50).Find(&payments).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load payments"})
			return
		}

		c.JSON(200, gin.H{"payments": payments})
	}
}

// SetPaymentStatus moves a payment to any valid status. Unlike ride
// transitions this is deliberately unconstrained so an operator can
// correct mistakes in either direction.
func SetPaymentStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		paymentID, err := strconv.ParseUint(c.Param("paymentId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid payment ID"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if !models.ValidPaymentStatus(models.PaymentStatus(input.Status)) {
			c.JSON(400, gin.H{"error": "Unknown payment status"})
			return
		}

		var payment models.Payment
		if err := db.First(&payment, paymentID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Payment not found"})
			return
		}

		if err := db.Model(&payment).Update("status", models.PaymentStatus(input.Status)).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update payment"})
			return
		}

		hub.NotifyPaymentEvent(services.PaymentEvent{
			PaymentID: payment.ID,
			RideID:    payment.RideID,
			Status:    input.Status,
		}, payment.PayerID)

		c.JSON(200, gin.H{"message": "Payment status updated"})
	}
}

// SetFinalFare corrects the recorded fare of a completed ride. This is the
// only mutation allowed on a completed ride; the conditional update keeps
// it that way.
func SetFinalFare(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideID, err := strconv.ParseUint(c.Param("rideId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid ride ID"})
			return
		}

		var input struct {
			FinalFare float64 `json:"finalFare" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if input.FinalFare < 0 {
			c.JSON(400, gin.H{"error": "finalFare must not be negative"})
			return
		}

		result := db.Model(&models.Ride{}).
			Where("id = ? AND status = ?", rideID, models.RideStatusCompleted).
			Update("final_fare", input.FinalFare)
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to update fare"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(404, gin.H{"error": "Completed ride not found"})
			return
		}

		c.JSON(200, gin.H{"message": "Final fare updated"})
	}
}
