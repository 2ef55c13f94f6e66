package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/habalhub/habal-backend/internal/middleware"
	"github.com/habalhub/habal-backend/internal/models"
	"github.com/habalhub/habal-backend/internal/services"
)

// Driver-side ride lifecycle. Every transition is a conditional update
// carrying the expected prior status (and driver binding) in its WHERE
// clause. A zero-row result means the ride moved on under a concurrent
// writer and is reported as a conflict, never as success.

// GetDriverRides lists rides assigned to the calling driver, newest first
func GetDriverRides(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverId := c.GetUint("userId")

		if !middleware.HasRole(c, string(models.RoleDriver)) {
			c.JSON(403, gin.H{"error": "Only drivers can view assigned rides"})
			return
		}

		var rides []models.Ride
		if err := db.Where("driver_id = ?", driverId).Order("created_at desc").Find(&rides).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load rides"})
			return
		}

		c.JSON(200, gin.H{"rides": rides})
	}
}

// AcceptRide moves an assigned ride to accepted, or lets an approved
// driver claim a still-unassigned requested ride directly.
func AcceptRide(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverId := c.GetUint("userId")

		if !middleware.HasRole(c, string(models.RoleDriver)) {
			c.JSON(403, gin.H{"error": "Only drivers can accept rides"})
			return
		}

		rideID, err := strconv.ParseUint(c.Param("rideId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid ride ID"})
			return
		}

		var ride models.Ride
		if err := db.First(&ride, rideID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}

		var result *gorm.DB
		switch {
		case ride.DriverID != nil && *ride.DriverID == driverId:
			result = db.Model(&models.Ride{}).
				Where("id = ? AND status = ? AND driver_id = ?", ride.ID, models.RideStatusAssigned, driverId).
				Update("status", models.RideStatusAccepted)
		case ride.DriverID == nil:
			// Claiming an unassigned ride requires an approved driver row.
			var me models.Driver
			if err := db.Where("user_id = ? AND approval_status = ?", driverId, models.DriverStatusApproved).First(&me).Error; err != nil {
				c.JSON(403, gin.H{"error": "Only approved drivers can claim rides"})
				return
			}
			result = db.Model(&models.Ride{}).
				Where("id = ? AND status = ? AND driver_id IS NULL", ride.ID, models.RideStatusRequested).
				Updates(map[string]interface{}{
					"status":    models.RideStatusAccepted,
					"driver_id": driverId,
				})
		default:
			c.JSON(403, gin.H{"error": "Ride is assigned to another driver"})
			return
		}

		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to accept ride"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(409, gin.H{"error": "Ride state changed, please refresh"})
			return
		}

		ride.DriverID = &driverId
		notifyRideParties(hub, &ride, models.RideStatusAccepted, "Driver accepted your ride")
		services.PublishRideUpdate(context.Background(), ride.ID, models.RideStatusAccepted)

		c.JSON(200, gin.H{
			"message": "Ride accepted",
			"rideId":  ride.ID,
			"status":  models.RideStatusAccepted,
		})
	}
}

// RejectRide returns an assigned ride to the requested pool, clearing the
// driver reference so another driver can pick it up.
func RejectRide(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverId := c.GetUint("userId")

		if !middleware.HasRole(c, string(models.RoleDriver)) {
			c.JSON(403, gin.H{"error": "Only drivers can reject rides"})
			return
		}

		rideID, err := strconv.ParseUint(c.Param("rideId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid ride ID"})
			return
		}

		var ride models.Ride
		if err := db.First(&ride, rideID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}

		result := db.Model(&models.Ride{}).
			Where("id = ? AND status = ? AND driver_id = ?", ride.ID, models.RideStatusAssigned, driverId).
			Updates(map[string]interface{}{
				"status":    models.RideStatusRequested,
				"driver_id": nil,
			})
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to reject ride"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(409, gin.H{"error": "Ride state changed, please refresh"})
			return
		}

		hub.NotifyRideEvent(services.RideEvent{
			RideID:  ride.ID,
			Status:  string(models.RideStatusRequested),
			Message: "Driver declined, looking for another driver",
		}, ride.RiderID)

		c.JSON(200, gin.H{
			"message": "Ride rejected",
			"rideId":  ride.ID,
			"status":  models.RideStatusRequested,
		})
	}
}

// StartRide moves an accepted ride to in_progress
func StartRide(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverId := c.GetUint("userId")

		if !middleware.HasRole(c, string(models.RoleDriver)) {
			c.JSON(403, gin.H{"error": "Only drivers can start rides"})
			return
		}

		rideID, err := strconv.ParseUint(c.Param("rideId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid ride ID"})
			return
		}

		var ride models.Ride
		if err := db.First(&ride, rideID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}

		result := db.Model(&models.Ride{}).
			Where("id = ? AND status = ? AND driver_id = ?", ride.ID, models.RideStatusAccepted, driverId).
			Update("status", models.RideStatusInProgress)
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to start ride"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(409, gin.H{"error": "Ride state changed, please refresh"})
			return
		}

		notifyRideParties(hub, &ride, models.RideStatusInProgress, "Ride started")
		services.PublishRideUpdate(context.Background(), ride.ID, models.RideStatusInProgress)

		c.JSON(200, gin.H{
			"message": "Ride started",
			"rideId":  ride.ID,
			"status":  models.RideStatusInProgress,
		})
	}
}

// CompleteRide moves an in_progress ride to completed. Completion is only
// reachable from in_progress; an optional final fare may be recorded at
// the same time.
func CompleteRide(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverId := c.GetUint("userId")

		if !middleware.HasRole(c, string(models.RoleDriver)) {
			c.JSON(403, gin.H{"error": "Only drivers can complete rides"})
			return
		}

		rideID, err := strconv.ParseUint(c.Param("rideId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid ride ID"})
			return
		}

		var input struct {
			FinalFare *float64 `json:"finalFare"`
		}
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
		}
		if input.FinalFare != nil && *input.FinalFare < 0 {
			c.JSON(400, gin.H{"error": "finalFare must not be negative"})
			return
		}

		var ride models.Ride
		if err := db.First(&ride, rideID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}

		updates := map[string]interface{}{"status": models.RideStatusCompleted}
		if input.FinalFare != nil {
			updates["final_fare"] = *input.FinalFare
		}

		result := db.Model(&models.Ride{}).
			Where("id = ? AND status = ? AND driver_id = ?", ride.ID, models.RideStatusInProgress, driverId).
			Updates(updates)
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to complete ride"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(409, gin.H{"error": "Ride state changed, please refresh"})
			return
		}

		notifyRideParties(hub, &ride, models.RideStatusCompleted, "Ride completed")
		services.PublishRideUpdate(context.Background(), ride.ID, models.RideStatusCompleted)

		c.JSON(200, gin.H{
			"message": "Ride completed",
			"rideId":  ride.ID,
			"status":  models.RideStatusCompleted,
		})
	}
}
