package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/habalhub/habal-backend/internal/middleware"
	"github.com/habalhub/habal-backend/internal/models"
	"github.com/habalhub/habal-backend/internal/services"
	"github.com/habalhub/habal-backend/pkg/utils"
)

type BookRideInput struct {
	PickupAddress     string  `json:"pickupAddress" binding:"required"`
	DropoffAddress    string  `json:"dropoffAddress" binding:"required"`
	ScheduledAt       string  `json:"scheduledAt"`
	DistanceKm        float64 `json:"distanceKm" binding:"required"`
	PreferredDriverID *uint   `json:"preferredDriverId"`
}

// pickAutoDriver selects the driver a new booking is assigned to. A
// preferred driver wins only if still present in the directory snapshot;
// otherwise the first directory entry is taken, or nil when the directory
// is empty and the ride stays requested.
func pickAutoDriver(preferred *uint, directory []models.Driver) *uint {
	if preferred != nil {
		for _, d := range directory {
			if d.UserID == *preferred {
				return preferred
			}
		}
		return nil
	}
	if len(directory) > 0 {
		id := directory[0].UserID
		return &id
	}
	return nil
}

// BookRide creates a ride request. The fare is computed server-side from
// the pricing settings; when no configuration exists the booking is
// blocked. The directory is re-queried at submit time so a driver who went
// offline after form load is not assigned.
func BookRide(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		riderId := c.GetUint("userId")

		var input BookRideInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.DistanceKm < utils.MinimumDistanceKm {
			c.JSON(400, gin.H{"error": "Distance must be at least 1 km"})
			return
		}

		var scheduledAt *time.Time
		if input.ScheduledAt != "" {
			t, err := time.Parse(time.RFC3339, input.ScheduledAt)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid scheduledAt, expected RFC3339"})
				return
			}
			scheduledAt = &t
		}

		pricing, err := LoadPricingSettings(db)
		if err != nil || pricing == nil {
			c.JSON(422, gin.H{"error": "Fare configuration unavailable, cannot quote this ride"})
			return
		}
		fare := utils.EstimateFare(pricing, input.DistanceKm)

		directory, err := AvailableDrivers(db)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to load available drivers"})
			return
		}
		driverID := pickAutoDriver(input.PreferredDriverID, directory)

		status := models.RideStatusRequested
		if driverID != nil {
			status = models.RideStatusAssigned
		}

		// Coordinates are parsed out of the address text; malformed input
		// just means no coordinates.
		pickupCoords := utils.ParseLatLng(input.PickupAddress)
		dropoffCoords := utils.ParseLatLng(input.DropoffAddress)

		ride := models.Ride{
			RiderID:             riderId,
			DriverID:            driverID,
			PickupAddress:       input.PickupAddress,
			DropoffAddress:      input.DropoffAddress,
			ScheduledAt:         scheduledAt,
			EstimatedDistanceKm: input.DistanceKm,
			EstimatedFare:       fare,
			Status:              status,
		}
		if pickupCoords != nil {
			ride.PickupLat = &pickupCoords.Lat
			ride.PickupLng = &pickupCoords.Lng
		}
		if dropoffCoords != nil {
			ride.DropoffLat = &dropoffCoords.Lat
			ride.DropoffLng = &dropoffCoords.Lng
		}

		if err := db.Create(&ride).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create ride"})
			return
		}

		message := "Ride requested. We sent your request to drivers."
		if driverID != nil {
			message = "A driver has been assigned. Awaiting acceptance."
			hub.NotifyRideEvent(services.RideEvent{
				RideID:   ride.ID,
				Status:   string(ride.Status),
				DriverID: driverID,
				Message:  "New ride assigned to you",
			}, *driverID)
		}

		c.JSON(201, gin.H{
			"message":       message,
			"rideId":        ride.ID,
			"status":        ride.Status,
			"estimatedFare": ride.EstimatedFare,
			"driverId":      ride.DriverID,
		})
	}
}

// GetMyRides lists the caller's rides as rider, newest first
func GetMyRides(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		riderId := c.GetUint("userId")

		var rides []models.Ride
		if err := db.Where("rider_id = ?", riderId).Order("created_at desc").Find(&rides).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load rides"})
			return
		}

		c.JSON(200, gin.H{"rides": rides})
	}
}

// GetRide returns one ride, visible to its rider, its driver, or an admin
func GetRide(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

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

		isParty := ride.RiderID == userId || (ride.DriverID != nil && *ride.DriverID == userId)
		if !isParty && !middleware.HasRole(c, string(models.RoleAdmin)) {
			c.JSON(403, gin.H{"error": "Unauthorized to view this ride"})
			return
		}

		c.JSON(200, ride)
	}
}

// CancelRide cancels a non-terminal ride. The terminal guard rides in the
// WHERE clause; a ride that completed or was already cancelled in the
// meantime matches zero rows and the caller is told to refresh.
func CancelRide(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

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

		if ride.RiderID != userId && !middleware.HasRole(c, string(models.RoleAdmin)) {
			c.JSON(403, gin.H{"error": "Unauthorized to cancel this ride"})
			return
		}

		result := db.Model(&models.Ride{}).
			Where("id = ? AND status NOT IN ?", ride.ID, []models.RideStatus{models.RideStatusCompleted, models.RideStatusCancelled}).
			Update("status", models.RideStatusCancelled)
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to cancel ride"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(409, gin.H{"error": "Ride state changed, please refresh"})
			return
		}

		notifyRideParties(hub, &ride, models.RideStatusCancelled, "Ride cancelled")

		c.JSON(200, gin.H{
			"message": "Ride cancelled successfully",
			"rideId":  ride.ID,
			"status":  models.RideStatusCancelled,
		})
	}
}

// EstimateFare quotes a fare without creating a ride. Distance comes from
// the query, or is derived with the haversine formula when both coordinate
// pairs parse.
func EstimateFare(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		pricing, err := LoadPricingSettings(db)
		if err != nil || pricing == nil {
			c.JSON(422, gin.H{"error": "Fare configuration unavailable"})
			return
		}

		distanceKm := 0.0
		if raw := c.Query("distance_km"); raw != "" {
			distanceKm, err = strconv.ParseFloat(raw, 64)
			if err != nil || distanceKm < utils.MinimumDistanceKm {
				c.JSON(400, gin.H{"error": "distance_km must be a number >= 1"})
				return
			}
		} else {
			pickup := utils.ParseLatLng(c.Query("pickup"))
			dropoff := utils.ParseLatLng(c.Query("dropoff"))
			if pickup == nil || dropoff == nil {
				c.JSON(400, gin.H{"error": "Provide distance_km or pickup and dropoff coordinates"})
				return
			}
			distanceKm = utils.HaversineDistance(pickup.Lat, pickup.Lng, dropoff.Lat, dropoff.Lng)
			if distanceKm < utils.MinimumDistanceKm {
				distanceKm = utils.MinimumDistanceKm
			}
		}

		c.JSON(200, gin.H{
			"distanceKm":    distanceKm,
			"estimatedFare": utils.EstimateFare(pricing, distanceKm),
		})
	}
}

// notifyRideParties pushes a lifecycle event to the rider and, when
// assigned, the driver.
func notifyRideParties(hub *services.Hub, ride *models.Ride, status models.RideStatus, message string) {
	event := services.RideEvent{
		RideID:   ride.ID,
		Status:   string(status),
		DriverID: ride.DriverID,
		Message:  message,
	}
	if ride.DriverID != nil {
		hub.NotifyRideEvent(event, ride.RiderID, *ride.DriverID)
	} else {
		hub.NotifyRideEvent(event, ride.RiderID)
	}
}
