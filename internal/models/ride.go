package models

import (
	"time"

	"gorm.io/gorm"
)

type RideStatus string

const (
	RideStatusRequested  RideStatus = "requested"
	RideStatusAssigned   RideStatus = "assigned"
	RideStatusAccepted   RideStatus = "accepted"
	RideStatusInProgress RideStatus = "in_progress"
	RideStatusCompleted  RideStatus = "completed"
	RideStatusCancelled  RideStatus = "cancelled"
)

// Ride is the central booking record. DriverID is null only while the ride
// is still in the requested state. Rows are never hard-deleted and become
// immutable after a terminal status, except for final_fare which an admin
// may still correct.
type Ride struct {
	gorm.Model
	RiderID             uint       `json:"riderId" gorm:"column:rider_id;not null"`
	DriverID            *uint      `json:"driverId" gorm:"column:driver_id"`
	PickupAddress       string     `json:"pickupAddress" gorm:"column:pickup_address"`
	PickupLat           *float64   `json:"pickupLat" gorm:"column:pickup_lat"`
	PickupLng           *float64   `json:"pickupLng" gorm:"column:pickup_lng"`
	DropoffAddress      string     `json:"dropoffAddress" gorm:"column:dropoff_address"`
	DropoffLat          *float64   `json:"dropoffLat" gorm:"column:dropoff_lat"`
	DropoffLng          *float64   `json:"dropoffLng" gorm:"column:dropoff_lng"`
	ScheduledAt         *time.Time `json:"scheduledAt" gorm:"column:scheduled_at"`
	EstimatedDistanceKm float64    `json:"estimatedDistanceKm" gorm:"column:estimated_distance_km"`
	EstimatedFare       float64    `json:"estimatedFare" gorm:"column:estimated_fare"`
	FinalFare           *float64   `json:"finalFare" gorm:"column:final_fare"`
	Status              RideStatus `json:"status" gorm:"column:status;not null;default:'requested'"`
	Rider               *User      `json:"rider,omitempty" gorm:"foreignKey:RiderID"`
	Driver              *User      `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
}

// TableName specifies the table name
func (Ride) TableName() string {
	return "rides"
}

// IsTerminal reports whether a ride in this status can still change state.
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// rideTransitions is the canonical lifecycle. Completion requires passing
// through in_progress; there is no accepted-to-completed shortcut.
var rideTransitions = map[RideStatus][]RideStatus{
	RideStatusRequested:  {RideStatusAssigned, RideStatusAccepted, RideStatusCancelled},
	RideStatusAssigned:   {RideStatusAccepted, RideStatusRequested, RideStatusCancelled},
	RideStatusAccepted:   {RideStatusInProgress, RideStatusCancelled},
	RideStatusInProgress: {RideStatusCompleted, RideStatusCancelled},
}

// CanTransition reports whether the lifecycle allows moving a ride from one
// status to another. Every write that performs such a move must still carry
// the expected prior status in its WHERE clause and check the affected-row
// count; this table only rejects requests that could never be valid.
func CanTransition(from, to RideStatus) bool {
	for _, next := range rideTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidRideStatus reports whether s is one of the declared statuses.
func ValidRideStatus(s RideStatus) bool {
	switch s {
	case RideStatusRequested, RideStatusAssigned, RideStatusAccepted,
		RideStatusInProgress, RideStatusCompleted, RideStatusCancelled:
		return true
	}
	return false
}

// FareDue is the amount a payment for this ride defaults to: the final fare
// when set, otherwise the estimate. The two are not forced to agree with
// recorded payments; operators may correct either independently.
func (r *Ride) FareDue() float64 {
	if r.FinalFare != nil {
		return *r.FinalFare
	}
	return r.EstimatedFare
}
