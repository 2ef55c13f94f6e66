package models

import (
	"gorm.io/gorm"
)

type DriverApprovalStatus string

const (
	DriverStatusPending  DriverApprovalStatus = "pending"
	DriverStatusApproved DriverApprovalStatus = "approved"
	DriverStatusRejected DriverApprovalStatus = "rejected"
)

// Driver is a driver application and, once approved, the active driver
// record. Distinct from the user account: one user has at most one driver
// row. Approval transitions are admin-only; the availability flag belongs
// to the driver and may only be true while the record is approved.
type Driver struct {
	gorm.Model
	UserID         uint                 `json:"userId" gorm:"column:user_id;unique;not null"`
	VehicleMake    string               `json:"vehicleMake" gorm:"column:vehicle_make"`
	VehicleModel   string               `json:"vehicleModel" gorm:"column:vehicle_model"`
	PlateNumber    string               `json:"plateNumber" gorm:"column:plate_number"`
	LicenseNumber  string               `json:"licenseNumber" gorm:"column:license_number"`
	ORDocumentURL  string               `json:"orDocumentUrl" gorm:"column:or_document_url"`
	CRDocumentURL  string               `json:"crDocumentUrl" gorm:"column:cr_document_url"`
	ApprovalStatus DriverApprovalStatus `json:"approvalStatus" gorm:"column:approval_status;not null;default:'pending'"`
	IsAvailable    bool                 `json:"isAvailable" gorm:"column:is_available;not null;default:false"`
	User           *User                `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name
func (Driver) TableName() string {
	return "drivers"
}

// CanToggleAvailability reports whether a client-initiated availability
// change is allowed for the current approval status.
func (d *Driver) CanToggleAvailability() bool {
	return d.ApprovalStatus == DriverStatusApproved
}
