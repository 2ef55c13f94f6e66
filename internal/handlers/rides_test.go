package handlers

import (
	"testing"

	"github.com/habalhub/habal-backend/internal/models"
)

func driverWithUser(userID uint) models.Driver {
	return models.Driver{
		UserID:         userID,
		ApprovalStatus: models.DriverStatusApproved,
		IsAvailable:    true,
	}
}

func TestPickAutoDriver(t *testing.T) {
	uid := func(id uint) *uint { return &id }

	tests := []struct {
		name      string
		preferred *uint
		directory []models.Driver
		want      *uint
	}{
		{
			name:      "first directory entry when no preference",
			preferred: nil,
			directory: []models.Driver{driverWithUser(3), driverWithUser(5)},
			want:      uid(3),
		},
		{
			name:      "preferred driver still in directory",
			preferred: uid(5),
			directory: []models.Driver{driverWithUser(3), driverWithUser(5)},
			want:      uid(5),
		},
		{
			name:      "preferred driver went offline",
			preferred: uid(9),
			directory: []models.Driver{driverWithUser(3), driverWithUser(5)},
			want:      nil,
		},
		{
			name:      "empty directory",
			preferred: nil,
			directory: nil,
			want:      nil,
		},
		{
			name:      "preference with empty directory",
			preferred: uid(3),
			directory: nil,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pickAutoDriver(tt.preferred, tt.directory)
			switch {
			case got == nil && tt.want != nil:
				t.Errorf("pickAutoDriver = nil, want %d", *tt.want)
			case got != nil && tt.want == nil:
				t.Errorf("pickAutoDriver = %d, want nil", *got)
			case got != nil && tt.want != nil && *got != *tt.want:
				t.Errorf("pickAutoDriver = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestPrimaryRole(t *testing.T) {
	tests := []struct {
		name      string
		roles     models.RoleSet
		hasDriver bool
		want      string
	}{
		{"plain rider", models.RoleSet{models.RoleRider}, false, "rider"},
		{"explicit driver role", models.RoleSet{models.RoleRider, models.RoleDriver}, false, "driver"},
		{"approved driver row without role grant", models.RoleSet{models.RoleRider}, true, "driver"},
		{"admin outranks driver", models.RoleSet{models.RoleAdmin, models.RoleDriver}, true, "admin"},
		{"banned outranks everything", models.RoleSet{models.RoleBanned, models.RoleAdmin, models.RoleDriver}, true, "banned"},
		{"no roles at all", models.RoleSet{}, false, "rider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := primaryRole(tt.roles, tt.hasDriver); got != tt.want {
				t.Errorf("primaryRole(%v, %v) = %q, want %q", tt.roles, tt.hasDriver, got, tt.want)
			}
		})
	}
}
