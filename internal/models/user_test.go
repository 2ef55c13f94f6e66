package models

import "testing"

func TestPasswordHashing(t *testing.T) {
	user := User{Password: "habal123"}

	if err := user.HashPassword(); err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if user.PasswordHash == "" || user.PasswordHash == "habal123" {
		t.Fatal("password was not hashed")
	}

	if err := user.CheckPassword("habal123"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := user.CheckPassword("wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestCanToggleAvailability(t *testing.T) {
	tests := []struct {
		status DriverApprovalStatus
		want   bool
	}{
		{DriverStatusPending, false},
		{DriverStatusRejected, false},
		{DriverStatusApproved, true},
	}
	for _, tt := range tests {
		d := Driver{ApprovalStatus: tt.status}
		if got := d.CanToggleAvailability(); got != tt.want {
			t.Errorf("CanToggleAvailability with %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}
