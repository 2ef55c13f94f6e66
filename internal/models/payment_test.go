package models

import "testing"

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentMethodGCash, PaymentMethodPayMaya, PaymentMethodCOD} {
		if !ValidPaymentMethod(m) {
			t.Errorf("ValidPaymentMethod(%s) = false", m)
		}
	}
	for _, m := range []PaymentMethod{"card", "cash", "", "GCASH"} {
		if ValidPaymentMethod(m) {
			t.Errorf("ValidPaymentMethod(%q) = true", m)
		}
	}
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded} {
		if !ValidPaymentStatus(s) {
			t.Errorf("ValidPaymentStatus(%s) = false", s)
		}
	}
	for _, s := range []PaymentStatus{"settled", "", "PAID"} {
		if ValidPaymentStatus(s) {
			t.Errorf("ValidPaymentStatus(%q) = true", s)
		}
	}
}

func TestRoleSet(t *testing.T) {
	roles := RoleSet{RoleRider, RoleDriver}

	if !roles.Has(RoleDriver) {
		t.Error("Has(driver) = false")
	}
	if roles.Has(RoleAdmin) {
		t.Error("Has(admin) = true")
	}

	got := roles.Strings()
	want := []string{"rider", "driver"}
	if len(got) != len(want) {
		t.Fatalf("Strings() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Strings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
