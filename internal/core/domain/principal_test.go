package domain

import "testing"

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleEmployee, RoleClient} {
		if !r.Valid() {
			t.Fatalf("%q should be valid", r)
		}
	}
	for _, r := range []Role{"", "administrator", "Admin", "customer"} {
		if r.Valid() {
			t.Fatalf("%q should be invalid", r)
		}
	}
}
