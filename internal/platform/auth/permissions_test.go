package auth

import "testing"

func TestAllowed(t *testing.T) {
	cases := []struct {
		action string
		role   string
		want   bool
	}{
		{ActionQueueWrite, RoleNurse, true},
		{ActionQueueWrite, RoleDoctor, true},
		{ActionQueueWrite, RoleReceptionist, true},
		{ActionQueueWrite, RoleLabTech, false},
		{ActionQueueWrite, RolePharmacist, false},
		{ActionQueueRead, RoleLabTech, true},
		{ActionQueueDelete, RoleReceptionist, true},
		{ActionQueueDelete, RoleDoctor, false},
		{ActionVisitDelete, RoleReceptionist, false},
		{ActionStaffWrite, RoleDoctor, false},
		{ActionLabWrite, RoleLabTech, true},
		{ActionLabWrite, RoleNurse, false},
		{"unknown.action", RoleDoctor, false},
		{ActionQueueWrite, "janitor", false},
	}
	for _, tc := range cases {
		if got := Allowed(tc.action, tc.role); got != tc.want {
			t.Errorf("Allowed(%q, %q) = %v, want %v", tc.action, tc.role, got, tc.want)
		}
	}
}

func TestAdminAllowedEverything(t *testing.T) {
	for action := range permissions {
		if !Allowed(action, RoleAdmin) {
			t.Errorf("admin denied %q", action)
		}
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"nurse", RoleNurse, true},
		{"NURSE", RoleNurse, true},
		{"Lab_Tech", RoleLabTech, true},
		{"admin", RoleAdmin, true},
		{"janitor", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseRole(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
