package authz

import "testing"

func TestPermissionMatrix(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleCoach, PermManageRoster, true},
		{RoleCoach, PermManageEvents, true},
		{RoleCoach, PermRecordPerformances, true},
		{RoleCoach, PermMarkAttendance, true},
		{RoleCoach, PermIssueInvites, true},
		{RoleCoach, PermViewLinkedStudents, false},
		{RoleCoach, PermManageUsers, false},

		{RoleParent, PermViewLinkedStudents, true},
		{RoleParent, PermManageRoster, false},
		{RoleParent, PermManageEvents, false},
		{RoleParent, PermRecordPerformances, false},
		{RoleParent, PermMarkAttendance, false},
		{RoleParent, PermIssueInvites, false},
		{RoleParent, PermManageUsers, false},

		{RoleAdmin, PermManageRoster, true},
		{RoleAdmin, PermManageEvents, true},
		{RoleAdmin, PermManageUsers, true},
		{RoleAdmin, PermViewLinkedStudents, false},
	}

	for _, tt := range tests {
		if got := Can(tt.role, tt.perm); got != tt.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestUnknownRoleHoldsNothing(t *testing.T) {
	perms := []Permission{
		PermManageRoster, PermManageEvents, PermRecordPerformances,
		PermMarkAttendance, PermIssueInvites, PermViewLinkedStudents,
		PermManageUsers,
	}
	for _, p := range perms {
		if Can(Role("superuser"), p) {
			t.Errorf("unknown role granted %s", p)
		}
		if Can(Role(""), p) {
			t.Errorf("empty role granted %s", p)
		}
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in    string
		want  Role
		valid bool
	}{
		{"coach", RoleCoach, true},
		{"parent", RoleParent, true},
		{"admin", RoleAdmin, true},
		{"Coach", "", false},
		{"root", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		if ok != tt.valid || got != tt.want {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.valid)
		}
	}
}
