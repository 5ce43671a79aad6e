// Package authz holds the role and permission policy for the API.
//
// Roles are a closed set and every permission check goes through the
// policy table below, so the full access matrix is readable in one place
// instead of being scattered across handlers.
package authz

// Role is a user's access level. Stored on the user row; the database is
// the source of truth (a role can change when a parent claims an invite).
type Role string

const (
	RoleCoach  Role = "coach"
	RoleParent Role = "parent"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a stored role string onto the closed Role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCoach, RoleParent, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Permission names a capability a request may require.
type Permission string

const (
	PermManageRoster       Permission = "manage_roster"
	PermManageEvents       Permission = "manage_events"
	PermRecordPerformances Permission = "record_performances"
	PermMarkAttendance     Permission = "mark_attendance"
	PermIssueInvites       Permission = "issue_invites"
	PermViewLinkedStudents Permission = "view_linked_students"
	PermManageUsers        Permission = "manage_users"
)

// policy is the full role -> permission matrix. Admins additionally hold
// every coach permission so support staff can act on any account.
var policy = map[Role]map[Permission]bool{
	RoleCoach: {
		PermManageRoster:       true,
		PermManageEvents:       true,
		PermRecordPerformances: true,
		PermMarkAttendance:     true,
		PermIssueInvites:       true,
	},
	RoleParent: {
		PermViewLinkedStudents: true,
	},
	RoleAdmin: {
		PermManageRoster:       true,
		PermManageEvents:       true,
		PermRecordPerformances: true,
		PermMarkAttendance:     true,
		PermIssueInvites:       true,
		PermManageUsers:        true,
	},
}

// Can reports whether the role holds the permission. Unknown roles hold
// nothing.
func Can(r Role, p Permission) bool {
	perms, ok := policy[r]
	if !ok {
		return false
	}
	return perms[p]
}
