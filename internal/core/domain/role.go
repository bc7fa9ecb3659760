package domain

import "slices"

// Role is the closed set of staff roles.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleEditor}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

// ParseRole returns the role named s, or false if s is not a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Permission names a guarded operation.
type Permission string

const (
	PermArticlesRead   Permission = "articles.read"
	PermArticlesWrite  Permission = "articles.write"
	PermArticlesDelete Permission = "articles.delete"
	PermUsersManage    Permission = "users.manage"
	PermSettingsManage Permission = "settings.manage"
	PermMediaUpload    Permission = "media.upload"
	PermMediaSettings  Permission = "media.settings"
	PermMediaDelete    Permission = "media.delete"
	PermAdminDashboard Permission = "admin.dashboard"
)

// Permissions is the allowed-roles table for every guarded operation.
var Permissions = map[Permission][]Role{
	PermArticlesRead:   {RoleAdmin, RoleEditor},
	PermArticlesWrite:  {RoleAdmin, RoleEditor},
	PermArticlesDelete: {RoleAdmin},
	PermUsersManage:    {RoleAdmin},
	PermSettingsManage: {RoleAdmin},
	PermMediaUpload:    {RoleAdmin, RoleEditor},
	PermMediaSettings:  {RoleAdmin},
	PermMediaDelete:    {RoleAdmin},
	PermAdminDashboard: {RoleAdmin},
}

// Allowed reports whether role may perform perm. Unknown permissions allow nobody.
func Allowed(perm Permission, role Role) bool {
	return slices.Contains(Permissions[perm], role)
}
