package models

import "errors"

// Role 權限等級，數值大小即權限高低
type Role int

const (
	RoleGuest     Role = 0
	RoleUser      Role = 1
	RoleModerator Role = 2
	RoleAdmin     Role = 3
)

var roleNames = map[Role]string{
	RoleGuest:     "Guest",
	RoleUser:      "User",
	RoleModerator: "Moderator",
	RoleAdmin:     "Admin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Unknown"
}

// ParseRole resolves a role claim string against the known hierarchy.
// Unknown names fail; callers must treat failure as unauthenticated,
// never as the lowest role.
func ParseRole(name string) (Role, bool) {
	for r, n := range roleNames {
		if n == name {
			return r, true
		}
	}
	return 0, false
}

var (
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrInsufficientPermission = errors.New("insufficient permission")
)

// AuthorizeMinimum checks a resolved role against the minimum required
// one. A nil role means the caller is anonymous or carried a malformed
// role claim; both deny the same way.
func AuthorizeMinimum(role *Role, required Role) error {
	if role == nil {
		return ErrUnauthenticated
	}
	if *role < required {
		return ErrInsufficientPermission
	}
	return nil
}

// CanModify 擁有者本人或版主/管理員可以修改
// This is the single ownership rule for posts and replies.
func CanModify(currentID uint, ownerID *uint, role Role) bool {
	if ownerID != nil && *ownerID == currentID {
		return true
	}
	return role >= RoleModerator
}
