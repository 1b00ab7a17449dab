package models

import "strconv"

// Identity 從已驗證 token 的 claims 解析出的身份
// AccountID is nil for anonymous callers or tokens without a numeric
// userId claim. RoleName is the raw claim string; resolving it against
// the role hierarchy is ParseRole's job, not the resolver's.
type Identity struct {
	AccountID *uint  `json:"account_id"`
	RoleName  string `json:"role_name"`
}

// IdentityFromClaims extracts the account id and role name from a
// verified claim set. Pure function; never errors, absence just yields
// an anonymous identity.
func IdentityFromClaims(claims map[string]interface{}) Identity {
	var identity Identity

	switch v := claims["userId"].(type) {
	case string:
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			uid := uint(id)
			identity.AccountID = &uid
		}
	case float64:
		if v >= 0 {
			uid := uint(v)
			identity.AccountID = &uid
		}
	}

	if role, ok := claims["role"].(string); ok {
		identity.RoleName = role
	}
	return identity
}

// ResolvedRole validates the raw role claim. nil means the caller must
// be treated as unauthenticated.
func (i Identity) ResolvedRole() *Role {
	role, ok := ParseRole(i.RoleName)
	if !ok {
		return nil
	}
	return &role
}
