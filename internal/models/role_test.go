package models

import (
	"errors"
	"testing"
)

func TestRoleOrdering(t *testing.T) {
	ordered := []Role{RoleGuest, RoleUser, RoleModerator, RoleAdmin}
	for i := 1; i < len(ordered); i++ {
		if !(ordered[i-1] < ordered[i]) {
			t.Fatalf("%s should rank below %s", ordered[i-1], ordered[i])
		}
	}
}

func TestParseRoleRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleGuest, RoleUser, RoleModerator, RoleAdmin} {
		parsed, ok := ParseRole(role.String())
		if !ok || parsed != role {
			t.Fatalf("ParseRole(%q) = %v, %v, want %v, true", role.String(), parsed, ok, role)
		}
	}
}

func TestParseRoleRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"", "guest", "ADMIN", "SuperAdmin", "Unknown", "模組"} {
		if _, ok := ParseRole(name); ok {
			t.Fatalf("ParseRole(%q) succeeded, want failure", name)
		}
	}
}

func TestAuthorizeMinimum(t *testing.T) {
	// 沒有角色的呼叫者一律 401，即使要求的只是 Guest
	if err := AuthorizeMinimum(nil, RoleGuest); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("AuthorizeMinimum(nil, Guest) = %v, want ErrUnauthenticated", err)
	}

	all := []Role{RoleGuest, RoleUser, RoleModerator, RoleAdmin}
	for _, have := range all {
		for _, need := range all {
			have := have
			err := AuthorizeMinimum(&have, need)
			switch {
			case have >= need && err != nil:
				t.Fatalf("AuthorizeMinimum(%s, %s) = %v, want nil", have, need, err)
			case have < need && !errors.Is(err, ErrInsufficientPermission):
				t.Fatalf("AuthorizeMinimum(%s, %s) = %v, want ErrInsufficientPermission", have, need, err)
			}
		}
	}
}

func TestCanModify(t *testing.T) {
	owner := uint(7)
	cases := []struct {
		name      string
		currentID uint
		ownerID   *uint
		role      Role
		want      bool
	}{
		{"owner edits own", 7, &owner, RoleUser, true},
		{"stranger denied", 9, &owner, RoleUser, false},
		{"moderator overrides", 9, &owner, RoleModerator, true},
		{"admin overrides", 9, &owner, RoleAdmin, true},
		{"orphaned content needs moderator", 9, nil, RoleUser, false},
		{"orphaned content moderator ok", 9, nil, RoleModerator, true},
	}
	for _, tc := range cases {
		if got := CanModify(tc.currentID, tc.ownerID, tc.role); got != tc.want {
			t.Errorf("%s: CanModify(%d, %v, %s) = %v, want %v",
				tc.name, tc.currentID, tc.ownerID, tc.role, got, tc.want)
		}
	}
}
