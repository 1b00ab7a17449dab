package models

import "testing"

func TestIdentityFromClaims(t *testing.T) {
	cases := []struct {
		name     string
		claims   map[string]interface{}
		wantID   *uint
		wantRole string
	}{
		{
			name:     "string id",
			claims:   map[string]interface{}{"userId": "42", "role": "User"},
			wantID:   uintPtr(42),
			wantRole: "User",
		},
		{
			name:     "numeric id",
			claims:   map[string]interface{}{"userId": float64(8), "role": "Admin"},
			wantID:   uintPtr(8),
			wantRole: "Admin",
		},
		{
			name:     "malformed id yields anonymous account",
			claims:   map[string]interface{}{"userId": "abc", "role": "User"},
			wantID:   nil,
			wantRole: "User",
		},
		{
			name:     "negative numeric id dropped",
			claims:   map[string]interface{}{"userId": float64(-1), "role": "User"},
			wantID:   nil,
			wantRole: "User",
		},
		{
			name:     "missing claims",
			claims:   map[string]interface{}{},
			wantID:   nil,
			wantRole: "",
		},
	}
	for _, tc := range cases {
		identity := IdentityFromClaims(tc.claims)
		switch {
		case tc.wantID == nil && identity.AccountID != nil:
			t.Errorf("%s: account id = %d, want nil", tc.name, *identity.AccountID)
		case tc.wantID != nil && (identity.AccountID == nil || *identity.AccountID != *tc.wantID):
			t.Errorf("%s: account id = %v, want %d", tc.name, identity.AccountID, *tc.wantID)
		}
		if identity.RoleName != tc.wantRole {
			t.Errorf("%s: role name = %q, want %q", tc.name, identity.RoleName, tc.wantRole)
		}
	}
}

func TestResolvedRole(t *testing.T) {
	valid := Identity{RoleName: "Moderator"}
	if role := valid.ResolvedRole(); role == nil || *role != RoleModerator {
		t.Fatalf("ResolvedRole() = %v, want Moderator", role)
	}

	// 不認得的角色名字不降級成 Guest，直接視為無角色
	for _, name := range []string{"", "Super", "user"} {
		bad := Identity{RoleName: name}
		if role := bad.ResolvedRole(); role != nil {
			t.Fatalf("ResolvedRole(%q) = %v, want nil", name, *role)
		}
	}
}

func uintPtr(v uint) *uint { return &v }
