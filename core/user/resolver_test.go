package user

import (
	"testing"

	"github.com/stephaniewilkinson/siskiyou/core"
)

func newTestResolver() *Resolver {
	return NewResolver(core.SchoolConfig{
		Name:        "Siskiyou School",
		EmailDomain: "@siskiyouschool.org",
		AdminEmails: []string{
			"what.happens@gmail.com",
			"kristin.beers@siskiyouschool.org",
		},
	})
}

func TestResolver_Resolve(t *testing.T) {
	resolver := newTestResolver()

	tests := []struct {
		name          string
		email         string
		requestedRole string
		wantRole      string
		wantApproved  bool
	}{
		{
			name: "allow-listed email is admin", email: "what.happens@gmail.com",
			wantRole: RoleAdmin, wantApproved: true,
		},
		{
			name: "allow-list match is case-insensitive", email: "What.Happens@Gmail.com",
			wantRole: RoleAdmin, wantApproved: true,
		},
		{
			name: "allow-list beats requested role", email: "what.happens@gmail.com", requestedRole: RoleStudent,
			wantRole: RoleAdmin, wantApproved: true,
		},
		{
			name: "institutional email is teacher", email: "jane.wilson@siskiyouschool.org",
			wantRole: RoleTeacher, wantApproved: true,
		},
		{
			name: "institutional match is case-insensitive", email: "Jane.Wilson@SiskiyouSchool.ORG",
			wantRole: RoleTeacher, wantApproved: true,
		},
		{
			name: "institutional email overrides requested parent", email: "jane.wilson@siskiyouschool.org", requestedRole: RoleParent,
			wantRole: RoleTeacher, wantApproved: true,
		},
		{
			name: "institutional email keeps requested non-parent role", email: "kid@siskiyouschool.org", requestedRole: RoleStudent,
			wantRole: RoleStudent, wantApproved: true,
		},
		{
			name: "outside email defaults to unapproved parent", email: "john@example.com",
			wantRole: RoleParent, wantApproved: false,
		},
		{
			name: "outside email keeps requested role, unapproved", email: "sam@example.com", requestedRole: RoleStudent,
			wantRole: RoleStudent, wantApproved: false,
		},
		{
			name: "parent rep is not auto-approved", email: "rep@example.com", requestedRole: RoleParentRep,
			wantRole: RoleParentRep, wantApproved: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, approved := resolver.Resolve(tt.email, tt.requestedRole)
			if role != tt.wantRole {
				t.Errorf("Resolve() role = %q; want %q", role, tt.wantRole)
			}
			if approved != tt.wantApproved {
				t.Errorf("Resolve() approved = %v; want %v", approved, tt.wantApproved)
			}
		})
	}
}

func TestResolver_IsAdminEmail(t *testing.T) {
	resolver := newTestResolver()

	if !resolver.IsAdminEmail("KRISTIN.BEERS@siskiyouschool.org") {
		t.Error("IsAdminEmail() = false for an allow-listed email")
	}
	if resolver.IsAdminEmail("jane.wilson@siskiyouschool.org") {
		t.Error("IsAdminEmail() = true for a non-allow-listed email")
	}
}
