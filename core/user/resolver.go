package user

import (
	"strings"

	"github.com/stephaniewilkinson/siskiyou/core"
)

// Resolver derives a new account's role and initial approval state from
// its email address. Trust is inferred from the address, never from the
// requested role: a parent cannot self-declare teacher or admin status.
type Resolver struct {
	adminEmails map[string]struct{}
	emailDomain string
}

func NewResolver(conf core.SchoolConfig) *Resolver {
	admins := make(map[string]struct{}, len(conf.AdminEmails))
	for _, email := range conf.AdminEmails {
		admins[core.CleanString(email, true /* lower */)] = struct{}{}
	}
	return &Resolver{
		adminEmails: admins,
		emailDomain: core.CleanString(conf.EmailDomain, true /* lower */),
	}
}

// IsAdminEmail reports whether email is on the administrator allow-list.
func (r *Resolver) IsAdminEmail(email string) bool {
	_, ok := r.adminEmails[core.CleanString(email, true /* lower */)]
	return ok
}

func (r *Resolver) isInstitutional(email string) bool {
	return strings.HasSuffix(core.CleanString(email, true /* lower */), r.emailDomain)
}

// Resolve returns the role and approval state for a signup.
// Allow-listed addresses become approved admins; institutional addresses
// are approved and become teachers unless a non-parent role was requested;
// everyone else gets the requested role (default parent), unapproved.
func (r *Resolver) Resolve(email, requestedRole string) (role string, approved bool) {
	role = core.CleanString(requestedRole, true /* lower */)
	if role == "" {
		role = RoleParent
	}

	if r.IsAdminEmail(email) {
		return RoleAdmin, true
	}
	if r.isInstitutional(email) {
		if role == RoleParent {
			role = RoleTeacher
		}
		return role, true
	}
	return role, false
}
