package session

import (
	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/domain"
)

// Section identifies an area of the admin panel guarded by role checks.
type Section string

const (
	SectionDashboard  Section = "dashboard"
	SectionCampaigns  Section = "campaigns"
	SectionAutoLeads  Section = "auto_leads"
	SectionFinalLeads Section = "final_leads"
	SectionProducts   Section = "products"
	SectionUsers      Section = "users"
	SectionActivity   Section = "activity"
)

// sectionRoles maps each section to the roles allowed to access it.
var sectionRoles = map[Section][]domain.Role{
	SectionDashboard:  {domain.RoleAdmin, domain.RoleSalesCoordinator, domain.RoleReviewer, domain.RoleBDM},
	SectionCampaigns:  {domain.RoleAdmin, domain.RoleSalesCoordinator, domain.RoleReviewer},
	SectionAutoLeads:  {domain.RoleAdmin, domain.RoleSalesCoordinator, domain.RoleReviewer},
	SectionFinalLeads: {domain.RoleAdmin, domain.RoleSalesCoordinator, domain.RoleReviewer, domain.RoleBDM},
	SectionProducts:   {domain.RoleAdmin},
	SectionUsers:      {domain.RoleAdmin},
	SectionActivity:   {domain.RoleAdmin},
}

// Session is the authenticated caller attached to a request after the JWT
// middleware has validated the token.
type Session struct {
	UserID uuid.UUID
	Email  string
	Role   domain.Role
	Token  string
}

// HasPermission reports whether the session's role may access the section.
func (s *Session) HasPermission(section Section) bool {
	if s == nil {
		return false
	}
	for _, role := range sectionRoles[section] {
		if s.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the session belongs to an admin user.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == domain.RoleAdmin
}

// AllowedSections returns the sections the session's role may access.
func (s *Session) AllowedSections() []Section {
	if s == nil {
		return nil
	}
	sections := []Section{
		SectionDashboard, SectionCampaigns, SectionAutoLeads,
		SectionFinalLeads, SectionProducts, SectionUsers, SectionActivity,
	}
	var allowed []Section
	for _, sec := range sections {
		if s.HasPermission(sec) {
			allowed = append(allowed, sec)
		}
	}
	return allowed
}
