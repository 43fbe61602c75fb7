package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role is a profile role. Roles gate which sections of the admin panel a
// profile can reach (see pkg/session).
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleSalesCoordinator Role = "sales_coordinator"
	RoleReviewer         Role = "reviewer"
	RoleBDM              Role = "bdm"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSalesCoordinator, RoleReviewer, RoleBDM:
		return true
	}
	return false
}

// LeadStatus is the review status of an auto or final lead.
type LeadStatus string

const (
	LeadStatusGenerated LeadStatus = "generated"
	LeadStatusReviewing LeadStatus = "reviewing"
	LeadStatusApproved  LeadStatus = "approved"
	LeadStatusRejected  LeadStatus = "rejected"
	LeadStatusContacted LeadStatus = "contacted"
)

// CampaignStatus is the lifecycle status of a campaign. Campaigns are created
// scheduled, advance to active when they generate leads, may be paused, and
// never auto-complete.
type CampaignStatus string

const (
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// RecurrencePattern is how often a recurring campaign re-runs.
type RecurrencePattern string

const (
	RecurrenceWeekly    RecurrencePattern = "weekly"
	RecurrenceMonthly   RecurrencePattern = "monthly"
	RecurrenceQuarterly RecurrencePattern = "quarterly"
)

// Priority is the follow-up priority of a final lead.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// LeadType discriminates which table a lead note is attached to, since auto
// and final leads are stored separately.
type LeadType string

const (
	LeadTypeAuto  LeadType = "auto"
	LeadTypeFinal LeadType = "final"
)

// ActivityType is the kind of action recorded in the activity log.
type ActivityType string

const (
	ActivityLogin   ActivityType = "login"
	ActivityLogout  ActivityType = "logout"
	ActivityCreate  ActivityType = "create"
	ActivityUpdate  ActivityType = "update"
	ActivityDelete  ActivityType = "delete"
	ActivityApprove ActivityType = "approve"
	ActivityReject  ActivityType = "reject"
	ActivityExport  ActivityType = "export"
)

// StringList is a []string stored as a JSON column. Used for product/campaign
// keywords and matched-keyword lists so the same model works on Postgres and
// the SQLite test database.
type StringList []string

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(s))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(s))
	}
	return fmt.Errorf("cannot scan %T into StringList", src)
}

// JSONMap is a map[string]any stored as a JSON column (raw payloads, log
// metadata).
type JSONMap map[string]any

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string]any(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*map[string]any)(m))
	case string:
		return json.Unmarshal([]byte(v), (*map[string]any)(m))
	}
	return fmt.Errorf("cannot scan %T into JSONMap", src)
}
