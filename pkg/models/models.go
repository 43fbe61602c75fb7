package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/domain"
)

// ErrorResponse is the JSON body returned for every API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Pagination describes a page of results.
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// Auth

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  *domain.Profile `json:"user"`
}

type RegisterRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	FullName string      `json:"full_name" validate:"required"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     domain.Role `json:"role" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName *string      `json:"full_name,omitempty"`
	Role     *domain.Role `json:"role,omitempty"`
	IsActive *bool        `json:"is_active,omitempty"`
}

// Products

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords" validate:"required,min=1,dive,required"`
}

type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Keywords    *[]string `json:"keywords,omitempty" validate:"omitempty,min=1,dive,required"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

// Regions

type CreateRegionRequest struct {
	Name    string `json:"name" validate:"required"`
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
}

type UpdateRegionRequest struct {
	Name     *string `json:"name,omitempty"`
	Country  *string `json:"country,omitempty"`
	State    *string `json:"state,omitempty"`
	City     *string `json:"city,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Campaigns

type CreateCampaignRequest struct {
	Name              string                   `json:"name" validate:"required"`
	Description       string                   `json:"description"`
	ProductID         uuid.UUID                `json:"product_id" validate:"required"`
	RegionID          uuid.UUID                `json:"region_id" validate:"required"`
	ScheduledAt       *time.Time               `json:"scheduled_at,omitempty"`
	IsRecurring       bool                     `json:"is_recurring"`
	RecurrencePattern domain.RecurrencePattern `json:"recurrence_pattern,omitempty"`
}

type UpdateCampaignRequest struct {
	Name              *string                   `json:"name,omitempty"`
	Description       *string                   `json:"description,omitempty"`
	ProductID         *uuid.UUID                `json:"product_id,omitempty"`
	RegionID          *uuid.UUID                `json:"region_id,omitempty"`
	Status            *domain.CampaignStatus    `json:"status,omitempty"`
	ScheduledAt       *time.Time                `json:"scheduled_at,omitempty"`
	IsRecurring       *bool                     `json:"is_recurring,omitempty"`
	RecurrencePattern *domain.RecurrencePattern `json:"recurrence_pattern,omitempty"`
}

type GenerateLeadsResponse struct {
	Campaign *domain.Campaign  `json:"campaign"`
	Leads    []domain.AutoLead `json:"leads"`
}

// Auto leads

// LeadFilters narrows auto lead listings. An empty Statuses slice places no
// status constraint; Search is matched case-insensitively as a substring of
// company name, email or industry.
type LeadFilters struct {
	CampaignID *uuid.UUID          `json:"campaign_id,omitempty"`
	Statuses   []domain.LeadStatus `json:"statuses,omitempty"`
	Search     string              `json:"search,omitempty"`
	MinScore   *float64            `json:"min_score,omitempty"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
}

type UpdateAutoLeadRequest struct {
	Status     *domain.LeadStatus `json:"status,omitempty"`
	IsSelected *bool              `json:"is_selected,omitempty"`
}

type PromoteLeadsRequest struct {
	LeadIDs []uuid.UUID `json:"lead_ids" validate:"required"`
}

type AutoLeadListResponse struct {
	Leads      []domain.AutoLead `json:"leads"`
	Pagination Pagination        `json:"pagination"`
}

// Final leads

type FinalLeadFilters struct {
	Statuses   []domain.LeadStatus `json:"statuses,omitempty"`
	Priority   *domain.Priority    `json:"priority,omitempty"`
	AssignedTo *uuid.UUID          `json:"assigned_to,omitempty"`
	Search     string              `json:"search,omitempty"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
}

type CreateFinalLeadRequest struct {
	CompanyName   string          `json:"company_name" validate:"required"`
	Website       string          `json:"website"`
	LinkedinURL   string          `json:"linkedin_url"`
	Email         string          `json:"email" validate:"omitempty,email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	Industry      string          `json:"industry"`
	EmployeeCount string          `json:"employee_count"`
	RevenueRange  string          `json:"revenue_range"`
	Priority      domain.Priority `json:"priority"`
	Notes         string          `json:"notes"`
}

type UpdateFinalLeadRequest struct {
	Status                *domain.LeadStatus `json:"status,omitempty"`
	Priority              *domain.Priority   `json:"priority,omitempty"`
	AssignedTo            *uuid.UUID         `json:"assigned_to,omitempty"`
	LastContactDate       *time.Time         `json:"last_contact_date,omitempty"`
	NextFollowUp          *time.Time         `json:"next_follow_up,omitempty"`
	ConversionProbability *float64           `json:"conversion_probability,omitempty"`
	Notes                 *string            `json:"notes,omitempty"`
}

type FinalLeadListResponse struct {
	Leads      []domain.FinalLead `json:"leads"`
	Pagination Pagination         `json:"pagination"`
}

// Notes and tags

type CreateNoteRequest struct {
	LeadID     uuid.UUID       `json:"lead_id" validate:"required"`
	LeadType   domain.LeadType `json:"lead_type" validate:"required,oneof=auto final"`
	Note       string          `json:"note" validate:"required"`
	IsInternal bool            `json:"is_internal"`
}

type CreateTagRequest struct {
	Name        string `json:"name" validate:"required"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Description string `json:"description"`
}

// Activity log

type ActivityFilters struct {
	UserID       *uuid.UUID           `json:"user_id,omitempty"`
	ActivityType *domain.ActivityType `json:"activity_type,omitempty"`
	EntityType   string               `json:"entity_type,omitempty"`
	From         *time.Time           `json:"from,omitempty"`
	To           *time.Time           `json:"to,omitempty"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
}

type ActivityListResponse struct {
	Activities []domain.ActivityLog `json:"activities"`
	Pagination Pagination           `json:"pagination"`
}

// Dashboard

type MonthlyStat struct {
	Month     string `json:"month"` // YYYY-MM
	Generated int64  `json:"generated"`
	Approved  int64  `json:"approved"`
}

type RegionStat struct {
	RegionID   uuid.UUID `json:"region_id"`
	RegionName string    `json:"region_name"`
	LeadCount  int64     `json:"lead_count"`
}

type ProductStat struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	LeadCount   int64     `json:"lead_count"`
}

type DashboardStats struct {
	TotalLeads      int64                `json:"total_leads"`
	TotalFinalLeads int64                `json:"total_final_leads"`
	ActiveCampaigns int64                `json:"active_campaigns"`
	ConversionRate  float64              `json:"conversion_rate"`
	MonthlyStats    []MonthlyStat        `json:"monthly_stats"`
	TopRegions      []RegionStat         `json:"top_regions"`
	TopProducts     []ProductStat        `json:"top_products"`
	RecentActivity  []domain.ActivityLog `json:"recent_activity"`
}

// Export

type ExportRequest struct {
	Format  string           `json:"format" validate:"required,oneof=csv xlsx"`
	Filters FinalLeadFilters `json:"filters"`
}

type ExportResponse struct {
	FileName string `json:"file_name"`
	URL      string `json:"url,omitempty"`
}

// NormalizePage clamps paging values to sane defaults.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return page, pageSize
}
