package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is a CRM user. Profiles are deactivated (is_active=false), never
// physically removed.
type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName     string    `gorm:"not null" json:"full_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:varchar(32);not null;default:bdm" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Product is something the sales team runs campaigns for. Keywords drive lead
// matching; a product must carry at least one.
type Product struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Keywords    StringList `gorm:"type:text;not null" json:"keywords"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Region is a geographic target for campaigns.
type Region struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Country   string    `json:"country"`
	State     string    `json:"state"`
	City      string    `json:"city"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Region) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Campaign targets one product in one region. Keywords are a snapshot copied
// from the product when the campaign is created or re-pointed at a different
// product; they are intentionally NOT a live reference, so later product edits
// do not change what a campaign already matched on.
type Campaign struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string            `gorm:"not null" json:"name"`
	Description       string            `json:"description"`
	ProductID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	RegionID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"region_id"`
	Keywords          StringList        `gorm:"type:text" json:"keywords"`
	Status            CampaignStatus    `gorm:"type:varchar(16);not null;default:scheduled;index" json:"status"`
	ScheduledAt       *time.Time        `json:"scheduled_at,omitempty"`
	IsRecurring       bool              `gorm:"not null;default:false" json:"is_recurring"`
	RecurrencePattern RecurrencePattern `gorm:"type:varchar(16)" json:"recurrence_pattern,omitempty"`
	LeadsGenerated    int               `gorm:"not null;default:0" json:"leads_generated"`
	CreatedBy         uuid.UUID         `gorm:"type:uuid" json:"created_by"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Region  *Region  `gorm:"foreignKey:RegionID" json:"region,omitempty"`
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// AutoLead is a machine-generated lead belonging to a campaign.
type AutoLead struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"campaign_id"`
	CompanyName     string     `gorm:"not null" json:"company_name"`
	Website         string     `json:"website,omitempty"`
	LinkedinURL     string     `json:"linkedin_url,omitempty"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Address         string     `json:"address,omitempty"`
	Industry        string     `json:"industry,omitempty"`
	EmployeeCount   string     `json:"employee_count,omitempty"`
	RevenueRange    string     `json:"revenue_range,omitempty"`
	KeywordsMatched StringList `gorm:"type:text" json:"keywords_matched"`
	RelevanceScore  float64    `gorm:"not null;default:0" json:"relevance_score"`
	Status          LeadStatus `gorm:"type:varchar(16);not null;default:generated;index" json:"status"`
	IsSelected      bool       `gorm:"not null;default:false" json:"is_selected"`
	Source          string     `json:"source"`
	RawData         JSONMap    `gorm:"type:text" json:"raw_data,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Campaign *Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
}

func (l *AutoLead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// FinalLead is an approved lead. AutoLeadID is a nullable backward reference
// to the auto lead it was promoted from (manual entries leave it nil); the
// unique index makes promotion idempotent - a second promotion of the same
// auto lead fails with a conflict instead of duplicating the record.
// Score, keywords and contact fields are a point-in-time copy taken at
// promotion; later edits to the source auto lead do not propagate.
type FinalLead struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AutoLeadID            *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"auto_lead_id,omitempty"`
	CompanyName           string     `gorm:"not null" json:"company_name"`
	Website               string     `json:"website,omitempty"`
	LinkedinURL           string     `json:"linkedin_url,omitempty"`
	Email                 string     `json:"email,omitempty"`
	Phone                 string     `json:"phone,omitempty"`
	Address               string     `json:"address,omitempty"`
	Industry              string     `json:"industry,omitempty"`
	EmployeeCount         string     `json:"employee_count,omitempty"`
	RevenueRange          string     `json:"revenue_range,omitempty"`
	KeywordsMatched       StringList `gorm:"type:text" json:"keywords_matched"`
	RelevanceScore        float64    `gorm:"not null;default:0" json:"relevance_score"`
	Status                LeadStatus `gorm:"type:varchar(16);not null;default:approved;index" json:"status"`
	Priority              Priority   `gorm:"type:varchar(8);not null;default:medium" json:"priority"`
	AssignedTo            *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to,omitempty"`
	LastContactDate       *time.Time `json:"last_contact_date,omitempty"`
	NextFollowUp          *time.Time `json:"next_follow_up,omitempty"`
	ConversionProbability *float64   `json:"conversion_probability,omitempty"`
	Notes                 string     `json:"notes,omitempty"`
	ApprovedBy            uuid.UUID  `gorm:"type:uuid;not null" json:"approved_by"`
	ApprovedAt            time.Time  `gorm:"not null" json:"approved_at"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`

	AssignedUser *Profile `gorm:"foreignKey:AssignedTo" json:"assigned_user,omitempty"`
}

func (l *FinalLead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LeadTag is a named/colored label. Tag-to-lead association is not modeled
// beyond the type itself.
type LeadTag struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description,omitempty"`
	CreatedBy   uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t *LeadTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// LeadNote is a free-text note attached to an auto or final lead. LeadType
// tells which table LeadID points into.
type LeadNote struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LeadID     uuid.UUID `gorm:"type:uuid;not null;index:idx_lead_notes_lead" json:"lead_id"`
	LeadType   LeadType  `gorm:"type:varchar(8);not null;index:idx_lead_notes_lead" json:"lead_type"`
	Note       string    `gorm:"not null" json:"note"`
	IsInternal bool      `gorm:"not null;default:false" json:"is_internal"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	User *Profile `gorm:"foreignKey:CreatedBy" json:"user,omitempty"`
}

func (n *LeadNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// ActivityLog is an append-only record of a user action.
type ActivityLog struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	ActivityType ActivityType `gorm:"type:varchar(16);not null" json:"activity_type"`
	EntityType   string       `json:"entity_type,omitempty"`
	EntityID     string       `json:"entity_id,omitempty"`
	Description  string       `gorm:"not null" json:"description"`
	Metadata     JSONMap      `gorm:"type:text" json:"metadata,omitempty"`
	IPAddress    string       `json:"ip_address,omitempty"`
	UserAgent    string       `json:"user_agent,omitempty"`
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`

	User *Profile `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AllEntities lists every model for migration.
func AllEntities() []any {
	return []any{
		&Profile{},
		&Product{},
		&Region{},
		&Campaign{},
		&AutoLead{},
		&FinalLead{},
		&LeadTag{},
		&LeadNote{},
		&ActivityLog{},
	}
}
