package domain

import "time"

// MaintenancePriority ranks a maintenance request.
type MaintenancePriority string

const (
	PriorityLow       MaintenancePriority = "low"
	PriorityMedium    MaintenancePriority = "medium"
	PriorityHigh      MaintenancePriority = "high"
	PriorityEmergency MaintenancePriority = "emergency"
)

// Valid reports whether p is a known priority.
func (p MaintenancePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency:
		return true
	}
	return false
}

// MaintenanceStatus tracks a request through the landlord's workflow.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s MaintenanceStatus) Terminal() bool {
	return s == MaintenanceCompleted || s == MaintenanceCancelled
}

// MaintenanceComment is a note left on a request by either party.
type MaintenanceComment struct {
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// MaintenanceRequest is a repair ticket raised by a tenant (maintenance_requests table).
type MaintenanceRequest struct {
	ID          int64                `db:"id" json:"id"`
	TenantID    int64                `db:"tenant_id" json:"tenant_id"`
	UnitID      int64                `db:"unit_id" json:"unit_id"`
	Title       string               `db:"title" json:"title"`
	Description string               `db:"description" json:"description"`
	Priority    MaintenancePriority  `db:"priority" json:"priority"`
	Status      MaintenanceStatus    `db:"status" json:"status"`
	Images      []string             `db:"images" json:"images"`     // TEXT[], opaque file names
	Comments    []MaintenanceComment `db:"comments" json:"comments"` // JSONB
	Cost        int64                `db:"cost" json:"cost"`         // KES spent on the repair
	CreatedAt   time.Time            `db:"created_at" json:"submitted_at"`
	UpdatedAt   time.Time            `db:"updated_at" json:"updated_at"`
	CompletedAt *time.Time           `db:"completed_at" json:"completed_at,omitempty"`
}

// Clone returns a copy that shares no slices with r.
func (r *MaintenanceRequest) Clone() *MaintenanceRequest {
	c := *r
	if r.Images != nil {
		c.Images = append([]string(nil), r.Images...)
	}
	if r.Comments != nil {
		c.Comments = append([]MaintenanceComment(nil), r.Comments...)
	}
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}
