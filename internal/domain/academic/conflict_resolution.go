package academic

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ConflictResolution tracks a reported conflict and how it was settled
type ConflictResolution struct {
	shared.TenantEntity
	Title       string     `json:"title" gorm:"type:varchar(200);not null" binding:"required,max=200"`
	Description string     `json:"description" gorm:"type:text"`
	Status      string     `json:"status" gorm:"type:varchar(30);index" binding:"omitempty,oneof=open in_progress resolved closed"`
	ReportedOn  *time.Time `json:"reportedOn"`
	ResolvedOn  *time.Time `json:"resolvedOn"`
	ResolvedBy  *uuid.UUID `json:"resolvedBy" gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ConflictResolution) TableName() string {
	return "conflict_resolutions"
}

// Validate checks that a conflict is not resolved before it was reported
func (c *ConflictResolution) Validate() error {
	return shared.ValidateDateRange("ReportedOn", c.ReportedOn, "ResolvedOn", c.ResolvedOn)
}

// ConflictResolutionSchema describes the filterable attributes of ConflictResolution
var ConflictResolutionSchema = shared.MustEntitySchema("ConflictResolution", true,
	shared.Text("Title").Search(),
	shared.Text("Description").Search(),
	shared.Text("Status").Search(),
	shared.Time("ReportedOn"),
	shared.Time("ResolvedOn"),
	shared.UUID("ResolvedBy"),
)
