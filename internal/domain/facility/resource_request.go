package facility

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResourceRequestStatus values
const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
	RequestStatusFulfilled = "fulfilled"
)

// ResourceRequest asks for a quantity of a resource
type ResourceRequest struct {
	shared.TenantEntity
	ResourceID  *uuid.UUID `json:"resourceId" gorm:"type:uuid;index"`
	RequestedBy *uuid.UUID `json:"requestedBy" gorm:"type:uuid;index"`
	Quantity    int        `json:"quantity" gorm:"not null;default:1" binding:"gte=1"`
	RequestedOn *time.Time `json:"requestedOn"`
	Status      string     `json:"status" gorm:"type:varchar(20);index" binding:"omitempty,oneof=pending approved rejected fulfilled"`
	Notes       string     `json:"notes" gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ResourceRequest) TableName() string {
	return "resource_requests"
}

// ResourceRequestSchema describes the filterable attributes of ResourceRequest
var ResourceRequestSchema = shared.MustEntitySchema("ResourceRequest", true,
	shared.UUID("ResourceId"),
	shared.UUID("RequestedBy"),
	shared.Int("Quantity"),
	shared.Time("RequestedOn"),
	shared.Text("Status").Search(),
	shared.Text("Notes").Search(),
)

// Validate rejects requests whose status is set to something other than the known states
func (r *ResourceRequest) Validate() error {
	switch r.Status {
	case "", RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusFulfilled:
		return nil
	default:
		return shared.NewValidationError("Status must be one of pending, approved, rejected, fulfilled")
	}
}

// BeforeCreate defaults new requests to pending
func (r *ResourceRequest) BeforeCreate(_ *gorm.DB) error {
	if r.Status == "" {
		r.Status = RequestStatusPending
	}
	return nil
}
