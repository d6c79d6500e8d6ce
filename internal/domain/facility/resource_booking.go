package facility

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ResourceBooking reserves a resource for a time window
type ResourceBooking struct {
	shared.TenantEntity
	ResourceID *uuid.UUID `json:"resourceId" gorm:"type:uuid;index"`
	BookedBy   *uuid.UUID `json:"bookedBy" gorm:"type:uuid;index"`
	StartTime  *time.Time `json:"startTime"`
	EndTime    *time.Time `json:"endTime"`
	Purpose    string     `json:"purpose" gorm:"type:varchar(500)" binding:"max=500"`
}

// TableName returns the table name for GORM
func (ResourceBooking) TableName() string {
	return "resource_bookings"
}

// Validate checks the booking window
func (b *ResourceBooking) Validate() error {
	return shared.ValidateDateRange("StartTime", b.StartTime, "EndTime", b.EndTime)
}

// ResourceBookingSchema describes the filterable attributes of ResourceBooking
var ResourceBookingSchema = shared.MustEntitySchema("ResourceBooking", true,
	shared.UUID("ResourceId"),
	shared.UUID("BookedBy"),
	shared.Time("StartTime"),
	shared.Time("EndTime"),
	shared.Text("Purpose").Search(),
)
