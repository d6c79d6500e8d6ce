package finance

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
)

// BillingCycle defines how often fees are invoiced
type BillingCycle struct {
	shared.TenantEntity
	Name         string     `json:"name" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	Frequency    string     `json:"frequency" gorm:"type:varchar(20)" binding:"omitempty,oneof=weekly monthly quarterly termly yearly custom"`
	IntervalDays int        `json:"intervalDays" gorm:"not null;default:0" binding:"gte=0"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}

// TableName returns the table name for GORM
func (BillingCycle) TableName() string {
	return "billing_cycles"
}

// Validate checks the cycle window and that custom cycles carry an interval
func (b *BillingCycle) Validate() error {
	if b.Frequency == "custom" && b.IntervalDays <= 0 {
		return shared.NewValidationError("IntervalDays is required for custom billing cycles")
	}
	return shared.ValidateDateRange("StartDate", b.StartDate, "EndDate", b.EndDate)
}

// BillingCycleSchema describes the filterable attributes of BillingCycle
var BillingCycleSchema = shared.MustEntitySchema("BillingCycle", true,
	shared.Text("Name").Search(),
	shared.Text("Frequency").Search(),
	shared.Int("IntervalDays"),
	shared.Time("StartDate"),
	shared.Time("EndDate"),
)
