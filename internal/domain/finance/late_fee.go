package finance

import (
	"github.com/campus/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LateFee is charged when a payment is overdue past the grace period
type LateFee struct {
	shared.TenantEntity
	Name            string          `json:"name" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(18,2);not null;default:0"`
	GracePeriodDays int             `json:"gracePeriodDays" gorm:"not null;default:0" binding:"gte=0"`
	Description     string          `json:"description" gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LateFee) TableName() string {
	return "late_fees"
}

// Validate rejects negative fees
func (l *LateFee) Validate() error {
	if l.Amount.IsNegative() {
		return shared.NewValidationError("Amount must not be negative")
	}
	return nil
}

// LateFeeSchema describes the filterable attributes of LateFee
var LateFeeSchema = shared.MustEntitySchema("LateFee", true,
	shared.Text("Name").Search(),
	shared.Decimal("Amount"),
	shared.Int("GracePeriodDays"),
	shared.Text("Description").Search(),
)
