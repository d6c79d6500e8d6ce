package finance

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Discount reduces a fee by a percentage, a fixed amount, or both
type Discount struct {
	shared.TenantEntity
	Name       string          `json:"name" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	Code       string          `json:"code" gorm:"type:varchar(50);index" binding:"max=50"`
	Percentage decimal.Decimal `json:"percentage" gorm:"type:decimal(5,2);not null;default:0"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(18,2);not null;default:0"`
	ValidFrom  *time.Time      `json:"validFrom"`
	ValidTo    *time.Time      `json:"validTo"`
}

// TableName returns the table name for GORM
func (Discount) TableName() string {
	return "discounts"
}

// Validate checks the discount bounds and validity window
func (d *Discount) Validate() error {
	if d.Percentage.IsNegative() || d.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewValidationError("Percentage must be between 0 and 100")
	}
	if d.Amount.IsNegative() {
		return shared.NewValidationError("Amount must not be negative")
	}
	return shared.ValidateDateRange("ValidFrom", d.ValidFrom, "ValidTo", d.ValidTo)
}

// DiscountSchema describes the filterable attributes of Discount
var DiscountSchema = shared.MustEntitySchema("Discount", true,
	shared.Text("Name").Search(),
	shared.Text("Code").Search(),
	shared.Decimal("Percentage"),
	shared.Decimal("Amount"),
	shared.Time("ValidFrom"),
	shared.Time("ValidTo"),
)
