package finance

import (
	"github.com/campus/backend/internal/domain/shared"
)

// PaymentTerms states how many days after invoicing a payment is due
type PaymentTerms struct {
	shared.TenantEntity
	Name        string `json:"name" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	DueDays     int    `json:"dueDays" gorm:"not null;default:0" binding:"gte=0"`
	Description string `json:"description" gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentTerms) TableName() string {
	return "payment_terms"
}

// PaymentTermsSchema describes the filterable attributes of PaymentTerms
var PaymentTermsSchema = shared.MustEntitySchema("PaymentTerms", true,
	shared.Text("Name").Search(),
	shared.Int("DueDays"),
	shared.Text("Description").Search(),
)
