package finance

import (
	"github.com/campus/backend/internal/domain/shared"
)

// PaymentStatus is a state a payment can be in
type PaymentStatus struct {
	shared.TenantEntity
	Name        string `json:"name" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	Code        string `json:"code" gorm:"type:varchar(50);index" binding:"max=50"`
	Description string `json:"description" gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentStatus) TableName() string {
	return "payment_statuses"
}

// PaymentStatusSchema describes the filterable attributes of PaymentStatus
var PaymentStatusSchema = shared.MustEntitySchema("PaymentStatus", true,
	shared.Text("Name").Search(),
	shared.Text("Code").Search(),
	shared.Text("Description"),
)
