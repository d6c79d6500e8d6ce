package finance

import (
	"github.com/campus/backend/internal/domain/shared"
)

// PaymentMethod is an accepted way of paying (cash, transfer, card)
type PaymentMethod struct {
	shared.TenantEntity
	Name        string `json:"name" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	Code        string `json:"code" gorm:"type:varchar(50);index" binding:"max=50"`
	Description string `json:"description" gorm:"type:text"`
	IsActive    bool   `json:"isActive" gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// PaymentMethodSchema describes the filterable attributes of PaymentMethod
var PaymentMethodSchema = shared.MustEntitySchema("PaymentMethod", true,
	shared.Text("Name").Search(),
	shared.Text("Code").Search(),
	shared.Text("Description"),
	shared.Bool("IsActive"),
)
