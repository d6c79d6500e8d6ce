package facility

import (
	"github.com/campus/backend/internal/domain/shared"
)

// Resource is bookable equipment or space
type Resource struct {
	shared.TenantEntity
	Name        string `json:"name" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	Type        string `json:"type" gorm:"type:varchar(50);index" binding:"max=50"`
	Location    string `json:"location" gorm:"type:varchar(200)" binding:"max=200"`
	Description string `json:"description" gorm:"type:text"`
	Quantity    int    `json:"quantity" gorm:"not null;default:0" binding:"gte=0"`
}

// TableName returns the table name for GORM
func (Resource) TableName() string {
	return "resources"
}

// ResourceSchema describes the filterable attributes of Resource
var ResourceSchema = shared.MustEntitySchema("Resource", true,
	shared.Text("Name").Search(),
	shared.Text("Type").Search(),
	shared.Text("Location").Search(),
	shared.Text("Description"),
	shared.Int("Quantity"),
)
