package staff

import (
	"github.com/campus/backend/internal/domain/shared"
)

// AccessLevel is a named clearance tier assigned to employees
type AccessLevel struct {
	shared.TenantEntity
	Name        string `json:"name" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	Description string `json:"description" gorm:"type:text"`
	Level       int    `json:"level" gorm:"not null;default:0" binding:"gte=0"`
}

// TableName returns the table name for GORM
func (AccessLevel) TableName() string {
	return "access_levels"
}

// AccessLevelSchema describes the filterable attributes of AccessLevel
var AccessLevelSchema = shared.MustEntitySchema("AccessLevel", true,
	shared.Text("Name").Search(),
	shared.Text("Description").Search(),
	shared.Int("Level"),
)
