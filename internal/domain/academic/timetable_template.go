package academic

import (
	"github.com/campus/backend/internal/domain/shared"
)

// TimetableTemplate is a reusable weekly timetable layout
type TimetableTemplate struct {
	shared.TenantEntity
	Name        string `json:"name" gorm:"type:varchar(200);not null" binding:"required,max=200"`
	Description string `json:"description" gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TimetableTemplate) TableName() string {
	return "timetable_templates"
}

// TimetableTemplateSchema describes the filterable attributes of TimetableTemplate
var TimetableTemplateSchema = shared.MustEntitySchema("TimetableTemplate", true,
	shared.Text("Name").Search(),
	shared.Text("Description").Search(),
)
