package academic

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Breaks is a pause in a timetable (recess, lunch)
type Breaks struct {
	shared.TenantEntity
	Name                string     `json:"name" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	StartTime           *time.Time `json:"startTime"`
	EndTime             *time.Time `json:"endTime"`
	DurationMinutes     int        `json:"durationMinutes" gorm:"not null;default:0" binding:"gte=0,lte=1440"`
	TimetableTemplateID *uuid.UUID `json:"timetableTemplateId" gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Breaks) TableName() string {
	return "breaks"
}

// Validate checks the break window
func (b *Breaks) Validate() error {
	return shared.ValidateDateRange("StartTime", b.StartTime, "EndTime", b.EndTime)
}

// BreaksSchema describes the filterable attributes of Breaks
var BreaksSchema = shared.MustEntitySchema("Breaks", true,
	shared.Text("Name").Search(),
	shared.Time("StartTime"),
	shared.Time("EndTime"),
	shared.Int("DurationMinutes"),
	shared.UUID("TimetableTemplateId"),
)
