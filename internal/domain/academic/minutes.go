package academic

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Minutes is the written record of a meeting
type Minutes struct {
	shared.TenantEntity
	Title       string     `json:"title" gorm:"type:varchar(200);not null" binding:"required,max=200"`
	MeetingDate *time.Time `json:"meetingDate"`
	Content     string     `json:"content" gorm:"type:text"`
	RecordedBy  *uuid.UUID `json:"recordedBy" gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Minutes) TableName() string {
	return "minutes"
}

// MinutesSchema describes the filterable attributes of Minutes
var MinutesSchema = shared.MustEntitySchema("Minutes", true,
	shared.Text("Title").Search(),
	shared.Time("MeetingDate"),
	shared.Text("Content").Search(),
	shared.UUID("RecordedBy"),
)
