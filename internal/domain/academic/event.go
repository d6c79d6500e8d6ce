package academic

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
)

// Event is a scheduled school event
type Event struct {
	shared.TenantEntity
	Title       string     `json:"title" gorm:"type:varchar(200);not null" binding:"required,max=200"`
	Description string     `json:"description" gorm:"type:text"`
	Location    string     `json:"location" gorm:"type:varchar(200)" binding:"max=200"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// TableName returns the table name for GORM
func (Event) TableName() string {
	return "events"
}

// Validate checks the event dates
func (e *Event) Validate() error {
	return shared.ValidateDateRange("StartDate", e.StartDate, "EndDate", e.EndDate)
}

// EventSchema describes the filterable attributes of Event
var EventSchema = shared.MustEntitySchema("Event", true,
	shared.Text("Title").Search(),
	shared.Text("Description").Search(),
	shared.Text("Location").Search(),
	shared.Time("StartDate"),
	shared.Time("EndDate"),
)
