package academic

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
)

// Training is a staff training programme. Trainings are shared across tenants.
type Training struct {
	shared.BaseEntity
	Name        string     `json:"name" gorm:"type:varchar(200);not null" binding:"required,max=200"`
	Description string     `json:"description" gorm:"type:text"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// TableName returns the table name for GORM
func (Training) TableName() string {
	return "trainings"
}

// Validate checks the training dates
func (t *Training) Validate() error {
	return shared.ValidateDateRange("StartDate", t.StartDate, "EndDate", t.EndDate)
}

// TrainingSchema describes the filterable attributes of Training
var TrainingSchema = shared.MustEntitySchema("Training", false,
	shared.Text("Name").Search(),
	shared.Text("Description").Search(),
	shared.Time("StartDate"),
	shared.Time("EndDate"),
)
