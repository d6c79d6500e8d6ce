package academic

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Course is a unit of study offered during a term
type Course struct {
	shared.TenantEntity
	Name         string     `json:"name" gorm:"type:varchar(200);not null" binding:"required,max=200"`
	Code         string     `json:"code" gorm:"type:varchar(50);index" binding:"max=50"`
	Description  string     `json:"description" gorm:"type:text"`
	Credits      int        `json:"credits" gorm:"not null;default:0" binding:"gte=0"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	InstructorID *uuid.UUID `json:"instructorId" gorm:"type:uuid;index"`
	TermID       *uuid.UUID `json:"termId" gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Course) TableName() string {
	return "courses"
}

// Validate checks the course dates
func (c *Course) Validate() error {
	return shared.ValidateDateRange("StartDate", c.StartDate, "EndDate", c.EndDate)
}

// CourseSchema describes the filterable attributes of Course
var CourseSchema = shared.MustEntitySchema("Course", true,
	shared.Text("Name").Search(),
	shared.Text("Code").Search(),
	shared.Text("Description").Search(),
	shared.Int("Credits"),
	shared.Time("StartDate"),
	shared.Time("EndDate"),
	shared.UUID("InstructorId"),
	shared.UUID("TermId"),
)
