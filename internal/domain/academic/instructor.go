package academic

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Instructor teaches courses. EmployeeID links to the staff record when the
// instructor is also an employee.
type Instructor struct {
	shared.TenantEntity
	FirstName  string     `json:"firstName" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	LastName   string     `json:"lastName" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	Email      string     `json:"email" gorm:"type:varchar(200)" binding:"omitempty,email,max=200"`
	Phone      string     `json:"phone" gorm:"type:varchar(50)" binding:"max=50"`
	HireDate   *time.Time `json:"hireDate"`
	EmployeeID *uuid.UUID `json:"employeeId" gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Instructor) TableName() string {
	return "instructors"
}

// InstructorSchema describes the filterable attributes of Instructor
var InstructorSchema = shared.MustEntitySchema("Instructor", true,
	shared.Text("FirstName").Search(),
	shared.Text("LastName").Search(),
	shared.Text("Email").Search(),
	shared.Text("Phone"),
	shared.Time("HireDate"),
	shared.UUID("EmployeeId"),
)
