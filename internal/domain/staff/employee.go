// Package staff contains the people-side entities: employees and their access levels.
package staff

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee is a member of staff
type Employee struct {
	shared.TenantEntity
	FirstName     string          `json:"firstName" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	LastName      string          `json:"lastName" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	Email         string          `json:"email" gorm:"type:varchar(200)" binding:"omitempty,email,max=200"`
	Phone         string          `json:"phone" gorm:"type:varchar(50)" binding:"max=50"`
	Position      string          `json:"position" gorm:"type:varchar(100)" binding:"max=100"`
	HireDate      *time.Time      `json:"hireDate"`
	Salary        decimal.Decimal `json:"salary" gorm:"type:decimal(18,2);not null;default:0"`
	AccessLevelID *uuid.UUID      `json:"accessLevelId" gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// Validate rejects negative salaries
func (e *Employee) Validate() error {
	if e.Salary.IsNegative() {
		return shared.NewValidationError("Salary must not be negative")
	}
	return nil
}

// EmployeeSchema describes the filterable attributes of Employee
var EmployeeSchema = shared.MustEntitySchema("Employee", true,
	shared.Text("FirstName").Search(),
	shared.Text("LastName").Search(),
	shared.Text("Email").Search(),
	shared.Text("Phone"),
	shared.Text("Position").Search(),
	shared.Time("HireDate"),
	shared.Decimal("Salary"),
	shared.UUID("AccessLevelId"),
)
