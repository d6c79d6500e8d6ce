package academic

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
)

// Term is an academic period such as a semester
type Term struct {
	shared.TenantEntity
	Name      string     `json:"name" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	IsCurrent bool       `json:"isCurrent" gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Term) TableName() string {
	return "terms"
}

// Validate checks the term dates
func (t *Term) Validate() error {
	return shared.ValidateDateRange("StartDate", t.StartDate, "EndDate", t.EndDate)
}

// TermSchema describes the filterable attributes of Term
var TermSchema = shared.MustEntitySchema("Term", true,
	shared.Text("Name").Search(),
	shared.Time("StartDate"),
	shared.Time("EndDate"),
	shared.Bool("IsCurrent"),
)
