package academic

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportCard records a student's result for a course in a term
type ReportCard struct {
	shared.TenantEntity
	StudentID *uuid.UUID      `json:"studentId" gorm:"type:uuid;index"`
	TermID    *uuid.UUID      `json:"termId" gorm:"type:uuid;index"`
	CourseID  *uuid.UUID      `json:"courseId" gorm:"type:uuid;index"`
	Grade     string          `json:"grade" gorm:"type:varchar(10)" binding:"max=10"`
	Score     decimal.Decimal `json:"score" gorm:"type:decimal(6,2);not null;default:0"`
	Remarks   string          `json:"remarks" gorm:"type:text"`
	IssuedOn  *time.Time      `json:"issuedOn"`
}

// TableName returns the table name for GORM
func (ReportCard) TableName() string {
	return "report_cards"
}

// Validate checks the score range
func (r *ReportCard) Validate() error {
	if r.Score.IsNegative() || r.Score.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewValidationError("Score must be between 0 and 100")
	}
	return nil
}

// ReportCardSchema describes the filterable attributes of ReportCard
var ReportCardSchema = shared.MustEntitySchema("ReportCard", true,
	shared.UUID("StudentId"),
	shared.UUID("TermId"),
	shared.UUID("CourseId"),
	shared.Text("Grade").Search(),
	shared.Decimal("Score"),
	shared.Text("Remarks").Search(),
	shared.Time("IssuedOn"),
)
