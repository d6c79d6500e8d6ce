package academic

import (
	"github.com/campus/backend/internal/domain/shared"
)

// ExamRoom is a room usable for examinations
type ExamRoom struct {
	shared.TenantEntity
	Name        string `json:"name" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	Building    string `json:"building" gorm:"type:varchar(100)" binding:"max=100"`
	Capacity    int    `json:"capacity" gorm:"not null;default:0" binding:"gte=0"`
	IsAvailable bool   `json:"isAvailable" gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExamRoom) TableName() string {
	return "exam_rooms"
}

// ExamRoomSchema describes the filterable attributes of ExamRoom
var ExamRoomSchema = shared.MustEntitySchema("ExamRoom", true,
	shared.Text("Name").Search(),
	shared.Text("Building").Search(),
	shared.Int("Capacity"),
	shared.Bool("IsAvailable"),
)
