// Package facility covers physical resources: rooms, archives, equipment and the
// bookings and requests made against them.
package facility

import (
	"github.com/campus/backend/internal/domain/shared"
)

// ArchiveLocation is a place where paper records are stored
type ArchiveLocation struct {
	shared.TenantEntity
	Name        string `json:"name" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	Building    string `json:"building" gorm:"type:varchar(100)" binding:"max=100"`
	Room        string `json:"room" gorm:"type:varchar(50)" binding:"max=50"`
	Shelf       string `json:"shelf" gorm:"type:varchar(50)" binding:"max=50"`
	Description string `json:"description" gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ArchiveLocation) TableName() string {
	return "archive_locations"
}

// ArchiveLocationSchema describes the filterable attributes of ArchiveLocation
var ArchiveLocationSchema = shared.MustEntitySchema("ArchiveLocation", true,
	shared.Text("Name").Search(),
	shared.Text("Building").Search(),
	shared.Text("Room").Search(),
	shared.Text("Shelf"),
	shared.Text("Description"),
)
