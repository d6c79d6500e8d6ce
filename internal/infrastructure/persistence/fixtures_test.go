package persistence

import (
	"testing"
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// gadget is a small tenant-scoped entity covering every field kind
type gadget struct {
	shared.TenantEntity
	Name       string          `json:"name" gorm:"type:varchar(100);not null"`
	Notes      string          `json:"notes" gorm:"type:text"`
	Quantity   int             `json:"quantity" gorm:"not null;default:0"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Available  bool            `json:"available" gorm:"not null"`
	ReleasedOn *time.Time      `json:"releasedOn"`
	OwnerID    *uuid.UUID      `json:"ownerId" gorm:"type:uuid"`
}

func (gadget) TableName() string { return "gadgets" }

var gadgetSchema = shared.MustEntitySchema("Gadget", true,
	shared.Text("Name").Search(),
	shared.Text("Notes").Search(),
	shared.Int("Quantity"),
	shared.Decimal("Price"),
	shared.Bool("Available"),
	shared.Time("ReleasedOn"),
	shared.UUID("OwnerId"),
)

// label is an entity without a tenant column
type label struct {
	shared.BaseEntity
	Title string `json:"title"`
}

func (label) TableName() string { return "labels" }

var labelSchema = shared.MustEntitySchema("Label", false, shared.Text("Title").Search())

func setupGadgetTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&gadget{}, &label{})
	require.NoError(t, err)

	return db
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func newGadget(tenantID uuid.UUID, name string, quantity int, price string) *gadget {
	g := &gadget{
		Name:      name,
		Quantity:  quantity,
		Price:     decimal.RequireFromString(price),
		Available: true,
	}
	g.ID = uuid.New()
	g.TenantID = &tenantID
	return g
}
