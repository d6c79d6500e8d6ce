package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all persisted records
type Entity interface {
	GetID() uuid.UUID
}

// Record is implemented (through BaseEntity) by every entity served by the CRUD pipeline.
type Record interface {
	Entity
	SetID(id uuid.UUID)
	Base() *BaseEntity
}

// TenantScoped is implemented by records owned by a tenant.
type TenantScoped interface {
	GetTenantID() *uuid.UUID
	SetTenantID(id *uuid.UUID)
}

// BaseEntity provides the identifier and audit fields shared by all entities.
// ID is assigned once on create and never changes afterwards.
type BaseEntity struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedOn *time.Time `json:"createdOn,omitempty"`
	CreatedBy *uuid.UUID `json:"createdBy,omitempty" gorm:"type:uuid"`
	UpdatedOn *time.Time `json:"updatedOn,omitempty"`
	UpdatedBy *uuid.UUID `json:"updatedBy,omitempty" gorm:"type:uuid"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// SetID sets the entity ID
func (e *BaseEntity) SetID(id uuid.UUID) {
	e.ID = id
}

// Base returns the embedded base entity
func (e *BaseEntity) Base() *BaseEntity {
	return e
}

// MarkCreated stamps the creation audit fields
func (e *BaseEntity) MarkCreated(actor *uuid.UUID, at time.Time) {
	e.CreatedOn = &at
	e.CreatedBy = actor
}

// MarkUpdated stamps the modification audit fields
func (e *BaseEntity) MarkUpdated(actor *uuid.UUID, at time.Time) {
	e.UpdatedOn = &at
	e.UpdatedBy = actor
}

// KeepCreation copies the identity and creation stamps from a stored version of the record.
func (e *BaseEntity) KeepCreation(stored *BaseEntity) {
	e.ID = stored.ID
	e.CreatedOn = stored.CreatedOn
	e.CreatedBy = stored.CreatedBy
}

// TenantEntity extends BaseEntity with an optional owning tenant
type TenantEntity struct {
	BaseEntity
	TenantID *uuid.UUID `json:"tenantId,omitempty" gorm:"type:uuid;index"`
}

// GetTenantID returns the owning tenant
func (e *TenantEntity) GetTenantID() *uuid.UUID {
	return e.TenantID
}

// SetTenantID sets the owning tenant
func (e *TenantEntity) SetTenantID(id *uuid.UUID) {
	e.TenantID = id
}

// Validatable is implemented by entities with rules spanning several fields
type Validatable interface {
	Validate() error
}

// ValidateDateRange fails when both bounds are set and end is before start
func ValidateDateRange(startName string, start *time.Time, endName string, end *time.Time) error {
	if start == nil || end == nil {
		return nil
	}
	if end.Before(*start) {
		return NewValidationError(endName + " must not be before " + startName)
	}
	return nil
}
