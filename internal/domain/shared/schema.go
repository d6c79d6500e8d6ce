package shared

import (
	"fmt"
	"strings"
)

// EntitySchema is the per-entity configuration of the CRUD pipeline.
type EntitySchema struct {
	// Name is the entity name, e.g. "Course"
	Name string
	// Path is the route segment and the permission resource, e.g. "course"
	Path string
	// TenantScoped entities are read and written inside the caller's tenant
	TenantScoped bool
	// Fields lists every filterable and sortable attribute including identity and audit fields
	Fields FieldSet
}

// NewEntitySchema creates a schema for the named entity. Identity and audit fields are
// prepended to the given attributes (and TenantId when tenantScoped is set).
func NewEntitySchema(name string, tenantScoped bool, attributes ...Field) (EntitySchema, error) {
	if strings.TrimSpace(name) == "" {
		return EntitySchema{}, fmt.Errorf("entity name is required")
	}
	all := []Field{
		UUID("Id"),
		Time("CreatedOn"),
		UUID("CreatedBy"),
		Time("UpdatedOn"),
		UUID("UpdatedBy"),
	}
	if tenantScoped {
		all = append(all, UUID("TenantId"))
	}
	all = append(all, attributes...)

	fields, err := NewFieldSet(all...)
	if err != nil {
		return EntitySchema{}, fmt.Errorf("entity %s: %w", name, err)
	}
	return EntitySchema{
		Name:         name,
		Path:         strings.ToLower(name),
		TenantScoped: tenantScoped,
		Fields:       fields,
	}, nil
}

// MustEntitySchema is like NewEntitySchema but panics on error.
// It is meant for package-level schema declarations.
func MustEntitySchema(name string, tenantScoped bool, attributes ...Field) EntitySchema {
	s, err := NewEntitySchema(name, tenantScoped, attributes...)
	if err != nil {
		panic(err)
	}
	return s
}

// Permission returns the entitlement required for an action on this entity, e.g. "course:read"
func (s EntitySchema) Permission(action string) string {
	return s.Path + ":" + action
}

// Entitlement actions
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)
