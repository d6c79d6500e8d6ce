package persistence

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var (
	timeType    = reflect.TypeOf(time.Time{})
	uuidType    = reflect.TypeOf(uuid.UUID{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

// GormCRUDRepository implements shared.CRUDRepository for any entity type using GORM.
// Filtering and sorting go through the entity's field set, so only declared
// attributes ever reach the SQL.
type GormCRUDRepository[T any] struct {
	db     *gorm.DB
	entity shared.EntitySchema
}

// NewGormCRUDRepository creates a repository for T after checking that every field
// of the entity schema maps to a column of T with a compatible Go type.
func NewGormCRUDRepository[T any](db *gorm.DB, entity shared.EntitySchema) (*GormCRUDRepository[T], error) {
	if err := ValidateEntitySchema[T](db, entity); err != nil {
		return nil, err
	}
	return &GormCRUDRepository[T]{db: db, entity: entity}, nil
}

// ValidateEntitySchema fails when the field set of entity refers to a column T does
// not have, or when a column's Go type does not match the declared field kind.
func ValidateEntitySchema[T any](db *gorm.DB, entity shared.EntitySchema) error {
	model := new(T)
	if _, ok := any(model).(shared.Record); !ok {
		return fmt.Errorf("entity %s: %T does not implement shared.Record", entity.Name, model)
	}
	if entity.TenantScoped {
		if _, ok := any(model).(shared.TenantScoped); !ok {
			return fmt.Errorf("entity %s: %T is not tenant scoped", entity.Name, model)
		}
	}

	sch, err := schema.Parse(model, &sync.Map{}, db.NamingStrategy)
	if err != nil {
		return fmt.Errorf("entity %s: %w", entity.Name, err)
	}
	for _, f := range entity.Fields.Fields() {
		col := sch.LookUpField(f.Column)
		if col == nil || col.DBName == "" {
			return fmt.Errorf("entity %s: field %s has no column %q in table %s", entity.Name, f.Name, f.Column, sch.Table)
		}
		if name := strings.SplitN(col.Tag.Get("json"), ",", 2)[0]; name != f.JSONName {
			return fmt.Errorf("entity %s: field %s has json name %q, want %q", entity.Name, f.Name, name, f.JSONName)
		}
		if !kindMatches(f.Kind, col.IndirectFieldType) {
			return fmt.Errorf("entity %s: field %s is declared %s but column %q is %s",
				entity.Name, f.Name, f.Kind, f.Column, col.IndirectFieldType)
		}
	}
	return nil
}

func kindMatches(kind shared.FieldKind, t reflect.Type) bool {
	switch kind {
	case shared.KindString:
		return t.Kind() == reflect.String
	case shared.KindInt:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		}
		return false
	case shared.KindDecimal:
		return t == decimalType || t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
	case shared.KindTime:
		return t == timeType
	case shared.KindUUID:
		return t == uuidType
	case shared.KindBool:
		return t.Kind() == reflect.Bool
	default:
		return false
	}
}

// Schema returns the entity schema the repository was built for
func (r *GormCRUDRepository[T]) Schema() shared.EntitySchema {
	return r.entity
}

// scoped returns a session for ctx restricted to tenantID when the entity is tenant scoped
func (r *GormCRUDRepository[T]) scoped(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.entity.TenantScoped {
		db = db.Scopes(tenant.Scope(tenantID))
	}
	return db
}

func byID(id uuid.UUID) clause.Expression {
	return clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: primaryKeyColumn}, Value: id}
}

// FindByID finds an entity by its ID, loading its associations
func (r *GormCRUDRepository[T]) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.scoped(ctx, tenantID).
		Preload(clause.Associations).
		Where(byID(id)).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindPage returns one page of entities matching the query together with the
// number of matching rows across all pages.
func (r *GormCRUDRepository[T]) FindPage(ctx context.Context, tenantID uuid.UUID, query shared.ListQuery) ([]T, int64, error) {
	fields := r.entity.Fields

	filtered, err := ApplyFilter(r.scoped(ctx, tenantID).Model(new(T)), fields, query.Criteria)
	if err != nil {
		return nil, 0, err
	}
	filtered = ApplySearch(filtered, fields, query.SearchTerm).Session(&gorm.Session{})

	sorted, err := ApplySort(filtered, fields, query.SortField, query.SortOrder)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []T
	if err := Paginate(sorted, query.PageNumber, query.PageSize).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// Create inserts a new entity
func (r *GormCRUDRepository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", r.entity.Name, err)
	}
	return nil
}

// Save writes every column of an existing entity. It never inserts: a row that
// does not exist (or belongs to another tenant) yields shared.ErrNotFound.
func (r *GormCRUDRepository[T]) Save(ctx context.Context, tenantID uuid.UUID, entity *T) error {
	if any(entity).(shared.Record).GetID() == uuid.Nil {
		return shared.ErrNotFound
	}
	result := r.scoped(ctx, tenantID).
		Model(entity).
		Select("*").
		Omit(clause.Associations).
		Updates(entity)
	if result.Error != nil {
		return fmt.Errorf("failed to save %s: %w", r.entity.Name, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an entity by ID
func (r *GormCRUDRepository[T]) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.scoped(ctx, tenantID).Where(byID(id)).Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", r.entity.Name, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCRUDRepository implements the repository contract
var _ shared.CRUDRepository[shared.BaseEntity] = (*GormCRUDRepository[shared.BaseEntity])(nil)
