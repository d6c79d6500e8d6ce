package router

import (
	"fmt"

	"github.com/campus/backend/internal/application/crud"
	"github.com/campus/backend/internal/domain/academic"
	"github.com/campus/backend/internal/domain/facility"
	"github.com/campus/backend/internal/domain/finance"
	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/staff"
	"github.com/campus/backend/internal/infrastructure/persistence"
	"github.com/campus/backend/internal/infrastructure/telemetry"
	"github.com/campus/backend/internal/interfaces/http/handler"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// EntityDeps carries what every entity module needs to build its routes
type EntityDeps struct {
	DB              *gorm.DB
	Metrics         *telemetry.CRUDMetrics
	Validator       *validator.Validate
	DefaultPageSize int
	MaxPageSize     int
}

type entityModule struct {
	schema shared.EntitySchema
	model  any
	build  func(EntityDeps) (RouteRegistrar, error)
}

// module wires repository, service and handler for one entity type
func module[T any, P interface {
	*T
	shared.Record
}](schema shared.EntitySchema) entityModule {
	return entityModule{
		schema: schema,
		model:  new(T),
		build: func(deps EntityDeps) (RouteRegistrar, error) {
			repo, err := persistence.NewGormCRUDRepository[T](deps.DB, schema)
			if err != nil {
				return nil, err
			}
			opts := []crud.Option{
				crud.WithMetrics(deps.Metrics),
				crud.WithMaxPageSize(deps.MaxPageSize),
			}
			if deps.Validator != nil {
				opts = append(opts, crud.WithValidator(deps.Validator))
			}
			svc := crud.NewService[T, P](repo, schema, opts...)
			return handler.NewCRUDHandler[T, P](svc, deps.DefaultPageSize), nil
		},
	}
}

var entityModules = []entityModule{
	module[academic.Breaks](academic.BreaksSchema),
	module[academic.ConflictResolution](academic.ConflictResolutionSchema),
	module[academic.Course](academic.CourseSchema),
	module[academic.Event](academic.EventSchema),
	module[academic.ExamRoom](academic.ExamRoomSchema),
	module[academic.Instructor](academic.InstructorSchema),
	module[academic.Minutes](academic.MinutesSchema),
	module[academic.ReportCard](academic.ReportCardSchema),
	module[academic.Term](academic.TermSchema),
	module[academic.TimetableTemplate](academic.TimetableTemplateSchema),
	module[academic.Training](academic.TrainingSchema),

	module[finance.BillingCycle](finance.BillingCycleSchema),
	module[finance.Discount](finance.DiscountSchema),
	module[finance.LateFee](finance.LateFeeSchema),
	module[finance.PaymentMethod](finance.PaymentMethodSchema),
	module[finance.PaymentStatus](finance.PaymentStatusSchema),
	module[finance.PaymentTerms](finance.PaymentTermsSchema),

	module[facility.ArchiveLocation](facility.ArchiveLocationSchema),
	module[facility.Resource](facility.ResourceSchema),
	module[facility.ResourceBooking](facility.ResourceBookingSchema),
	module[facility.ResourceRequest](facility.ResourceRequestSchema),

	module[staff.AccessLevel](staff.AccessLevelSchema),
	module[staff.Employee](staff.EmployeeSchema),
}

// EntityRegistrars builds the route registrar of every served entity. It fails
// when an entity's field set does not match its table mapping.
func EntityRegistrars(deps EntityDeps) ([]RouteRegistrar, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("entity registrars: database is required")
	}
	registrars := make([]RouteRegistrar, 0, len(entityModules))
	for _, m := range entityModules {
		r, err := m.build(deps)
		if err != nil {
			return nil, err
		}
		registrars = append(registrars, r)
	}
	return registrars, nil
}

// EntityModels returns a zero value pointer of every served entity, for auto migration
func EntityModels() []any {
	models := make([]any, 0, len(entityModules))
	for _, m := range entityModules {
		models = append(models, m.model)
	}
	return models
}

// EntitySchemas returns the schema of every served entity
func EntitySchemas() []shared.EntitySchema {
	schemas := make([]shared.EntitySchema, 0, len(entityModules))
	for _, m := range entityModules {
		schemas = append(schemas, m.schema)
	}
	return schemas
}
