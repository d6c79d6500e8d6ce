// Package crud provides the generic application service behind every entity route:
// create, read, list, update, patch and delete against a shared.CRUDRepository.
package crud

import (
	"context"
	"errors"
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/infrastructure/logger"
	"github.com/campus/backend/internal/infrastructure/telemetry"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Operation names used for spans, metrics and profiling labels
const (
	OpCreate = "create"
	OpGet    = "get"
	OpList   = "list"
	OpUpdate = "update"
	OpPatch  = "patch"
	OpDelete = "delete"
)

// Actor identifies the caller an operation runs for. A zero TenantID means the
// caller is not bound to a tenant and sees every row.
type Actor struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
}

func (a Actor) user() *uuid.UUID {
	if a.UserID == uuid.Nil {
		return nil
	}
	id := a.UserID
	return &id
}

// Service implements the CRUD operations of one entity type. P is the pointer type of
// T and gives access to the identity and audit fields every entity embeds.
type Service[T any, P interface {
	*T
	shared.Record
}] struct {
	repo        shared.CRUDRepository[T]
	entity      shared.EntitySchema
	validate    *validator.Validate
	metrics     *telemetry.CRUDMetrics
	maxPageSize int
	now         func() time.Time
}

// Option configures a Service
type Option func(*options)

type options struct {
	validate    *validator.Validate
	metrics     *telemetry.CRUDMetrics
	maxPageSize int
	now         func() time.Time
}

// WithMetrics records operation counts and latencies
func WithMetrics(m *telemetry.CRUDMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithMaxPageSize rejects list requests above n items per page. n <= 0 removes the cap.
func WithMaxPageSize(n int) Option {
	return func(o *options) { o.maxPageSize = n }
}

// WithValidator replaces the validator used on created and modified entities
func WithValidator(v *validator.Validate) Option {
	return func(o *options) { o.validate = v }
}

// WithClock sets the time source for audit stamps
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewService creates a Service for the entity described by entity
func NewService[T any, P interface {
	*T
	shared.Record
}](repo shared.CRUDRepository[T], entity shared.EntitySchema, opts ...Option) *Service[T, P] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.validate == nil {
		o.validate = NewValidator()
	}
	return &Service[T, P]{
		repo:        repo,
		entity:      entity,
		validate:    o.validate,
		metrics:     o.metrics,
		maxPageSize: o.maxPageSize,
		now:         o.now,
	}
}

// Schema returns the entity schema the service serves
func (s *Service[T, P]) Schema() shared.EntitySchema {
	return s.entity
}

// MaxPageSize returns the page size cap, 0 when unbounded
func (s *Service[T, P]) MaxPageSize() int {
	return s.maxPageSize
}

// Create assigns a new id, stamps the creation audit fields and the caller's tenant,
// validates and inserts model. It returns the new id.
func (s *Service[T, P]) Create(ctx context.Context, actor Actor, model *T) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.run(ctx, OpCreate, actor, func(ctx context.Context) error {
		if model == nil {
			return shared.ErrInvalidInput
		}
		p := P(model)
		p.SetID(uuid.New())
		base := p.Base()
		base.MarkCreated(actor.user(), s.now().UTC())
		base.UpdatedOn, base.UpdatedBy = nil, nil
		s.stampTenant(model, actor)

		if err := s.check(model); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, model); err != nil {
			return err
		}
		id = p.GetID()
		logger.L(ctx).Debug("entity created", zap.String("entity", s.entity.Name), zap.String("id", id.String()))
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// GetByID returns the entity with its associations loaded, or shared.ErrNotFound
func (s *Service[T, P]) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*T, error) {
	var entity *T
	err := s.run(ctx, OpGet, actor, func(ctx context.Context) error {
		var err error
		entity, err = s.repo.FindByID(ctx, actor.TenantID, id)
		return err
	}, telemetry.SpanAttrEntityID, id.String())
	return entity, err
}

// Get returns one page of entities after applying the query's filter, search and sort.
func (s *Service[T, P]) Get(ctx context.Context, actor Actor, query shared.ListQuery) (shared.Page[T], error) {
	var page shared.Page[T]
	err := s.run(ctx, OpList, actor, func(ctx context.Context) error {
		if err := shared.ValidatePage(query.PageNumber, query.PageSize, s.maxPageSize); err != nil {
			return err
		}
		items, total, err := s.repo.FindPage(ctx, actor.TenantID, query)
		if err != nil {
			return err
		}
		page = shared.NewPage(items, total, query.PageNumber, query.PageSize)
		s.metrics.ObserveList(ctx, s.entity.Name, len(page.Items))
		return nil
	},
		telemetry.SpanAttrPageNumber, query.PageNumber,
		telemetry.SpanAttrPageSize, query.PageSize,
		telemetry.SpanAttrCriteria, len(query.Criteria),
	)
	return page, err
}

// Update replaces every attribute of the stored entity with those of entity. Identity,
// tenant and creation stamps are kept from the stored row.
func (s *Service[T, P]) Update(ctx context.Context, actor Actor, id uuid.UUID, entity *T) error {
	return s.run(ctx, OpUpdate, actor, func(ctx context.Context) error {
		if entity == nil {
			return shared.ErrInvalidInput
		}
		if P(entity).GetID() != id {
			return shared.ErrMismatchedID
		}
		stored, err := s.repo.FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		return s.save(ctx, actor, stored, entity)
	}, telemetry.SpanAttrEntityID, id.String())
}

// Patch applies an RFC 6902 JSON Patch document to the stored entity. Paths name
// attributes case-insensitively by property or JSON name.
func (s *Service[T, P]) Patch(ctx context.Context, actor Actor, id uuid.UUID, document []byte) error {
	return s.run(ctx, OpPatch, actor, func(ctx context.Context) error {
		patch, err := decodePatch(s.entity.Fields, document)
		if err != nil {
			return err
		}
		stored, err := s.repo.FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		patched := new(T)
		if err := applyPatch(patch, stored, patched); err != nil {
			return err
		}
		return s.save(ctx, actor, stored, patched)
	}, telemetry.SpanAttrEntityID, id.String())
}

// Delete removes the entity, or returns shared.ErrNotFound when it does not exist
func (s *Service[T, P]) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	return s.run(ctx, OpDelete, actor, func(ctx context.Context) error {
		return s.repo.Delete(ctx, actor.TenantID, id)
	}, telemetry.SpanAttrEntityID, id.String())
}

// save writes next over stored after restoring the fields callers may not change
func (s *Service[T, P]) save(ctx context.Context, actor Actor, stored, next *T) error {
	P(next).Base().KeepCreation(P(stored).Base())
	if s.entity.TenantScoped {
		if from, ok := any(stored).(shared.TenantScoped); ok {
			if to, ok := any(next).(shared.TenantScoped); ok {
				to.SetTenantID(from.GetTenantID())
			}
		}
	}
	P(next).Base().MarkUpdated(actor.user(), s.now().UTC())

	if err := s.check(next); err != nil {
		return err
	}
	return s.repo.Save(ctx, actor.TenantID, next)
}

// stampTenant assigns the caller's tenant to tenant-scoped entities. Callers without a
// tenant keep whatever the payload carries.
func (s *Service[T, P]) stampTenant(model *T, actor Actor) {
	if !s.entity.TenantScoped || actor.TenantID == uuid.Nil {
		return
	}
	if ts, ok := any(model).(shared.TenantScoped); ok {
		tenantID := actor.TenantID
		ts.SetTenantID(&tenantID)
	}
}

// check runs tag validation followed by the entity's own rules
func (s *Service[T, P]) check(model *T) error {
	if err := s.validate.Struct(model); err != nil {
		return ValidationError(err)
	}
	if v, ok := any(model).(shared.Validatable); ok {
		if err := v.Validate(); err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				return err
			}
			return shared.NewValidationError(err.Error())
		}
	}
	return nil
}

// run wraps fn with a service span, profiling labels and operation metrics
func (s *Service[T, P]) run(ctx context.Context, op string, actor Actor, fn func(context.Context) error, keyValues ...any) error {
	start := time.Now()
	keyValues = append(keyValues, telemetry.SpanAttrEntity, s.entity.Name)
	if actor.TenantID != uuid.Nil {
		keyValues = append(keyValues, telemetry.SpanAttrTenantID, actor.TenantID.String())
	}
	ctx, span := telemetry.StartServiceSpan(ctx, s.entity.Path, op, keyValues...)
	defer span.End()

	var err error
	telemetry.WithProfilingLabels(ctx, telemetry.CRUDLabels(s.entity.Name, op), func(c context.Context) {
		err = fn(c)
	})

	result := outcome(err)
	switch result {
	case telemetry.OutcomeError:
		telemetry.RecordError(span, err)
		logger.L(ctx).Error("crud operation failed",
			zap.String("entity", s.entity.Name),
			zap.String("operation", op),
			zap.Error(err),
		)
	case telemetry.OutcomeNotFound, telemetry.OutcomeRejected:
		telemetry.AddEvent(span, "request_rejected", "reason", err.Error())
	}
	s.metrics.Observe(ctx, s.entity.Name, op, result, start)
	return err
}

func outcome(err error) string {
	if err == nil {
		return telemetry.OutcomeSuccess
	}
	if errors.Is(err, shared.ErrNotFound) {
		return telemetry.OutcomeNotFound
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return telemetry.OutcomeRejected
	}
	return telemetry.OutcomeError
}
