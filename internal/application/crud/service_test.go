package crud

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/infrastructure/persistence"
	"github.com/campus/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// note is a tenant-scoped entity used to exercise the service
type note struct {
	shared.TenantEntity
	Title    string          `json:"title" gorm:"type:varchar(50);not null" binding:"required,max=50"`
	Body     string          `json:"body" gorm:"type:text"`
	Priority int             `json:"priority" gorm:"not null;default:0" binding:"gte=0"`
	Budget   decimal.Decimal `json:"budget" gorm:"type:decimal(10,2)"`
	DueOn    *time.Time      `json:"dueOn"`
	Done     bool            `json:"done"`
}

func (note) TableName() string { return "notes" }

func (n *note) Validate() error {
	if n.Done && n.DueOn == nil {
		return shared.NewValidationError("A done note needs a due date")
	}
	return nil
}

var noteSchema = shared.MustEntitySchema("Note", true,
	shared.Text("Title").Search(),
	shared.Text("Body").Search(),
	shared.Int("Priority"),
	shared.Decimal("Budget"),
	shared.Time("DueOn"),
	shared.Bool("Done"),
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type noteService = Service[note, *note]

func newNoteService(t *testing.T, opts ...Option) (*noteService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&note{}))

	repo, err := persistence.NewGormCRUDRepository[note](db, noteSchema)
	require.NoError(t, err)

	opts = append([]Option{WithClock(func() time.Time { return fixedNow }), WithMaxPageSize(500)}, opts...)
	return NewService[note, *note](repo, noteSchema, opts...), db
}

func newActor() Actor {
	return Actor{TenantID: uuid.New(), UserID: uuid.New()}
}

// MockNoteRepository is a mock implementation of shared.CRUDRepository[note]
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*note, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*note), args.Error(1)
}

func (m *MockNoteRepository) FindPage(ctx context.Context, tenantID uuid.UUID, query shared.ListQuery) ([]note, int64, error) {
	args := m.Called(ctx, tenantID, query)
	return args.Get(0).([]note), args.Get(1).(int64), args.Error(2)
}

func (m *MockNoteRepository) Create(ctx context.Context, entity *note) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockNoteRepository) Save(ctx context.Context, tenantID uuid.UUID, entity *note) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func TestService_CreateAndGetByID(t *testing.T) {
	svc, _ := newNoteService(t)
	actor := newActor()
	ctx := context.Background()

	foreignTenant := uuid.New()
	payloadID := uuid.New()
	model := &note{Title: "Order chalk", Body: "Two boxes", Priority: 2, Budget: decimal.RequireFromString("12.50")}
	model.ID = payloadID
	model.TenantID = &foreignTenant

	id, err := svc.Create(ctx, actor, model)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.NotEqual(t, payloadID, id)

	got, err := svc.GetByID(ctx, actor, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Order chalk", got.Title)
	assert.Equal(t, "Two boxes", got.Body)
	assert.Equal(t, 2, got.Priority)
	assert.True(t, got.Budget.Equal(decimal.RequireFromString("12.5")))

	require.NotNil(t, got.TenantID)
	assert.Equal(t, actor.TenantID, *got.TenantID)
	require.NotNil(t, got.CreatedOn)
	assert.True(t, got.CreatedOn.Equal(fixedNow))
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, actor.UserID, *got.CreatedBy)
	assert.Nil(t, got.UpdatedOn)
	assert.Nil(t, got.UpdatedBy)
}

func TestService_Create_Validation(t *testing.T) {
	svc, db := newNoteService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		note *note
		msg  string
	}{
		{name: "missing title", note: &note{}, msg: "title: This field is required"},
		{name: "negative priority", note: &note{Title: "x", Priority: -1}, msg: "priority: Must be greater than or equal to 0"},
		{name: "entity rule", note: &note{Title: "x", Done: true}, msg: "A done note needs a due date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, newActor(), tt.note)
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.NewValidationError(""))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	var count int64
	require.NoError(t, db.Model(&note{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestService_GetByID_OtherTenant(t *testing.T) {
	svc, _ := newNoteService(t)
	ctx := context.Background()
	owner := newActor()

	id, err := svc.Create(ctx, owner, &note{Title: "Private"})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, newActor(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// a caller without a tenant is not scoped
	got, err := svc.GetByID(ctx, Actor{}, id)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}

func TestService_Get(t *testing.T) {
	svc, _ := newNoteService(t)
	ctx := context.Background()
	actor := newActor()

	titles := []string{"Paint fence", "Fix projector", "Order chalk", "Book hall", "Print reports"}
	ids := make(map[string]uuid.UUID, len(titles))
	for i, title := range titles {
		id, err := svc.Create(ctx, actor, &note{Title: title, Priority: i})
		require.NoError(t, err)
		ids[title] = id
	}
	_, err := svc.Create(ctx, newActor(), &note{Title: "Order chalk"})
	require.NoError(t, err)

	t.Run("filter equal returns exactly the created entity", func(t *testing.T) {
		page, err := svc.Get(ctx, actor, shared.ListQuery{
			Criteria:   []shared.Criterion{{PropertyName: "Title", Operator: shared.OpEqual, Value: "Order chalk"}},
			PageNumber: 1,
			PageSize:   10,
		})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, ids["Order chalk"], page.Items[0].ID)
		assert.EqualValues(t, 1, page.Total)
	})

	t.Run("pages are contiguous slices of the sorted result", func(t *testing.T) {
		all, err := svc.Get(ctx, actor, shared.ListQuery{PageNumber: 1, PageSize: 10, SortField: "title"})
		require.NoError(t, err)
		require.Len(t, all.Items, 5)

		second, err := svc.Get(ctx, actor, shared.ListQuery{PageNumber: 2, PageSize: 2, SortField: "title"})
		require.NoError(t, err)
		require.Len(t, second.Items, 2)
		assert.Equal(t, all.Items[2].ID, second.Items[0].ID)
		assert.Equal(t, all.Items[3].ID, second.Items[1].ID)
		assert.EqualValues(t, 5, second.Total)
		assert.Equal(t, 3, second.TotalPages)
	})

	t.Run("asc and desc reverse each other", func(t *testing.T) {
		asc, err := svc.Get(ctx, actor, shared.ListQuery{PageNumber: 1, PageSize: 10, SortField: "Priority", SortOrder: "ASC"})
		require.NoError(t, err)
		desc, err := svc.Get(ctx, actor, shared.ListQuery{PageNumber: 1, PageSize: 10, SortField: "Priority", SortOrder: "desc"})
		require.NoError(t, err)
		require.Len(t, desc.Items, len(asc.Items))
		for i := range asc.Items {
			assert.Equal(t, asc.Items[i].ID, desc.Items[len(desc.Items)-1-i].ID)
		}
	})

	t.Run("search matches any searchable field", func(t *testing.T) {
		page, err := svc.Get(ctx, actor, shared.ListQuery{PageNumber: 1, PageSize: 10, SearchTerm: "  PRO "})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, ids["Fix projector"], page.Items[0].ID)
	})

	t.Run("invalid sort order", func(t *testing.T) {
		_, err := svc.Get(ctx, actor, shared.ListQuery{PageNumber: 1, PageSize: 10, SortOrder: "sideways"})
		assert.ErrorIs(t, err, shared.ErrInvalidOrder)
		assert.Equal(t, "Invalid sort order. Use 'asc' or 'desc'", err.Error())
	})

	t.Run("page beyond the last is empty", func(t *testing.T) {
		page, err := svc.Get(ctx, actor, shared.ListQuery{PageNumber: 9, PageSize: 10})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.EqualValues(t, 5, page.Total)
	})
}

func TestService_Get_InvalidPageNeverReachesRepository(t *testing.T) {
	repo := new(MockNoteRepository)
	svc := NewService[note, *note](repo, noteSchema, WithMaxPageSize(50))
	ctx := context.Background()

	tests := []struct {
		name       string
		pageNumber int
		pageSize   int
		want       error
	}{
		{"zero page number", 0, 10, shared.ErrInvalidPage},
		{"negative page number", -3, 10, shared.ErrInvalidPage},
		{"zero page size", 1, 0, shared.ErrInvalidSize},
		{"page size above cap", 1, 51, shared.ErrInvalidSize},
		{"offset beyond int range", math.MaxInt/10 + 2, 10, shared.ErrInvalidPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Get(ctx, Actor{}, shared.ListQuery{PageNumber: tt.pageNumber, PageSize: tt.pageSize})
			require.Error(t, err)
			assert.Equal(t, tt.want.Error(), err.Error())
		})
	}
	repo.AssertNotCalled(t, "FindPage", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Get_RepositoryFailure(t *testing.T) {
	repo := new(MockNoteRepository)
	svc := NewService[note, *note](repo, noteSchema)
	boom := errors.New("connection reset")
	repo.On("FindPage", mock.Anything, uuid.Nil, mock.Anything).Return([]note(nil), int64(0), boom)

	_, err := svc.Get(context.Background(), Actor{}, shared.ListQuery{PageNumber: 1, PageSize: 10})
	assert.ErrorIs(t, err, boom)
	repo.AssertExpectations(t)
}

func TestService_Update(t *testing.T) {
	svc, _ := newNoteService(t)
	ctx := context.Background()
	actor := newActor()

	id, err := svc.Create(ctx, actor, &note{Title: "Draft", Body: "first", Priority: 1})
	require.NoError(t, err)

	t.Run("replaces attributes and keeps creation stamps", func(t *testing.T) {
		editor := Actor{TenantID: actor.TenantID, UserID: uuid.New()}
		otherTenant := uuid.New()
		next := &note{Title: "Final", Priority: 3}
		next.ID = id
		next.TenantID = &otherTenant

		require.NoError(t, svc.Update(ctx, editor, id, next))

		got, err := svc.GetByID(ctx, actor, id)
		require.NoError(t, err)
		assert.Equal(t, "Final", got.Title)
		assert.Empty(t, got.Body)
		assert.Equal(t, 3, got.Priority)
		assert.Equal(t, actor.TenantID, *got.TenantID)
		assert.Equal(t, actor.UserID, *got.CreatedBy)
		require.NotNil(t, got.UpdatedBy)
		assert.Equal(t, editor.UserID, *got.UpdatedBy)
		require.NotNil(t, got.UpdatedOn)
		assert.True(t, got.UpdatedOn.Equal(fixedNow))
	})

	t.Run("mismatched id", func(t *testing.T) {
		next := &note{Title: "x"}
		next.ID = uuid.New()
		err := svc.Update(ctx, actor, id, next)
		assert.ErrorIs(t, err, shared.ErrMismatchedID)
		assert.Equal(t, "Mismatched Id", err.Error())
	})

	t.Run("missing record", func(t *testing.T) {
		missing := uuid.New()
		next := &note{Title: "x"}
		next.ID = missing
		assert.ErrorIs(t, svc.Update(ctx, actor, missing, next), shared.ErrNotFound)
	})

	t.Run("invalid payload", func(t *testing.T) {
		next := &note{}
		next.ID = id
		assert.ErrorIs(t, svc.Update(ctx, actor, id, next), shared.NewValidationError(""))
	})
}

func TestService_Patch(t *testing.T) {
	svc, _ := newNoteService(t)
	ctx := context.Background()
	actor := newActor()

	id, err := svc.Create(ctx, actor, &note{Title: "Draft", Body: "keep me", Priority: 1, Budget: decimal.RequireFromString("10")})
	require.NoError(t, err)

	t.Run("sets one attribute and leaves the others", func(t *testing.T) {
		doc := []byte(`[{"op":"replace","path":"/Title","value":"Patched"},{"op":"replace","path":"/BUDGET","value":"99.95"}]`)
		require.NoError(t, svc.Patch(ctx, actor, id, doc))

		got, err := svc.GetByID(ctx, actor, id)
		require.NoError(t, err)
		assert.Equal(t, "Patched", got.Title)
		assert.True(t, got.Budget.Equal(decimal.RequireFromString("99.95")))
		assert.Equal(t, "keep me", got.Body)
		assert.Equal(t, 1, got.Priority)
		require.NotNil(t, got.UpdatedOn)
	})

	t.Run("identity and tenant cannot be patched", func(t *testing.T) {
		doc := []byte(`[{"op":"replace","path":"/id","value":"` + uuid.NewString() + `"},` +
			`{"op":"replace","path":"/tenantId","value":"` + uuid.NewString() + `"}]`)
		require.NoError(t, svc.Patch(ctx, actor, id, doc))

		got, err := svc.GetByID(ctx, actor, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, actor.TenantID, *got.TenantID)
	})

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{name: "missing document", doc: "", want: shared.ErrPatchMissing},
		{name: "null document", doc: "null", want: shared.ErrPatchMissing},
		{name: "not an array", doc: `{"op":"replace"}`, want: shared.NewPatchError("")},
		{name: "unknown path", doc: `[{"op":"replace","path":"/colour","value":"red"}]`, want: shared.NewPatchError("")},
		{name: "nested path", doc: `[{"op":"replace","path":"/title/0","value":"x"}]`, want: shared.NewPatchError("")},
		{name: "unknown op", doc: `[{"op":"merge","path":"/title","value":"x"}]`, want: shared.NewPatchError("")},
		{name: "failed test op", doc: `[{"op":"test","path":"/title","value":"nope"}]`, want: shared.NewPatchError("")},
		{name: "wrong value type", doc: `[{"op":"replace","path":"/priority","value":"high"}]`, want: shared.NewPatchError("")},
		{name: "invalid result", doc: `[{"op":"replace","path":"/title","value":""}]`, want: shared.NewValidationError("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Patch(ctx, actor, id, []byte(tt.doc)), tt.want)
		})
	}

	t.Run("missing patch message", func(t *testing.T) {
		err := svc.Patch(ctx, actor, id, nil)
		require.Error(t, err)
		assert.Equal(t, "Patch document is missing.", err.Error())
	})

	t.Run("missing record", func(t *testing.T) {
		err := svc.Patch(ctx, actor, uuid.New(), []byte(`[{"op":"replace","path":"/title","value":"x"}]`))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	svc, _ := newNoteService(t)
	ctx := context.Background()
	actor := newActor()

	id, err := svc.Create(ctx, actor, &note{Title: "Temporary"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, newActor(), id), shared.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, actor, id))
	assert.ErrorIs(t, svc.Delete(ctx, actor, id), shared.ErrNotFound)

	_, err = svc.GetByID(ctx, actor, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := telemetry.NewCRUDMetrics(provider.Meter("test"))
	require.NoError(t, err)

	svc, _ := newNoteService(t, WithMetrics(metrics))
	ctx := context.Background()
	actor := newActor()

	_, err = svc.Create(ctx, actor, &note{Title: "Counted"})
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, actor, uuid.New())
	require.Error(t, err)
	_, err = svc.Create(ctx, actor, &note{})
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "campus_crud_operations_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				op, _ := dp.Attributes.Value(telemetry.AttrOperation)
				result, _ := dp.Attributes.Value(telemetry.AttrOutcome)
				counts[op.AsString()+"/"+result.AsString()] += dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{
		"create/success":  1,
		"get/not_found":   1,
		"create/rejected": 1,
	}, counts)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, telemetry.OutcomeSuccess, outcome(nil))
	assert.Equal(t, telemetry.OutcomeNotFound, outcome(shared.ErrNotFound))
	assert.Equal(t, telemetry.OutcomeRejected, outcome(shared.ErrInvalidOrder))
	assert.Equal(t, telemetry.OutcomeError, outcome(errors.New("disk full")))
}
