package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func useGlobalTracer(t *testing.T, tp *sdktrace.TracerProvider) {
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestNewDBTracingPlugin_Defaults(t *testing.T) {
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, nopLogger())
	assert.Equal(t, 200*time.Millisecond, p.config.SlowQueryThresh)
	assert.Equal(t, "postgresql", p.config.DBSystem)
	assert.False(t, p.config.LogFullSQL)
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	tp, recorder := setupTracerWithRecorder()
	useGlobalTracer(t, tp)

	db := setupTestDB(t)
	require.NoError(t, NewDBTracingPlugin(DBTracingConfig{Enabled: false}, nopLogger()).RegisterOtelGorm(db))
	require.NoError(t, db.Create(&TestModel{Name: "x"}).Error)

	assert.Empty(t, recorder.Ended())
}

func TestDBTracingPlugin_AnnotatesSpans(t *testing.T) {
	tp, recorder := setupTracerWithRecorder()
	useGlobalTracer(t, tp)

	db := setupTestDB(t)
	plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: true, DBSystem: "sqlite", SlowQueryThresh: time.Nanosecond}, nopLogger())
	require.NoError(t, plugin.RegisterOtelGorm(db))

	require.NoError(t, db.WithContext(context.Background()).Create(&TestModel{Name: "x"}).Error)

	var annotated sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		if v, ok := spanAttr(s, "db.sql.table"); ok && v.AsString() == "test_models" {
			annotated = s
		}
	}
	require.NotNil(t, annotated, "expected a span annotated with the table name")

	rows, ok := spanAttr(annotated, "db.rows_affected")
	require.True(t, ok)
	assert.Equal(t, int64(1), rows.AsInt64())

	slow, ok := spanAttr(annotated, "db.slow_query")
	require.True(t, ok)
	assert.True(t, slow.AsBool())

	var events []string
	for _, e := range annotated.Events() {
		events = append(events, e.Name)
	}
	assert.Contains(t, events, "slow_query_warning")
}

func TestDBTracingPlugin_MarksErrors(t *testing.T) {
	tp, recorder := setupTracerWithRecorder()
	useGlobalTracer(t, tp)

	db := setupTestDB(t)
	require.NoError(t, NewDBTracingPlugin(DBTracingConfig{Enabled: true}, nopLogger()).RegisterOtelGorm(db))

	var rows []TestModel
	err := db.Table("missing_table").Find(&rows).Error
	require.Error(t, err)

	var failed bool
	for _, s := range recorder.Ended() {
		if s.Status().Code == codes.Error {
			failed = true
		}
	}
	assert.True(t, failed)
}

func TestDBTracingPlugin_RecordNotFoundIsNotAnError(t *testing.T) {
	tp, recorder := setupTracerWithRecorder()
	useGlobalTracer(t, tp)

	db := setupTestDB(t)
	require.NoError(t, NewDBTracingPlugin(DBTracingConfig{Enabled: true}, nopLogger()).RegisterOtelGorm(db))

	var row TestModel
	_ = db.First(&row, 12345).Error

	for _, s := range recorder.Ended() {
		assert.NotEqual(t, codes.Error, s.Status().Code, s.Name())
	}
}
