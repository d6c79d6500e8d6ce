package telemetry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestDBMetrics_RecordsQueriesThroughPlugin(t *testing.T) {
	mp, reader := setupMeterWithReader()
	m, err := NewDBMetrics(mp.Meter("db.client"), DBMetricsConfig{}, nopLogger())
	require.NoError(t, err)

	db := setupTestDB(t)
	require.NoError(t, db.Use(m))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&TestModel{Name: "a"}).Error)
	require.NoError(t, db.WithContext(ctx).Create(&TestModel{Name: "b"}).Error)
	var rows []TestModel
	require.NoError(t, db.WithContext(ctx).Find(&rows).Error)
	require.NoError(t, db.WithContext(ctx).Model(&TestModel{}).Where("name = ?", "a").Update("name", "c").Error)
	require.NoError(t, db.WithContext(ctx).Where("name = ?", "b").Delete(&TestModel{}).Error)

	total := collect(t, reader, "db_query_total")
	assert.Equal(t, int64(2), sumFor(t, total, AttrDBOperation.String("INSERT")))
	assert.Equal(t, int64(1), sumFor(t, total, AttrDBOperation.String("SELECT")))
	assert.Equal(t, int64(1), sumFor(t, total, AttrDBOperation.String("UPDATE")))
	assert.Equal(t, int64(1), sumFor(t, total, AttrDBOperation.String("DELETE")))
}

func TestDBMetrics_SlowQuery(t *testing.T) {
	mp, reader := setupMeterWithReader()
	m, err := NewDBMetrics(mp.Meter("db.client"), DBMetricsConfig{SlowQueryThreshold: 10 * time.Millisecond}, nopLogger())
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordQuery(ctx, "SELECT", "courses", 50*time.Millisecond)
	m.RecordQuery(ctx, "SELECT", "", 50*time.Millisecond)
	m.RecordQuery(ctx, "SELECT", "courses", time.Millisecond)

	slow := collect(t, reader, "db_slow_query_total")
	assert.Equal(t, int64(1), sumFor(t, slow, AttrDBTable.String("courses")))
	assert.Equal(t, int64(1), sumFor(t, slow, AttrDBTable.String("unknown")))
}

func TestDBMetrics_CollectPoolStats(t *testing.T) {
	mp, reader := setupMeterWithReader()
	m, err := NewDBMetrics(mp.Meter("db.client"), DBMetricsConfig{}, nopLogger())
	require.NoError(t, err)

	m.CollectPoolStats(context.Background(), sql.DBStats{MaxOpenConnections: 25, OpenConnections: 4, InUse: 1, Idle: 3})

	maxConns := collect(t, reader, "db_pool_connections_max")
	require.NotNil(t, maxConns)
	gauge, ok := maxConns.Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(25), gauge.DataPoints[0].Value)

	conns := collect(t, reader, "db_pool_connections")
	require.NotNil(t, conns)
	states, ok := conns.Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	byState := map[string]int64{}
	for _, dp := range states.DataPoints {
		state, _ := dp.Attributes.Value(AttrDBState)
		byState[state.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"idle": 3, "in_use": 1, "open": 4}, byState)
}

func TestDBMetrics_StartAndStop(t *testing.T) {
	mp, _ := setupMeterWithReader()
	m, err := NewDBMetrics(mp.Meter("db.client"), DBMetricsConfig{PoolStatsInterval: time.Millisecond}, nopLogger())
	require.NoError(t, err)

	sqlDB, err := setupTestDB(t).DB()
	require.NoError(t, err)

	m.StartPoolStatsCollection(context.Background(), sqlDB)
	time.Sleep(5 * time.Millisecond)
	m.Stop()
	m.Stop()
}

func TestDetectOperationType(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{`SELECT * FROM "courses"`, "SELECT"},
		{`  insert into terms`, "INSERT"},
		{`UPDATE "events" SET`, "UPDATE"},
		{`DELETE FROM "breaks"`, "DELETE"},
		{`CREATE TABLE "x" (id int)`, "OTHER"},
		{``, "OTHER"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectOperationType(tt.sql), tt.sql)
	}
}
