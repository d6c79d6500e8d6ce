package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/campus/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)

	assert.NotNil(t, mockDB.DB)
	assert.NotNil(t, mockDB.Mock)
	mockDB.ExpectationsWereMet(t)
}

func TestNewTestUUID_IsStable(t *testing.T) {
	assert.Equal(t, NewTestUUID("tenant-a"), NewTestUUID("tenant-a"))
	assert.NotEqual(t, NewTestUUID("tenant-a"), NewTestUUID("tenant-b"))
}

func TestRequireEventually(t *testing.T) {
	calls := 0
	RequireEventually(t, func() bool {
		calls++
		return calls == 3
	}, time.Second, time.Millisecond)
	assert.Equal(t, 3, calls)
}

func TestAPIClient_Do(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeInvalidJSON, "Invalid request body", ""))
			return
		}
		body["auth"] = c.GetHeader("Authorization")
		c.JSON(http.StatusOK, body)
	})

	client := NewAPIClient(engine, "abc")

	rec := client.Do(t, http.MethodPost, "/echo", map[string]any{"name": "Hall A"})
	got := DecodeJSON[map[string]any](t, rec)
	assert.Equal(t, "Hall A", got["name"])
	assert.Equal(t, "Bearer abc", got["auth"])

	rec = client.WithToken("").Do(t, http.MethodPost, "/echo", "{not json")
	AssertError(t, rec, http.StatusBadRequest, dto.ErrCodeInvalidJSON)
}
