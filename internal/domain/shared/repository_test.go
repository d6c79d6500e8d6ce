package shared

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		input   string
		want    SortOrder
		wantErr bool
	}{
		{"", SortAsc, false},
		{"asc", SortAsc, false},
		{"ASC", SortAsc, false},
		{"Desc", SortDesc, false},
		{" desc ", SortDesc, false},
		{"descending", "", true},
		{"up", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortOrder(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidOrder))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidatePage(t *testing.T) {
	assert.NoError(t, ValidatePage(1, 1, 0))
	assert.NoError(t, ValidatePage(3, 500, 500))
	assert.NoError(t, ValidatePage(1, 100000, 0))

	assert.ErrorIs(t, ValidatePage(0, 10, 500), ErrInvalidPage)
	assert.ErrorIs(t, ValidatePage(-1, 10, 500), ErrInvalidPage)
	assert.ErrorIs(t, ValidatePage(1, 0, 500), ErrInvalidSize)
	assert.ErrorIs(t, ValidatePage(1, 501, 500), ErrInvalidSize)
}

func TestValidatePage_OffsetOverflow(t *testing.T) {
	assert.NoError(t, ValidatePage(math.MaxInt/10+1, 10, 500))
	assert.ErrorIs(t, ValidatePage(math.MaxInt/10+2, 10, 500), ErrInvalidPage)
	assert.ErrorIs(t, ValidatePage(math.MaxInt, 2, 0), ErrInvalidPage)
	assert.NoError(t, ValidatePage(math.MaxInt, 1, 0))
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 23, 1, 10)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(23), page.Total)

	last := NewPage([]int{1}, 21, 3, 10)
	assert.Equal(t, 3, last.TotalPages)

	empty := NewPage[int](nil, 0, 1, 10)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestDomainError_Is(t *testing.T) {
	err := NewDomainError(CodeNotFound, "Course not found")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "Course not found", err.Error())
}

func TestBaseEntity_KeepCreation(t *testing.T) {
	creator := uuid.New()
	stored := BaseEntity{}
	stored.SetID(uuid.New())
	stored.MarkCreated(&creator, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	var incoming BaseEntity
	incoming.KeepCreation(&stored)
	assert.Equal(t, stored.ID, incoming.GetID())
	assert.Equal(t, stored.CreatedOn, incoming.CreatedOn)
	assert.Equal(t, &creator, incoming.CreatedBy)
	assert.Nil(t, incoming.UpdatedOn)
}
