package shared

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
)

// CRUDRepository is the persistence contract of the generic CRUD pipeline.
// A zero tenantID means the call is not tenant-scoped.
type CRUDRepository[T any] interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*T, error)
	FindPage(ctx context.Context, tenantID uuid.UUID, query ListQuery) ([]T, int64, error)
	Create(ctx context.Context, entity *T) error
	Save(ctx context.Context, tenantID uuid.UUID, entity *T) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// SortOrder is the direction of a sort
type SortOrder string

// Sort orders
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts "asc" or "desc" case-insensitively; empty means ascending.
func ParseSortOrder(order string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	default:
		return "", ErrInvalidOrder
	}
}

// Pagination defaults
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// ListQuery holds the filter, search, sort and pagination inputs of a list request
type ListQuery struct {
	Criteria   []Criterion
	SearchTerm string
	PageNumber int
	PageSize   int
	SortField  string
	SortOrder  string
}

// ValidatePage checks the 1-based page bounds. maxPageSize <= 0 disables the upper bound.
// A page whose row offset does not fit in an int is rejected as an invalid page number.
func ValidatePage(pageNumber, pageSize, maxPageSize int) error {
	if pageSize < 1 || (maxPageSize > 0 && pageSize > maxPageSize) {
		return ErrInvalidSize
	}
	if pageNumber < 1 || pageNumber-1 > math.MaxInt/pageSize {
		return ErrInvalidPage
	}
	return nil
}

// Page is one page of a list result
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPage creates a page result
func NewPage[T any](items []T, total int64, pageNumber, pageSize int) Page[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
