package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/campus/backend/internal/application/crud"
	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/interfaces/http/dto"
	"github.com/campus/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Page metadata headers set on list responses
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPageNumber = "X-Page-Number"
	HeaderPageSize   = "X-Page-Size"
	HeaderTotalPages = "X-Total-Pages"
)

// CRUDService is the application service behind a CRUDHandler
type CRUDService[T any] interface {
	Create(ctx context.Context, actor crud.Actor, model *T) (uuid.UUID, error)
	GetByID(ctx context.Context, actor crud.Actor, id uuid.UUID) (*T, error)
	Get(ctx context.Context, actor crud.Actor, query shared.ListQuery) (shared.Page[T], error)
	Update(ctx context.Context, actor crud.Actor, id uuid.UUID, entity *T) error
	Patch(ctx context.Context, actor crud.Actor, id uuid.UUID, document []byte) error
	Delete(ctx context.Context, actor crud.Actor, id uuid.UUID) error
	Schema() shared.EntitySchema
	MaxPageSize() int
}

// CRUDHandler serves the six REST operations of one entity
type CRUDHandler[T any, P interface {
	*T
	shared.Record
}] struct {
	BaseHandler
	service         CRUDService[T]
	defaultPageSize int
}

// NewCRUDHandler creates a handler for service. defaultPageSize applies when the
// pageSize query parameter is absent.
func NewCRUDHandler[T any, P interface {
	*T
	shared.Record
}](service CRUDService[T], defaultPageSize int) *CRUDHandler[T, P] {
	if defaultPageSize < 1 {
		defaultPageSize = shared.DefaultPageSize
	}
	return &CRUDHandler[T, P]{service: service, defaultPageSize: defaultPageSize}
}

// Schema returns the entity schema of the underlying service
func (h *CRUDHandler[T, P]) Schema() shared.EntitySchema {
	return h.service.Schema()
}

// RegisterRoutes mounts the entity routes on rg, each guarded by its entitlement
func (h *CRUDHandler[T, P]) RegisterRoutes(rg *gin.RouterGroup) {
	schema := h.service.Schema()
	g := rg.Group("/" + schema.Path)
	g.POST("", middleware.RequirePermission(schema.Permission(shared.ActionCreate)), h.Create)
	g.GET("", middleware.RequirePermission(schema.Permission(shared.ActionRead)), h.List)
	g.GET("/:id", middleware.RequirePermission(schema.Permission(shared.ActionRead)), h.GetByID)
	g.PUT("/:id", middleware.RequirePermission(schema.Permission(shared.ActionUpdate)), h.Update)
	g.PATCH("/:id", middleware.RequirePermission(schema.Permission(shared.ActionUpdate)), h.Patch)
	g.DELETE("/:id", middleware.RequirePermission(schema.Permission(shared.ActionDelete)), h.Delete)
}

// Create handles POST /{entity}
func (h *CRUDHandler[T, P]) Create(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	model := new(T)
	if !h.BindJSON(c, model) {
		return
	}
	id, err := h.service.Create(c.Request.Context(), actor, model)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.IDResponse{ID: id})
}

// List handles GET /{entity}
func (h *CRUDHandler[T, P]) List(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	query, err := h.listQuery(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	page, err := h.service.Get(c.Request.Context(), actor, query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header(HeaderTotalCount, strconv.FormatInt(page.Total, 10))
	c.Header(HeaderPageNumber, strconv.Itoa(page.PageNumber))
	c.Header(HeaderPageSize, strconv.Itoa(page.PageSize))
	c.Header(HeaderTotalPages, strconv.Itoa(page.TotalPages))
	c.JSON(http.StatusOK, page.Items)
}

// listQuery reads and checks the list parameters. Page bounds are rejected here so a
// bad request never reaches the store.
func (h *CRUDHandler[T, P]) listQuery(c *gin.Context) (shared.ListQuery, error) {
	pageNumber, err := intParam(c, "pageNumber", shared.DefaultPageNumber)
	if err != nil {
		return shared.ListQuery{}, shared.ErrInvalidPage
	}
	pageSize, err := intParam(c, "pageSize", h.defaultPageSize)
	if err != nil {
		return shared.ListQuery{}, shared.ErrInvalidSize
	}
	if err := shared.ValidatePage(pageNumber, pageSize, h.service.MaxPageSize()); err != nil {
		return shared.ListQuery{}, err
	}
	criteria, err := shared.ParseCriteria(c.Query("filters"))
	if err != nil {
		return shared.ListQuery{}, err
	}
	return shared.ListQuery{
		Criteria:   criteria,
		SearchTerm: c.Query("searchTerm"),
		PageNumber: pageNumber,
		PageSize:   pageSize,
		SortField:  c.Query("sortField"),
		SortOrder:  c.Query("sortOrder"),
	}, nil
}

func intParam(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// GetByID handles GET /{entity}/{id}
func (h *CRUDHandler[T, P]) GetByID(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}
	entity, err := h.service.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// Update handles PUT /{entity}/{id}
func (h *CRUDHandler[T, P]) Update(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}
	entity := new(T)
	if !h.BindJSON(c, entity) {
		return
	}
	if P(entity).GetID() != id {
		h.HandleDomainError(c, shared.ErrMismatchedID)
		return
	}
	if err := h.service.Update(c.Request.Context(), actor, id, entity); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: true})
}

// Patch handles PATCH /{entity}/{id} with an RFC 6902 document
func (h *CRUDHandler[T, P]) Patch(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}
	document, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge, "Request body exceeds maximum allowed size")
			return
		}
		h.BadRequest(c, "Invalid request body")
		return
	}
	if len(document) == 0 {
		h.HandleDomainError(c, shared.ErrPatchMissing)
		return
	}
	if err := h.service.Patch(c.Request.Context(), actor, id, document); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: true})
}

// Delete handles DELETE /{entity}/{id}
func (h *CRUDHandler[T, P]) Delete(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: true})
}

// target resolves the caller and the :id parameter, answering the error itself
func (h *CRUDHandler[T, P]) target(c *gin.Context) (crud.Actor, uuid.UUID, bool) {
	actor, err := actorFromContext(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return crud.Actor{}, uuid.Nil, false
	}
	id, err := parseID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return crud.Actor{}, uuid.Nil, false
	}
	return actor, id, true
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
