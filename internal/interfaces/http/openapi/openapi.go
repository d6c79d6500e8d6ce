// Package openapi describes the CRUD routes of the served entities as an
// OpenAPI 2.0 document and publishes it to the swagger UI.
//
//	openapi.Register(openapi.Build("/api", version, router.EntitySchemas()))
//	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
package openapi

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/interfaces/http/handler"
	"github.com/go-openapi/spec"
	"github.com/swaggo/swag/v2"
)

// Title is the document title shown by the swagger UI
const Title = "Campus API"

const (
	bearerAuth = "BearerAuth"

	errorDef   = "ErrorResponse"
	idDef      = "IDResponse"
	statusDef  = "StatusResponse"
	patchOpDef = "PatchOperation"
)

// Build returns the document of the CRUD routes of schemas served under basePath
func Build(basePath, version string, schemas []shared.EntitySchema) *spec.Swagger {
	doc := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{InfoProps: spec.InfoProps{
				Title:       Title,
				Version:     version,
				Description: "Generic CRUD over the school entities. List endpoints filter, search, sort and paginate.",
			}},
			BasePath:    basePath,
			Consumes:    []string{"application/json"},
			Produces:    []string{"application/json"},
			Paths:       &spec.Paths{Paths: make(map[string]spec.PathItem, 2*len(schemas))},
			Definitions: commonDefinitions(),
			SecurityDefinitions: spec.SecurityDefinitions{
				bearerAuth: spec.APIKeyAuth("Authorization", "header"),
			},
		},
	}

	for _, s := range schemas {
		doc.Definitions[s.Name] = entityDefinition(s)
		doc.Tags = append(doc.Tags, spec.NewTag(s.Name, "", nil))

		collection, item := entityPaths(s)
		doc.Paths.Paths["/"+s.Path] = collection
		doc.Paths.Paths["/"+s.Path+"/{id}"] = item
	}
	return doc
}

func commonDefinitions() spec.Definitions {
	errorInfo := spec.Schema{}
	errorInfo.Typed("object", "").
		SetProperty("code", *spec.StringProperty()).
		SetProperty("message", *spec.StringProperty()).
		SetProperty("request_id", *spec.StringProperty()).
		SetProperty("details", *spec.ArrayProperty(
			new(spec.Schema).Typed("object", "").
				SetProperty("field", *spec.StringProperty()).
				SetProperty("message", *spec.StringProperty()),
		))

	errorResp := spec.Schema{}
	errorResp.Typed("object", "").
		SetProperty("success", *spec.BooleanProperty()).
		SetProperty("error", errorInfo)

	idResp := spec.Schema{}
	idResp.Typed("object", "").SetProperty("id", *spec.StrFmtProperty("uuid"))

	statusResp := spec.Schema{}
	statusResp.Typed("object", "").SetProperty("status", *spec.BooleanProperty())

	op := spec.StringProperty()
	op.Enum = []interface{}{"add", "remove", "replace", "move", "copy", "test"}
	patchOp := spec.Schema{}
	patchOp.Typed("object", "").
		SetProperty("op", *op).
		SetProperty("path", *spec.StringProperty()).
		SetProperty("from", *spec.StringProperty()).
		SetProperty("value", spec.Schema{}).
		WithRequired("op", "path")

	return spec.Definitions{
		errorDef:   errorResp,
		idDef:      idResp,
		statusDef:  statusResp,
		patchOpDef: patchOp,
	}
}

func entityDefinition(s shared.EntitySchema) spec.Schema {
	def := spec.Schema{}
	def.Typed("object", "")
	for _, f := range s.Fields.Fields() {
		def.SetProperty(f.JSONName, *fieldSchema(f.Kind))
	}
	return def
}

func fieldSchema(kind shared.FieldKind) *spec.Schema {
	switch kind {
	case shared.KindInt:
		return spec.Int64Property()
	case shared.KindDecimal:
		return spec.StrFmtProperty("decimal")
	case shared.KindTime:
		return spec.DateTimeProperty()
	case shared.KindUUID:
		return spec.StrFmtProperty("uuid")
	case shared.KindBool:
		return spec.BooleanProperty()
	default:
		return spec.StringProperty()
	}
}

func ref(name string) *spec.Schema {
	return spec.RefSchema("#/definitions/" + name)
}

func errorResponse(description string) *spec.Response {
	return spec.NewResponse().WithDescription(description).WithSchema(ref(errorDef))
}

func operation(id string, s shared.EntitySchema, action string) *spec.Operation {
	return spec.NewOperation(id+s.Name).
		WithTags(s.Name).
		WithDescription("Requires the "+s.Permission(action)+" permission.").
		SecuredWith(bearerAuth).
		RespondsWith(401, errorResponse("Missing or invalid token")).
		RespondsWith(403, errorResponse("Permission denied")).
		RespondsWith(500, errorResponse("Internal error"))
}

func entityPaths(s shared.EntitySchema) (collection, item spec.PathItem) {
	list := operation("list", s, shared.ActionRead).
		WithSummary("List "+s.Name).
		AddParam(spec.QueryParam("filters").Typed("string", "").
			WithDescription(`JSON array of {"PropertyName","Operator","Value"} criteria`)).
		AddParam(spec.QueryParam("searchTerm").Typed("string", "").
			WithDescription("Case-insensitive substring matched against the searchable fields")).
		AddParam(spec.QueryParam("sortField").Typed("string", "")).
		AddParam(spec.QueryParam("sortOrder").Typed("string", "").WithEnum("asc", "desc")).
		AddParam(spec.QueryParam("pageNumber").Typed("integer", "int32").
			WithDefault(shared.DefaultPageNumber).WithMinimum(1, false)).
		AddParam(spec.QueryParam("pageSize").Typed("integer", "int32").WithMinimum(1, false)).
		RespondsWith(200, spec.NewResponse().
			WithDescription("One page of matching "+s.Name+" records").
			WithSchema(spec.ArrayProperty(ref(s.Name))).
			AddHeader(handler.HeaderTotalCount, spec.ResponseHeader().Typed("integer", "int64")).
			AddHeader(handler.HeaderPageNumber, spec.ResponseHeader().Typed("integer", "int32")).
			AddHeader(handler.HeaderPageSize, spec.ResponseHeader().Typed("integer", "int32")).
			AddHeader(handler.HeaderTotalPages, spec.ResponseHeader().Typed("integer", "int32"))).
		RespondsWith(400, errorResponse("Invalid filter, sort or page"))

	create := operation("create", s, shared.ActionCreate).
		WithSummary("Create "+s.Name).
		AddParam(spec.BodyParam("body", ref(s.Name)).AsRequired()).
		RespondsWith(200, spec.NewResponse().WithDescription("Identifier of the new record").WithSchema(ref(idDef))).
		RespondsWith(400, errorResponse("Invalid body"))

	get := operation("get", s, shared.ActionRead).
		WithSummary("Get "+s.Name).
		RespondsWith(200, spec.NewResponse().WithDescription("The record").WithSchema(ref(s.Name))).
		RespondsWith(404, errorResponse("Not found"))

	update := operation("update", s, shared.ActionUpdate).
		WithSummary("Replace "+s.Name).
		AddParam(spec.BodyParam("body", ref(s.Name)).AsRequired()).
		RespondsWith(200, spec.NewResponse().WithDescription("Updated").WithSchema(ref(statusDef))).
		RespondsWith(400, errorResponse("Invalid body")).
		RespondsWith(404, errorResponse("Not found"))

	patch := operation("patch", s, shared.ActionUpdate).
		WithSummary("Patch "+s.Name+" with an RFC 6902 document").
		WithConsumes("application/json-patch+json", "application/json").
		AddParam(spec.BodyParam("body", spec.ArrayProperty(ref(patchOpDef))).AsRequired()).
		RespondsWith(200, spec.NewResponse().WithDescription("Patched").WithSchema(ref(statusDef))).
		RespondsWith(400, errorResponse("Invalid patch document")).
		RespondsWith(404, errorResponse("Not found"))

	remove := operation("delete", s, shared.ActionDelete).
		WithSummary("Delete "+s.Name).
		RespondsWith(200, spec.NewResponse().WithDescription("Deleted").WithSchema(ref(statusDef))).
		RespondsWith(404, errorResponse("Not found"))

	collection = spec.PathItem{PathItemProps: spec.PathItemProps{Get: list, Post: create}}
	item = spec.PathItem{PathItemProps: spec.PathItemProps{
		Get:        get,
		Put:        update,
		Patch:      patch,
		Delete:     remove,
		Parameters: []spec.Parameter{*spec.PathParam("id").Typed("string", "uuid")},
	}}
	return collection, item
}

// Doc is a published document. It satisfies swag.Swagger.
type Doc struct {
	mu      sync.RWMutex
	content string
}

// ReadDoc returns the published JSON document
func (d *Doc) ReadDoc() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content
}

var (
	published    = &Doc{}
	registerOnce sync.Once
)

// Register publishes doc as the default swag instance read by gin-swagger.
// A later call replaces the published content.
func Register(doc *spec.Swagger) error {
	content, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}

	published.mu.Lock()
	published.content = string(content)
	published.mu.Unlock()

	registerOnce.Do(func() {
		swag.Register(swag.Name, published)
	})
	return nil
}
