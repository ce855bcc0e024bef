package folio

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"folio/shared/logger"
)

// Docs collects registered operations into an OpenAPI document
type Docs struct {
	doc *OpenAPISpec
	log logger.Logger

	once sync.Once
	yaml []byte
	err  error
}

// NewDocs creates an empty document titled after the service
func NewDocs(l logger.Logger, c Config) *Docs {
	return &Docs{
		doc: &OpenAPISpec{
			OpenAPI: "3.0.3",
			Info: &OpenAPIInfo{
				Title:       c.Service.Name,
				Version:     c.Service.Version,
				Description: c.Service.Description,
			},
			Components: &OpenAPIComponents{
				Schemas: make(map[string]*OpenAPISchema),
			},
			Paths: make(map[string]map[string]*OpenAPIPath),
		},
		log: l,
	}
}

// AddTag adds a tag to the document
func (d *Docs) AddTag(name, description string) {
	d.doc.Tags = append(d.doc.Tags, map[string]string{
		"name":        name,
		"description": description,
	})
}

// AddPath documents an operation, registering schemas for its bodies
func (d *Docs) AddPath(op *HTTPOperation) {
	if d.doc.Paths[op.Path] == nil {
		d.doc.Paths[op.Path] = make(map[string]*OpenAPIPath)
	}

	path := &OpenAPIPath{
		Summary:     op.Name,
		Description: op.Description,
		OperationId: toOperationID(op.Name),
		Responses:   make(map[int]*OpenAPIResponse),
	}
	if op.Tag != "" {
		path.Tags = []string{op.Tag}
	}

	if op.RequestBody != nil {
		ref := d.AddSchema(op.RequestBody)
		path.RequestBody = &OpenAPIRequestBody{
			Description: fmt.Sprintf("Request body for %s", op.Name),
			Required:    true,
			Content: map[string]*OpenAPIMediaType{
				"application/json":                  {Schema: ref},
				"application/x-www-form-urlencoded": {Schema: ref},
			},
		}
	}

	if op.Response != nil {
		path.Responses[op.Response.Status] = d.response(op.Response.Status, op.Response.Body)
		for status, body := range op.Response.Errors {
			path.Responses[status] = d.response(status, body)
		}
	} else {
		path.Responses[http.StatusOK] = &OpenAPIResponse{Description: http.StatusText(http.StatusOK)}
	}

	d.doc.Paths[op.Path][strings.ToLower(op.Method)] = path
}

func (d *Docs) response(status int, body any) *OpenAPIResponse {
	resp := &OpenAPIResponse{Description: http.StatusText(status)}
	if body != nil {
		resp.Content = map[string]*OpenAPIMediaType{
			"application/json": {Schema: d.AddSchema(body)},
		}
	}
	return resp
}

// AddSchema registers the struct type of v and returns a reference to it.
// Field names come from json tags, descriptions and examples from desc and ex tags.
func (d *Docs) AddSchema(v any) *OpenAPISchema {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	ref := &OpenAPISchema{Ref: "#/components/schemas/" + t.Name()}
	if _, ok := d.doc.Components.Schemas[t.Name()]; ok {
		return ref
	}

	schema := &OpenAPISchema{
		Type:       "object",
		Properties: make(map[string]*OpenAPISchema),
	}
	for i := range t.NumField() {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		prop := &OpenAPISchema{
			Type:        openAPIType(field.Type.Kind()),
			Description: field.Tag.Get("desc"),
		}
		if ex := field.Tag.Get("ex"); ex != "" {
			prop.Example = ex
		}
		rules := field.Tag.Get("validate")
		if strings.Contains(rules, "email") {
			prop.Format = "email"
		}
		if strings.Contains(rules, "required") {
			schema.Required = append(schema.Required, name)
		}
		schema.Properties[name] = prop
	}

	d.doc.Components.Schemas[t.Name()] = schema
	return ref
}

// YAML renders the document once; later registrations are not reflected
func (d *Docs) YAML() ([]byte, error) {
	d.once.Do(func() {
		d.yaml, d.err = yaml.Marshal(d.doc)
	})
	return d.yaml, d.err
}

// SpecHandler returns the OpenAPI document in YAML format
func (d *Docs) SpecHandler(c *gin.Context) {
	data, err := d.YAML()
	if err != nil {
		d.log.Error("Failed to marshal OpenAPI document", logger.Err(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", data)
}

func openAPIType(k reflect.Kind) string {
	switch k {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return "string"
	}
}

// toOperationID converts "Send Email" to "sendEmail"
func toOperationID(name string) string {
	id := toPascalCase(name)
	if id == "" {
		return id
	}
	return strings.ToLower(id[:1]) + id[1:]
}
