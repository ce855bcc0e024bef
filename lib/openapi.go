package folio

// OpenAPIInfo represents the metadata for an OpenAPI specification
type OpenAPIInfo struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version"`
}

// OpenAPISchema represents a schema in an OpenAPI specification
type OpenAPISchema struct {
	Type        string                    `yaml:"type,omitempty"`
	Format      string                    `yaml:"format,omitempty"`
	Description string                    `yaml:"description,omitempty"`
	Ref         string                    `yaml:"$ref,omitempty"`
	Required    []string                  `yaml:"required,omitempty"`
	Properties  map[string]*OpenAPISchema `yaml:"properties,omitempty"`
	Example     any                       `yaml:"example,omitempty"`
}

// OpenAPIMediaType holds the schema for one content type
type OpenAPIMediaType struct {
	Schema *OpenAPISchema `yaml:"schema,omitempty"`
}

// OpenAPIResponse represents a response in an OpenAPI specification
type OpenAPIResponse struct {
	Description string                       `yaml:"description"`
	Content     map[string]*OpenAPIMediaType `yaml:"content,omitempty"`
}

// OpenAPIRequestBody represents a request body in an OpenAPI specification
type OpenAPIRequestBody struct {
	Description string                       `yaml:"description,omitempty"`
	Required    bool                         `yaml:"required,omitempty"`
	Content     map[string]*OpenAPIMediaType `yaml:"content,omitempty"`
}

// OpenAPIPath represents a single operation on a path
type OpenAPIPath struct {
	Summary     string                   `yaml:"summary,omitempty"`
	Description string                   `yaml:"description,omitempty"`
	OperationId string                   `yaml:"operationId,omitempty"`
	Tags        []string                 `yaml:"tags,omitempty"`
	RequestBody *OpenAPIRequestBody      `yaml:"requestBody,omitempty"`
	Responses   map[int]*OpenAPIResponse `yaml:"responses"`
}

// OpenAPIComponents holds reusable schemas
type OpenAPIComponents struct {
	Schemas map[string]*OpenAPISchema `yaml:"schemas"`
}

// OpenAPISpec represents the entire OpenAPI document
type OpenAPISpec struct {
	OpenAPI    string                             `yaml:"openapi"`
	Info       *OpenAPIInfo                       `yaml:"info"`
	Components *OpenAPIComponents                 `yaml:"components"`
	Paths      map[string]map[string]*OpenAPIPath `yaml:"paths"`
	Tags       []map[string]string                `yaml:"tags,omitempty"`
}
