package swagger

// ParamKind is where a parameter is carried in the request.
type ParamKind string

const (
	ParamPath   ParamKind = "path"
	ParamQuery  ParamKind = "query"
	ParamHeader ParamKind = "header"
	ParamForm   ParamKind = "form"
	ParamBody   ParamKind = "body"

	// ParamNone marks an unannotated parameter of a POST operation: the
	// implicit request body. It serializes as "body".
	ParamNone ParamKind = "none"
)

// Parameter is one operation parameter.
type Parameter struct {
	Kind        ParamKind
	Name        string
	Description string
	Type        string
}

// ResponseMessage is a documented response status.
type ResponseMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HTTPMethod is an HTTP verb. The empty value means "not an endpoint".
type HTTPMethod string

const (
	GET     HTTPMethod = "GET"
	POST    HTTPMethod = "POST"
	PUT     HTTPMethod = "PUT"
	DELETE  HTTPMethod = "DELETE"
	HEAD    HTTPMethod = "HEAD"
	OPTIONS HTTPMethod = "OPTIONS"
	PATCH   HTTPMethod = "PATCH"
)

// HTTPMethods lists the recognized verbs.
var HTTPMethods = []HTTPMethod{GET, POST, PUT, DELETE, HEAD, OPTIONS, PATCH}

// Operation is one endpoint.
type Operation struct {
	// Method is the HTTP verb. Empty for sub-resource locators, which carry
	// a path but no verb.
	Method HTTPMethod

	// Name is the declaring method's name (the Swagger "nickname").
	Name string

	// Path is the full path: enclosing context followed by the method fragment.
	Path string

	Parameters       []Parameter
	ResponseMessages []ResponseMessage
	Summary          string
	Notes            string

	// ReturnType is the canonical name of the return type.
	ReturnType string
}

// IsEndpoint reports whether the operation is bound to a verb.
func (o *Operation) IsEndpoint() bool { return o.Method != "" }

// API groups the operations that share a path.
type API struct {
	Path        string       `json:"path"`
	Description string       `json:"description,omitempty"`
	Operations  []*Operation `json:"operations"`
}

// Declaration is a Swagger 1.x resource declaration: one resource class with
// its endpoints and the models they reference.
type Declaration struct {
	APIVersion     string    `json:"apiVersion"`
	SwaggerVersion string    `json:"swaggerVersion"`
	BasePath       string    `json:"basePath"`
	ResourcePath   string    `json:"resourcePath"`
	APIs           []API     `json:"apis"`
	Models         *ModelSet `json:"models,omitempty"`
	Description    string    `json:"description,omitempty"`
}

// ResourceListing is the top-level index of resource declarations.
type ResourceListing struct {
	APIVersion     string               `json:"apiVersion"`
	SwaggerVersion string               `json:"swaggerVersion"`
	BasePath       string               `json:"basePath"`
	APIs           []ResourceListingAPI `json:"apis"`
}

// ResourceListingAPI is one entry of a ResourceListing.
type ResourceListingAPI struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Contains reports whether the listing already has an entry equal to api.
func (l *ResourceListing) Contains(api ResourceListingAPI) bool {
	for _, a := range l.APIs {
		if a == api {
			return true
		}
	}
	return false
}
