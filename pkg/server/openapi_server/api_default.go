package openapi_server

import (
	"net/http"
	"strings"
)

// DefaultApiController binds http requests to an api service and writes the service results to the http response
type DefaultApiController struct {
	service      DefaultApiServicer
	errorHandler ErrorHandler
}

// DefaultApiOption for how the controller is set up.
type DefaultApiOption func(*DefaultApiController)

// WithDefaultApiErrorHandler inject ErrorHandler into controller
func WithDefaultApiErrorHandler(h ErrorHandler) DefaultApiOption {
	return func(c *DefaultApiController) {
		c.errorHandler = h
	}
}

// NewDefaultApiController creates a default api controller
func NewDefaultApiController(s DefaultApiServicer, opts ...DefaultApiOption) Router {
	controller := &DefaultApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all of the api route for the DefaultApiController
func (c *DefaultApiController) Routes() Routes {
	return Routes{
		{
			"GetBuildings",
			strings.ToUpper("Get"),
			"/buildings",
			c.GetBuildings,
		},
		{
			"FindPath",
			strings.ToUpper("Get"),
			"/findPath",
			c.FindPath,
		},
	}
}

// GetBuildings - Short name to long name of every building
func (c *DefaultApiController) GetBuildings(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetBuildings(r.Context())
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// FindPath - Shortest walk between two buildings
func (c *DefaultApiController) FindPath(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	findPathRequestParam := FindPathRequest{
		Start:  query.Get("start"),
		End:    query.Get("end"),
		Format: query.Get("format"),
	}
	if err := AssertFindPathRequestRequired(findPathRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.FindPath(r.Context(), findPathRequestParam)
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	if result.ContentType != "" {
		encodeResponse(result.Body, result.ContentType, &result.Code, w)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// HealthApiController serves the liveness probe
type HealthApiController struct {
	service HealthApiServicer
}

func NewHealthApiController(s HealthApiServicer) Router {
	return &HealthApiController{service: s}
}

func (c *HealthApiController) Routes() Routes {
	return Routes{
		{
			"Healthz",
			strings.ToUpper("Get"),
			"/healthz",
			c.Healthz,
		},
	}
}

func (c *HealthApiController) Healthz(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.Healthz(r.Context())
	if err != nil {
		DefaultErrorHandler(w, r, err, &result)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}
