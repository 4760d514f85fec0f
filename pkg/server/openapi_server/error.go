// SPDX-License-Identifier: MIT

package openapi_server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/natevvv/campus-paths/pkg/graph/path"
	"github.com/natevvv/campus-paths/pkg/routing"
)

var (
	// ErrMapNotLoaded is returned while no campus map is served
	ErrMapNotLoaded = errors.New("campus map not loaded")
	// ErrUnknownFormat is returned for an unsupported format query parameter
	ErrUnknownFormat = errors.New("unknown format")
)

// ParsingError indicates that an error has occurred when parsing request parameters
type ParsingError struct {
	Err error
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}

func (e *ParsingError) Error() string {
	return e.Err.Error()
}

// RequiredError indicates that an error has occurred when parsing request parameters
type RequiredError struct {
	Field string
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("required field '%s' is zero value.", e.Field)
}

// ErrorHandler defines the required method for handling error. You may implement it and inject this into a controller if
// you would like errors to be handled differently from the DefaultErrorHandler
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error, result *ImplResponse)

// DefaultErrorHandler defines the default logic on how to handle errors from the controller. Any errors from parsing
// request params will return a StatusBadRequest. Otherwise, the error code originating from the servicer will be used.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error, result *ImplResponse) {
	var parsingError *ParsingError
	var requiredError *RequiredError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &parsingError), errors.As(err, &requiredError):
		status = http.StatusBadRequest
	case errors.Is(err, routing.ErrUnknownBuilding), errors.Is(err, ErrUnknownFormat):
		status = http.StatusBadRequest
	case errors.Is(err, path.ErrSearchLimit):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, ErrMapNotLoaded):
		status = http.StatusServiceUnavailable
	case result != nil && result.Code != 0:
		status = result.Code
	}
	EncodeJSONResponse(ErrorResponse{Error: err.Error()}, &status, w)
}
