// SPDX-License-Identifier: MIT

package openapi_server

// ImplResponse response defines an error code with the associated body
type ImplResponse struct {
	Code        int
	Body        interface{}
	ContentType string // defaults to JSON
}

// Response return a ImplResponse struct filled
func Response(code int, body interface{}) ImplResponse {
	return ImplResponse{Code: code, Body: body}
}
