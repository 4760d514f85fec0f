// SPDX-License-Identifier: MIT

package openapi_server

type ErrorResponse struct {
	Error string `json:"error"`
}
