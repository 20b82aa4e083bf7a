// Package api holds the published API documents.
package api

import _ "embed"

// UserSwagger is the OpenAPI 2.0 document for the HTTP user API.
//
//go:embed swagger/user.swagger.json
var UserSwagger []byte
