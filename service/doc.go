// Package service exposes the SeRQL compiler over HTTP.
//
// Schemes: http
// Consumes:
// - application/json
// Produces:
// - application/json
// - text/plain
// Version: v1.0.0
// swagger:meta
package service
