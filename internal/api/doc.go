// Package api contains the HTTP handlers, request/response models, and
// error mapping for the SmartLeader API. Handlers validate input, delegate
// to the service layer, and translate service errors into sanitized HTTP
// responses.
package api
