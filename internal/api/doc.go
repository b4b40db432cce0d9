// Package api provides the HTTP handlers for the commitment API. Handlers
// return errors instead of writing failure responses themselves; the
// shared.Handle wrapper normalizes every error through the taxonomy and
// emits the uniform envelope.
package api
