package shared

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/commitlabs/commitment-api/internal/apperr"
)

// maxBodyBytes caps request bodies; none of the API's payloads come close.
const maxBodyBytes = 1 << 20

// ReadBody reads the request body for the strict parsers, which do their
// own JSON handling.
func ReadBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.Validation("Request body could not be read.", nil)
	}
	return body, nil
}

// DecodeJSON decodes the request body into v, mapping malformed JSON to a
// validation error.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		return apperr.Validation("Invalid JSON in request body", nil)
	}
	return nil
}
