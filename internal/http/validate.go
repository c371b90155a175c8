package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"notes-system/internal/platform/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate decodes the JSON body into dst and rejects payloads
// that fail the struct's validate tags before any service runs.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.BadRequest("invalid_input", "invalid body", err)
	}
	if err := validate.Struct(dst); err != nil {
		return apperr.BadRequest("invalid_input", "all fields are required", err)
	}
	return nil
}
