package shared

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance; validator.Validate is safe for concurrent use.
var validate = validator.New()

// DecodeJSON decodes the request body into dst. An empty body is an error:
// every task endpoint that accepts a body requires at least one field.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// ValidateRequest runs struct tag validation on a decoded request. Failures
// come back as validator.ValidationErrors so callers can report per-field
// messages.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}
