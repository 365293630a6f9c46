package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/dashboard-builder/internal/errs"
)

// decodeJSON reads the request body into v. A malformed body is the
// caller's fault, so it surfaces as a validation error.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}
