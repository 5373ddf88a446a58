package utils

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidatePayload checks a decoded request body against its struct tags and
// writes a 422 when it is malformed. Returns false if the request was
// already answered.
func ValidatePayload(w http.ResponseWriter, payload interface{}) bool {
	if err := validate.Struct(payload); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return false
	}
	return true
}
