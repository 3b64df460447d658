package helpers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Bodies larger than this are rejected before decoding.
const maxBodyBytes = 1 << 20

// Validator is implemented by request DTOs that carry their own validation.
// Validate returns a slice of messages; empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest, rejecting unknown
// fields and oversized bodies, then runs dest's Validate if it has one.
// On any failure it writes a 400 envelope and returns false; callers must
// return immediately in that case.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}

	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}
