package httputils

import (
	"encoding/json"
	"net/http"

	"github.com/nvellon/hal"
)

const (
	ContentTypeJSON    = "application/json"
	ContentTypeHAL     = "application/hal+json"
	ContentTypeProblem = "application/problem+json"
)

type HALResource interface {
	Resource() *hal.Resource
}

// WriteJSON writes the value v to the http response as json encoding
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	if h, ok := v.(HALResource); ok {
		w.Header().Set("Content-Type", ContentTypeHAL)
		v = h.Resource()
	} else if p, ok := v.(Problem); ok {
		w.Header().Set("Content-Type", ContentTypeProblem)
		v = p
	} else if e, ok := v.(error); ok {
		w.Header().Set("Content-Type", ContentTypeProblem)
		v = NewErrorProblem(e, code)
	} else {
		w.Header().Set("Content-Type", ContentTypeJSON)
	}

	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.WriteHeader(code)
	if _, err := w.Write(bs); err != nil {
		return err
	}

	return nil
}

func MustWriteJSON(w http.ResponseWriter, code int, v interface{}) {
	if err := WriteJSON(w, code, v); err != nil {
		http.Error(w, "failed to write response", http.StatusInternalServerError)
	}
}

// WriteJSONError renders `err` as a problem document with the status
// mapped from its code.
func WriteJSONError(w http.ResponseWriter, err error) {
	MustWriteJSON(w, StatusCode(err), err)
}
