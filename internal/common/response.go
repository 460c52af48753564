package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"client_portal/internal/common/validate"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithDomainError maps an error from the service layer onto the
// wire. Validation failures carry their field map on the 400 body; any
// unexpected error is logged server-side and reduced to a generic 500.
func RespondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *validate.Errors
	if errors.As(err, &ve) {
		RespondWithJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "validation failed",
			Fields: ve.Fields,
		})
		return
	}

	code := HTTPStatusFromError(err)
	if code == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", r.Method, r.URL.Path, err)
		RespondWithError(w, code, "internal server error")
		return
	}
	RespondWithError(w, code, err.Error())
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
