package httpx

import (
	"encoding/json"
	"net/http"
)

// Problem is the error body returned by the API. Entity-scoped failures
// also carry the error headers set by WriteBadRequestAlert.
type Problem struct {
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	Status      int          `json:"status"`
	Message     string       `json:"message,omitempty"`
	EntityName  string       `json:"entityName,omitempty"`
	ErrorKey    string       `json:"errorKey,omitempty"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

// FieldError describes a single invalid field of a submitted entity.
type FieldError struct {
	ObjectName string `json:"objectName"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

const problemType = "about:blank"

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeProblemBody(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	json.NewEncoder(w).Encode(p)
}

// WriteProblem writes a plain problem with a translated message key,
// e.g. "error.http.404".
func WriteProblem(w http.ResponseWriter, status int, title, message string) {
	writeProblemBody(w, Problem{
		Type:    problemType,
		Title:   title,
		Status:  status,
		Message: message,
	})
}

// WriteBadRequestAlert rejects an entity operation: the error headers name
// the failing entity and error key, and the body repeats them.
func WriteBadRequestAlert(w http.ResponseWriter, title, entityName, errorKey string) {
	SetErrorHeaders(w.Header(), entityName, errorKey)
	writeProblemBody(w, Problem{
		Type:       problemType,
		Title:      title,
		Status:     http.StatusBadRequest,
		Message:    "error." + errorKey,
		EntityName: entityName,
		ErrorKey:   errorKey,
	})
}

// WriteValidationProblem reports bean-style validation failures.
func WriteValidationProblem(w http.ResponseWriter, fields []FieldError) {
	writeProblemBody(w, Problem{
		Type:        problemType,
		Title:       "Method argument not valid",
		Status:      http.StatusBadRequest,
		Message:     "error.validation",
		FieldErrors: fields,
	})
}

// WriteNotFound writes the standard 404 problem.
func WriteNotFound(w http.ResponseWriter) {
	WriteProblem(w, http.StatusNotFound, "Not Found", "error.http.404")
}

// WriteUnauthorized writes the standard 401 problem.
func WriteUnauthorized(w http.ResponseWriter) {
	WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "error.http.401")
}

// WriteInternalError writes the standard 500 problem.
func WriteInternalError(w http.ResponseWriter) {
	WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", "error.http.500")
}
