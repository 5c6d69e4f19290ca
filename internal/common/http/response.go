package http

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint returns; handlers embed it in
// richer response bodies.
type Response struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{Message: message, Success: false})
}

func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
