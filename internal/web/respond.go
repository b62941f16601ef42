package web

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes data as a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, data any) error {
	response, err := json.Marshal(data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, _ = w.Write(response)

	return nil
}

func respondError(w http.ResponseWriter, status int, message string) {
	_ = RespondJSON(w, status, errorResponse{Error: message})
}

func badRequest(w http.ResponseWriter, message string) {
	respondError(w, http.StatusBadRequest, message)
}

func internalError(w http.ResponseWriter, message string) {
	respondError(w, http.StatusInternalServerError, message)
}

func badGateway(w http.ResponseWriter, message string) {
	respondError(w, http.StatusBadGateway, message)
}
