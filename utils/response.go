package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondError writes {"error": publicMessage} with the given status. devErr, when
// present, is only logged.
func RespondError(w http.ResponseWriter, status int, publicMessage string, devErr error) {
	fields := logrus.Fields{"status": status}
	if devErr != nil {
		fields["error"] = devErr.Error()
	}
	if status >= http.StatusInternalServerError {
		Logger.WithFields(fields).Error(publicMessage)
	} else {
		Logger.WithFields(fields).Warn(publicMessage)
	}

	RespondWithJSON(w, status, ErrorResponse{Error: publicMessage})
}

// RespondWithJSON for successful cases
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondWithRawJSON writes an already-encoded body, e.g. a cached list.
func RespondWithRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
