package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"dahcoins/domain/entities"

	log "github.com/sirupsen/logrus"
)

// Envelope statuses
const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// envelope is the body of every response
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("Failed to write response")
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Status: statusSuccess, Data: data})
}

// writeFailure reports a business outcome that was refused, with the result in data.
// cause picks the status; a refusal without a sentinel is a 422.
func writeFailure(w http.ResponseWriter, cause error, message string, data any) {
	status := http.StatusUnprocessableEntity
	if cause != nil {
		if mapped := statusForError(cause); mapped != http.StatusInternalServerError {
			status = mapped
		}
	}
	writeJSON(w, status, envelope{Status: statusFail, Message: message, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Status: statusError, Message: message})
}

// writeError maps err onto a status code. Unknown errors are logged and hidden.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"error":  err,
		}).Error("Request failed")
		writeMessage(w, status, "internal server error")
		return
	}
	writeMessage(w, status, err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, entities.ErrInvalidInput),
		errors.Is(err, entities.ErrInvalidStakeAmount),
		errors.Is(err, entities.ErrInvalidStakeDuration):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrStakeNotMature),
		errors.Is(err, entities.ErrStakeAlreadyClaimed),
		errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, entities.ErrSoldOut),
		errors.Is(err, entities.ErrFlashSaleExhausted),
		errors.Is(err, entities.ErrPoolDepleted):
		return http.StatusConflict
	case errors.Is(err, entities.ErrInsufficientFunds),
		errors.Is(err, entities.ErrDailyCapExceeded),
		errors.Is(err, entities.ErrMonthlyCapExceeded),
		errors.Is(err, entities.ErrCooldown):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
