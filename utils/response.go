package utils

import (
	"encoding/json"
	"net/http"

	"velora/apperr"
)

type M map[string]interface{}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"success": false, "message": msg})
}

// RespondWithAppError maps a taxonomy error to its HTTP status.
func RespondWithAppError(w http.ResponseWriter, err error) {
	RespondWithError(w, apperr.Status(err), err.Error())
}

func RespondWithData(w http.ResponseWriter, code int, msg string, data interface{}) {
	resp := M{"success": true, "data": data}
	if msg != "" {
		resp["message"] = msg
	}
	RespondWithJSON(w, code, resp)
}

// RespondWithPage wraps a result page in the list envelope.
func RespondWithPage(w http.ResponseWriter, code int, data interface{}, count int, total int64, page int, limit int64) {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	RespondWithJSON(w, code, M{
		"success":     true,
		"count":       count,
		"total":       total,
		"totalPages":  totalPages,
		"currentPage": page,
		"data":        data,
	})
}
