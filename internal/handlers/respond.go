package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"campuschat-backend/internal/services"
)

// Every endpoint answers HTTP 200 with a {success, message?, ...} envelope;
// outcome is carried in the body, not the status code.

func writeJSON(w http.ResponseWriter, data map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter, payload map[string]interface{}) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["success"] = true
	writeJSON(w, payload)
}

func writeFailure(w http.ResponseWriter, message string) {
	writeJSON(w, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// handleServiceError picks the user-facing message for typed service errors.
// Anything else is an infrastructure failure: logged here, surfaced to the
// caller as the endpoint's generic message only.
func handleServiceError(w http.ResponseWriter, err error, generic string) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeFailure(w, e.Message)
	case *services.ConflictError:
		writeFailure(w, e.Message)
	case *services.NotFoundError:
		writeFailure(w, e.Message)
	case *services.UnauthorizedError:
		writeFailure(w, e.Message)
	default:
		log.Printf("internal error: %v", err)
		writeFailure(w, generic)
	}
}
