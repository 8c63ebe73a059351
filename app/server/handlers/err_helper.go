package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	shared "article-planner/app/shared"

	"github.com/gorilla/mux"
)

func writeApiError(w http.ResponseWriter, apiErr shared.ApiError) {
	bytes, err := json.Marshal(apiErr)
	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response", http.StatusInternalServerError)
		return
	}

	log.Printf("API Error: %s\n", apiErr.Error())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)

	_, writeErr := w.Write(bytes)
	if writeErr != nil {
		log.Printf("Error writing response: %v\n", writeErr)
	}
}

func writeInvalidRequest(w http.ResponseWriter, msg string) {
	writeApiError(w, shared.ApiError{
		Type:    shared.ApiErrorTypeInvalidRequest,
		Status:  http.StatusBadRequest,
		Message: msg,
	})
}

func writeNotFound(w http.ResponseWriter, msg string) {
	writeApiError(w, shared.ApiError{
		Type:    shared.ApiErrorTypeNotFound,
		Status:  http.StatusNotFound,
		Message: msg,
	})
}

// writeServerError logs the cause and sends a generic message.
func writeServerError(w http.ResponseWriter, msg string, err error) {
	log.Printf("%s: %v\n", msg, err)

	writeApiError(w, shared.ApiError{
		Type:    shared.ApiErrorTypeServer,
		Status:  http.StatusInternalServerError,
		Message: msg,
	})
}

func writeJson(w http.ResponseWriter, v interface{}) {
	bytes, err := json.Marshal(v)
	if err != nil {
		writeServerError(w, "Error marshalling response", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	if err != nil {
		log.Printf("Error writing response: %v\n", err)
	}
}

func parseId(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// articleIdFromVars writes a 400 and returns false when the {id} route
// variable isn't a positive integer.
func articleIdFromVars(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, ok := parseId(raw)
	if !ok {
		log.Printf("Invalid article id: %q\n", raw)
		writeInvalidRequest(w, "Invalid article id")
		return 0, false
	}
	return id, true
}
