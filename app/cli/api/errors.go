package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	shared "article-planner/app/shared"
)

func HandleApiError(r *http.Response, errBody []byte) *shared.ApiError {
	// Check if the response is JSON
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return &shared.ApiError{
			Type:    shared.ApiErrorTypeOther,
			Status:  r.StatusCode,
			Message: strings.TrimSpace(string(errBody)),
		}
	}

	var apiError shared.ApiError
	if err := json.Unmarshal(errBody, &apiError); err != nil {
		log.Printf("Error unmarshalling JSON: %v\n", err)
		return &shared.ApiError{
			Type:    shared.ApiErrorTypeOther,
			Status:  r.StatusCode,
			Message: strings.TrimSpace(string(errBody)),
		}
	}

	if apiError.Status == 0 {
		apiError.Status = r.StatusCode
	}

	log.Printf("API error: %s\n", apiError.Error())

	return &apiError
}

func otherErr(format string, args ...interface{}) *shared.ApiError {
	return &shared.ApiError{Type: shared.ApiErrorTypeOther, Message: fmt.Sprintf(format, args...)}
}
