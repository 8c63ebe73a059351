package handlers

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"article-planner/app/server/notify"
	shared "article-planner/app/shared"

	"github.com/google/uuid"
)

const RequestIdHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware tags each request with an id and logs its outcome.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(RequestIdHeader)
		if requestId == "" {
			requestId = uuid.New().String()
		}
		w.Header().Set(RequestIdHeader, requestId)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		log.Printf("[%s] %s %s %d %s", requestId, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if panicErr := recover(); panicErr != nil {
				log.Printf("panic handling %s %s: %v\n%s", r.Method, r.URL.Path, panicErr, debug.Stack())
				notify.Notify(notify.SeverityError, r.Method+" "+r.URL.Path, fmt.Errorf("panic: %v", panicErr))
				writeServerError(w, "Internal server error", fmt.Errorf("panic: %v", panicErr))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// for 405 responses gorilla/mux would otherwise send an empty body
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeApiError(w, shared.ApiError{
			Type:    shared.ApiErrorTypeInvalidRequest,
			Status:  http.StatusMethodNotAllowed,
			Message: "Method not allowed",
		})
	})
}

func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w, "Not found")
	})
}
