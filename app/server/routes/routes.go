package routes

import (
	"fmt"
	"net/http"

	"article-planner/app/server/handlers"

	"github.com/gorilla/mux"
)

func NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.Use(handlers.LoggingMiddleware, handlers.RecoveryMiddleware)

	r.MethodNotAllowedHandler = handlers.MethodNotAllowedHandler()
	r.NotFoundHandler = handlers.NotFoundHandler()

	AddHealthRoutes(r)
	AddApiRoutes(r)

	return r
}

func AddHealthRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	}).Methods("GET")
}

func AddApiRoutes(r *mux.Router) {
	r.HandleFunc("/articles", handlers.ListArticlesHandler).Methods("GET")
	r.HandleFunc("/article/{id}", handlers.GetArticleHandler).Methods("GET")
	r.HandleFunc("/article/{id}/status", handlers.UpdateArticleStatusHandler).Methods("PATCH")
	r.HandleFunc("/article/{id}/export", handlers.ExportArticleHandler).Methods("GET")

	r.HandleFunc("/generate-plan", handlers.GeneratePlanHandler).Methods("POST")
	r.HandleFunc("/save-plan", handlers.SavePlanHandler).Methods("POST")
	r.HandleFunc("/save-draft", handlers.SaveDraftHandler).Methods("PUT")

	r.HandleFunc("/search-section-info", handlers.SearchSectionInfoHandler).Methods("POST")

	r.HandleFunc("/delete-articles", handlers.DeleteArticlesHandler).Methods("DELETE")
}
