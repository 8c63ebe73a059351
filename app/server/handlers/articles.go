package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"article-planner/app/server/db"
	shared "article-planner/app/shared"
)

func ListArticlesHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListArticlesHandler")

	params := shared.ListArticlesParams{
		Status: shared.ArticleStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
	}

	if params.Status != "" && !params.Status.Valid() {
		writeInvalidRequest(w, fmt.Sprintf("Invalid status %q", params.Status))
		return
	}

	articles, err := db.ListArticles(r.Context(), params)
	if err != nil {
		writeServerError(w, "Error listing articles", err)
		return
	}

	log.Printf("Listed %d articles\n", len(articles))

	writeJson(w, articles)
}

func GetArticleHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetArticleHandler")

	id, ok := articleIdFromVars(w, r)
	if !ok {
		return
	}

	article, err := db.GetArticle(r.Context(), id)
	if err != nil {
		writeServerError(w, "Error getting article", err)
		return
	}

	if article == nil {
		writeNotFound(w, fmt.Sprintf("Article %d not found", id))
		return
	}

	writeJson(w, article)
}

func UpdateArticleStatusHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdateArticleStatusHandler")

	id, ok := articleIdFromVars(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeServerError(w, "Error reading request body", err)
		return
	}
	defer r.Body.Close()

	var requestBody shared.UpdateArticleStatusRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		writeInvalidRequest(w, "Error parsing request body")
		return
	}

	if !requestBody.Status.Valid() {
		writeInvalidRequest(w, fmt.Sprintf("Invalid status %q", requestBody.Status))
		return
	}

	article, err := db.UpdateArticleStatus(r.Context(), id, requestBody.Status)
	if err != nil {
		writeServerError(w, "Error updating article status", err)
		return
	}

	if article == nil {
		writeNotFound(w, fmt.Sprintf("Article %d not found", id))
		return
	}

	log.Printf("Article %d is now %s\n", id, article.Status)

	writeJson(w, article)
}

func DeleteArticlesHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeleteArticlesHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeServerError(w, "Error reading request body", err)
		return
	}
	defer r.Body.Close()

	var requestBody shared.DeleteArticlesRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		writeInvalidRequest(w, "Invalid article ids")
		return
	}

	if requestBody.Ids == nil {
		writeInvalidRequest(w, "Invalid article ids")
		return
	}

	err = db.DeleteArticles(r.Context(), requestBody.Ids)
	if err != nil {
		writeServerError(w, "Error deleting articles", err)
		return
	}

	log.Printf("Deleted articles %v\n", requestBody.Ids)

	writeJson(w, shared.MessageResponse{Message: "Articles deleted successfully"})
}
