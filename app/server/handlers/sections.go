package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"article-planner/app/server/model"
	shared "article-planner/app/shared"
)

func SearchSectionInfoHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SearchSectionInfoHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeServerError(w, "Error reading request body", err)
		return
	}
	defer r.Body.Close()

	var requestBody shared.SearchSectionInfoRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		writeInvalidRequest(w, "Error parsing request body")
		return
	}

	h1 := strings.TrimSpace(requestBody.H1)
	if h1 == "" || requestBody.Section == nil || strings.TrimSpace(requestBody.Section.Title) == "" {
		writeInvalidRequest(w, "Missing required fields")
		return
	}

	// the parent only matters for a minor section
	var parent string
	if requestBody.Section.Level == shared.HeadingLevelMinor && requestBody.ParentSection != nil {
		parent = strings.TrimSpace(requestBody.ParentSection.Title)
	}

	text, err := model.EnrichSection(r.Context(), h1, strings.TrimSpace(requestBody.Section.Title), parent)
	if err != nil {
		writeModelError(w, "Error searching information", err)
		return
	}

	writeJson(w, shared.SearchSectionInfoResponse{SourceInformation: text})
}
