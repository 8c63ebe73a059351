package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"article-planner/app/server/db"
	"article-planner/app/server/model"
	"article-planner/app/server/model/parse"
	"article-planner/app/server/notify"
	shared "article-planner/app/shared"

	"github.com/pkg/errors"
)

func GeneratePlanHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GeneratePlanHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeServerError(w, "Error reading request body", err)
		return
	}
	defer r.Body.Close()

	var requestBody shared.GeneratePlanRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		writeInvalidRequest(w, "Error parsing request body")
		return
	}

	query := strings.TrimSpace(requestBody.Query)
	if query == "" {
		writeInvalidRequest(w, "Query is required")
		return
	}

	outline, err := model.GenerateOutline(r.Context(), query)
	if err != nil {
		writeModelError(w, "Error generating outline", err)
		return
	}

	log.Printf("Successfully generated outline for %q\n", query)

	writeJson(w, outline)
}

func SavePlanHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SavePlanHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeServerError(w, "Error reading request body", err)
		return
	}
	defer r.Body.Close()

	var requestBody shared.SavePlanRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		writeInvalidRequest(w, "Error parsing request body")
		return
	}

	if msg := validateSections(requestBody.Sections); msg != "" {
		writeInvalidRequest(w, msg)
		return
	}

	article, err := db.UpsertArticle(r.Context(), requestBody.Id, db.ArticleFields{
		Query:     requestBody.Query,
		H1:        requestBody.H1,
		MetaTitle: requestBody.MetaTitle,
		MetaDesc:  requestBody.MetaDesc,
	}, db.SectionFieldsFromApi(requestBody.Sections))

	if err != nil {
		writeServerError(w, "Error saving article", err)
		return
	}

	log.Printf("Successfully saved article %d\n", article.Id)

	writeJson(w, article)
}

func SaveDraftHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SaveDraftHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeServerError(w, "Error reading request body", err)
		return
	}
	defer r.Body.Close()

	var requestBody shared.SaveDraftRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		writeInvalidRequest(w, "Error parsing request body")
		return
	}

	var id int64
	if raw := r.URL.Query().Get("id"); raw != "" {
		var ok bool
		id, ok = parseId(raw)
		if !ok {
			writeInvalidRequest(w, "Invalid article id")
			return
		}
	} else if requestBody.Id != nil {
		id = *requestBody.Id
	}

	if id <= 0 {
		writeInvalidRequest(w, "Article id is required")
		return
	}

	if msg := validateSections(requestBody.Sections); msg != "" {
		writeInvalidRequest(w, msg)
		return
	}

	article, err := db.UpdateArticleDraft(r.Context(), id, db.ArticleFields{
		H1:        requestBody.H1,
		MetaTitle: requestBody.MetaTitle,
		MetaDesc:  requestBody.MetaDesc,
	}, db.SectionFieldsFromApi(requestBody.Sections))

	if err != nil {
		writeServerError(w, "Error saving draft", err)
		return
	}

	if article == nil {
		writeNotFound(w, fmt.Sprintf("Article %d not found", id))
		return
	}

	log.Printf("Successfully saved draft %d\n", id)

	writeJson(w, article)
}

func validateSections(sections []*shared.Section) string {
	for i, s := range sections {
		if s == nil {
			continue
		}
		level, ok := shared.ParseHeadingLevel(string(s.Level))
		if !ok {
			return fmt.Sprintf("Section %d has an invalid level %q", i, s.Level)
		}
		s.Level = level
	}
	return ""
}

// writeModelError maps collaborator failures to generation / collaborator
// errors with the cause in the detail.
func writeModelError(w http.ResponseWriter, msg string, err error) {
	var outlineErr *parse.OutlineError
	if errors.As(err, &outlineErr) {
		notify.Notify(notify.SeverityInfo, msg, outlineErr)
		writeApiError(w, shared.ApiError{
			Type:    shared.ApiErrorTypeGeneration,
			Status:  http.StatusInternalServerError,
			Message: "Invalid response structure",
			Detail:  outlineErr.Detail,
		})
		return
	}

	var collabErr *model.CollaboratorError
	if errors.As(err, &collabErr) {
		notify.Notify(notify.SeverityError, msg, collabErr)
		writeApiError(w, shared.ApiError{
			Type:    shared.ApiErrorTypeCollaborator,
			Status:  http.StatusInternalServerError,
			Message: msg,
			Detail:  collabErr.Error(),
		})
		return
	}

	writeServerError(w, msg, err)
}
