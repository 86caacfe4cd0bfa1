package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/articles-api/internal/apperror"
	"github.com/sakif/articles-api/internal/auth"
	"github.com/sakif/articles-api/internal/model"
	"github.com/sakif/articles-api/internal/service"
)

// ArticleHandler exposes article CRUD over HTTP.
//
// RESPONSE ENVELOPES (canonical, on every mount point):
//
//	list           → {"articles": [ ... ]}
//	create/update  → {"article": { ... }}
//	delete         → 204, empty body
type ArticleHandler struct {
	articles *service.ArticleService
	logger   *slog.Logger
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(articles *service.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{articles: articles, logger: logger}
}

// optionalString tracks all three JSON states of a field: absent,
// present-but-null, and a string value. UnmarshalJSON only runs for fields
// that appear in the payload, so present distinguishes {"title":null} from
// an omitted title.
type optionalString struct {
	present bool
	value   *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.present = true
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

// articleRequest is the create/update payload.
//
// Updates are partial: {"title": "x"} must leave content alone, while
// {"content": ""} must clear it. A field that is present but not a string
// ({"content": 123}, {"title": null}) is a type violation, not an omission,
// and gets the 400 the contract demands.
type articleRequest struct {
	Title   optionalString `json:"title"`
	Content optionalString `json:"content"`
}

// nullField returns the name of the first field sent as an explicit JSON
// null, or "" when neither was.
func (r *articleRequest) nullField() string {
	if r.Title.present && r.Title.value == nil {
		return "title"
	}
	if r.Content.present && r.Content.value == nil {
		return "content"
	}
	return ""
}

type articleResponse struct {
	Article *model.Article `json:"article"`
}

type articleListResponse struct {
	Articles []model.Article `json:"articles"`
}

// HandleCreate stores a new article.
//
// HTTP: POST /api/articles (auth required)
// BODY: {"title": "Hello", "content": "optional"}
// 201 → {"article": {...}}; 400 → validation; 401 → auth
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if field := req.nullField(); field != "" {
		writeError(w, apperror.ValidationFailed(field, field+" must be a string"))
		return
	}

	// A missing title behaves like an empty one; the service rejects both.
	title := ""
	if req.Title.value != nil {
		title = *req.Title.value
	}

	article, err := h.articles.Create(r.Context(), title, req.Content.value)
	if err != nil {
		writeError(w, err)
		return
	}

	if identity, ok := auth.IdentityFromContext(r.Context()); ok {
		h.logger.Debug("article created",
			slog.String("articleID", article.ID),
			slog.String("by", identity.Username),
		)
	}

	writeJSON(w, http.StatusCreated, articleResponse{Article: article})
}

// HandleList returns all articles in insertion order.
//
// HTTP: GET /api/articles (no auth)
// 200 → {"articles": [...]} - [] when the collection is empty, never null
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, articleListResponse{Articles: articles})
}

// HandleUpdate applies a partial update.
//
// HTTP: PUT /api/articles/{id} (auth required)
// BODY: {"title"?: "...", "content"?: "..."} - absent fields stay unchanged
// 200 → {"article": {...}}; 400 → validation; 404 → unknown id
func (h *ArticleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// An empty body is a legal partial update that touches nothing (it still
	// stamps updatedAt); malformed JSON is not.
	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if field := req.nullField(); field != "" {
		writeError(w, apperror.ValidationFailed(field, field+" must be a string"))
		return
	}

	article, err := h.articles.Update(r.Context(), id, req.Title.value, req.Content.value)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, articleResponse{Article: article})
}

// HandleDelete removes an article permanently.
//
// HTTP: DELETE /api/articles/{id} (auth required)
// 204 → empty body; 404 → unknown id
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.articles.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
