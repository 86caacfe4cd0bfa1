// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-tier split:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the store
//
// Services accept primitives and return domain errors (apperror), never
// HTTP types or status codes; the handler package owns that translation.
// They depend on the repository interfaces, so tests swap in fakes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/articles-api/internal/apperror"
	"github.com/sakif/articles-api/internal/model"
	"github.com/sakif/articles-api/internal/repository"
)

// ArticleService enforces the article validation rules and drives the store.
//
// Optional fields arrive as pointers: nil means the client omitted the field
// entirely, which matters for partial updates ("don't touch content") and
// for create ("content defaults to empty").
type ArticleService struct {
	repo   repository.ArticleRepository
	logger *slog.Logger
}

// NewArticleService creates an ArticleService. The caller decides which
// repository implementation to inject (sqlite in production, a fake in tests).
func NewArticleService(repo repository.ArticleRepository, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and stores a new article.
//
// The title must be non-empty after trimming; the stored title is the trimmed
// form. A nil content means the field was omitted and defaults to "".
func (s *ArticleService) Create(ctx context.Context, title string, content *string) (*model.Article, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required and must be a non-empty string")
	}

	article := &model.Article{
		Title: title,
	}
	if content != nil {
		article.Content = *content
	}

	if err := s.repo.Create(ctx, article); err != nil {
		s.logger.Error("failed to create article",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating article: %w", err)
	}

	s.logger.Info("article created",
		slog.String("id", article.ID),
		slog.String("title", article.Title),
	)

	return article, nil
}

// List returns all articles in insertion order. Never errors on an empty
// collection - that's just an empty slice.
func (s *ArticleService) List(ctx context.Context) ([]model.Article, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list articles", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return articles, nil
}

// Update applies a partial update to an existing article.
//
// STRATEGY: fetch, merge, save.
//  1. Fetch the record (NotFound surfaces here for unknown IDs)
//  2. Merge only the fields the client actually sent (non-nil pointers)
//  3. Save the merged record; the store stamps UpdatedAt
//
// A provided title must be non-empty after trimming. A provided content
// replaces the old one, including with "". Absent fields stay untouched.
func (s *ArticleService) Update(ctx context.Context, id string, title, content *string) (*model.Article, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "article ID is required")
	}

	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, apperror.ValidationFailed("title", "title must be a non-empty string when provided")
		}
		article.Title = trimmed
	}
	if content != nil {
		article.Content = *content
	}

	if err := s.repo.Update(ctx, article); err != nil {
		s.logger.Error("failed to update article",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating article: %w", err)
	}

	s.logger.Info("article updated",
		slog.String("id", article.ID),
		slog.String("title", article.Title),
	)

	return article, nil
}

// Delete removes an article permanently.
// Returns apperror.ErrNotFound if the article doesn't exist.
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "article ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("article deleted", slog.String("id", id))
	return nil
}
