// Package repository declares the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (sqlite); tests
// substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/articles-api/internal/model"
)

// UserRepository is the credential store boundary. User methods carry the
// User prefix so one store type can implement both repositories.
type UserRepository interface {
	// CreateUser stores a new user and assigns the next sequential ID.
	// Returns apperror.ErrConflict (wrapped) when the username is taken.
	CreateUser(ctx context.Context, user *model.User) error
	// GetUserByUsername looks a user up by exact, case-sensitive username.
	// Returns apperror.ErrNotFound (wrapped) when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// ResetUsers clears the registry and the ID counter. Test harness only.
	ResetUsers(ctx context.Context) error
}

type ArticleRepository interface {
	// Create stores a new article, assigning the next sequential ID and
	// stamping CreatedAt. The stored record is written back into article.
	Create(ctx context.Context, article *model.Article) error
	// List returns all articles in insertion order. An empty collection
	// yields an empty (non-nil) slice, never an error.
	List(ctx context.Context) ([]model.Article, error)
	// GetByID returns the article with the given ID or apperror.ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Article, error)
	// Update overwrites title/content of an existing article and stamps
	// UpdatedAt. Returns apperror.ErrNotFound for an unknown ID. The row
	// keeps its position: updates never reorder the collection.
	Update(ctx context.Context, article *model.Article) error
	// Delete permanently removes an article. IDs are never reused.
	Delete(ctx context.Context, id string) error
	// Reset clears the collection and the ID counter. Test harness only.
	Reset(ctx context.Context) error
}
