package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/sakif/articles-api/internal/apperror"
	"github.com/sakif/articles-api/internal/model"
)

// fakeArticleRepo is an in-memory, insertion-ordered implementation of
// repository.ArticleRepository.
type fakeArticleRepo struct {
	articles []model.Article
	nextID   int
	// set to simulate store failures
	createErr error
	listErr   error
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{nextID: 1}
}

func (f *fakeArticleRepo) Create(ctx context.Context, article *model.Article) error {
	if f.createErr != nil {
		return f.createErr
	}
	article.ID = strconv.Itoa(f.nextID)
	f.nextID++
	article.CreatedAt = time.Now()
	article.UpdatedAt = nil
	f.articles = append(f.articles, *article)
	return nil
}

func (f *fakeArticleRepo) List(ctx context.Context) ([]model.Article, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Article, len(f.articles))
	copy(out, f.articles)
	return out, nil
}

func (f *fakeArticleRepo) GetByID(ctx context.Context, id string) (*model.Article, error) {
	for i := range f.articles {
		if f.articles[i].ID == id {
			copied := f.articles[i]
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("article", id)
}

func (f *fakeArticleRepo) Update(ctx context.Context, article *model.Article) error {
	for i := range f.articles {
		if f.articles[i].ID == article.ID {
			now := time.Now()
			article.UpdatedAt = &now
			f.articles[i] = *article
			return nil
		}
	}
	return apperror.NotFound("article", article.ID)
}

func (f *fakeArticleRepo) Delete(ctx context.Context, id string) error {
	for i := range f.articles {
		if f.articles[i].ID == id {
			f.articles = append(f.articles[:i], f.articles[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("article", id)
}

func (f *fakeArticleRepo) Reset(ctx context.Context) error {
	f.articles = nil
	f.nextID = 1
	return nil
}

func newTestArticleService(repo *fakeArticleRepo) *ArticleService {
	return NewArticleService(repo, testLogger())
}

func strptr(s string) *string { return &s }

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestArticleCreate_TrimsTitle(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())

	article, err := svc.Create(context.Background(), "  Hello  ", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if article.Title != "Hello" {
		t.Errorf("Title = %q, want %q", article.Title, "Hello")
	}
}

func TestArticleCreate_InvalidTitles(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())

	tests := []struct {
		name  string
		title string
	}{
		{name: "empty", title: ""},
		{name: "spaces only", title: "   "},
		{name: "tabs and newlines", title: "\t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.title, nil)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create(%q) error = %v, want ErrValidation", tt.title, err)
			}
		})
	}
}

func TestArticleCreate_ContentDefaultsToEmpty(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())

	article, err := svc.Create(context.Background(), "Hello", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if article.Content != "" {
		t.Errorf("Content = %q, want empty string when omitted", article.Content)
	}
}

func TestArticleCreate_ExplicitContent(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())

	article, err := svc.Create(context.Background(), "Hello", strptr("body text"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if article.Content != "body text" {
		t.Errorf("Content = %q, want %q", article.Content, "body text")
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestArticleList_RoundTrip(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Hello", strptr("world"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	articles, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("List() returned %d articles, want 1", len(articles))
	}
	if articles[0].ID != created.ID || articles[0].Title != "Hello" || articles[0].Content != "world" {
		t.Errorf("listed article = %+v, want the created one", articles[0])
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestArticleUpdate_PartialLeavesContentUntouched(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Hello", strptr("original content"))

	updated, err := svc.Update(ctx, created.ID, strptr("New title"), nil)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "New title" {
		t.Errorf("Title = %q, want %q", updated.Title, "New title")
	}
	if updated.Content != "original content" {
		t.Errorf("Content = %q, want untouched %q", updated.Content, "original content")
	}
	if updated.UpdatedAt == nil {
		t.Error("UpdatedAt not set after update")
	}
}

func TestArticleUpdate_PartialLeavesTitleUntouched(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Hello", strptr("old"))

	updated, err := svc.Update(ctx, created.ID, nil, strptr("new content"))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Hello" {
		t.Errorf("Title = %q, want untouched %q", updated.Title, "Hello")
	}
	if updated.Content != "new content" {
		t.Errorf("Content = %q, want %q", updated.Content, "new content")
	}
}

func TestArticleUpdate_TrimsProvidedTitle(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Hello", nil)

	updated, err := svc.Update(ctx, created.ID, strptr("  Hi  "), nil)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Hi" {
		t.Errorf("Title = %q, want %q", updated.Title, "Hi")
	}
}

func TestArticleUpdate_WhitespaceTitleRejected(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Hello", nil)

	_, err := svc.Update(ctx, created.ID, strptr("   "), nil)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Update() error = %v, want ErrValidation", err)
	}
}

func TestArticleUpdate_EmptyContentAllowed(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Hello", strptr("something"))

	// Explicit "" clears the content - different from omitting the field.
	updated, err := svc.Update(ctx, created.ID, nil, strptr(""))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Content != "" {
		t.Errorf("Content = %q, want cleared", updated.Content)
	}
}

func TestArticleUpdate_NotFound(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())

	_, err := svc.Update(context.Background(), "999", strptr("title"), nil)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestArticleDelete(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Hello", nil)

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	articles, _ := svc.List(ctx)
	if len(articles) != 0 {
		t.Errorf("List() after delete returned %d articles, want 0", len(articles))
	}
}

func TestArticleDelete_NotFound(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())

	err := svc.Delete(context.Background(), "999")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
