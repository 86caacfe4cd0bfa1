package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/articles-api/internal/apperror"
	"github.com/sakif/articles-api/internal/model"
	"github.com/sakif/articles-api/internal/repository"
)

// compile-time check that *DB implements repository.ArticleRepository
var _ repository.ArticleRepository = (*DB)(nil)

// Create inserts a new article.
//
// The ID comes from SQLite's AUTOINCREMENT: sequential from 1, and a rowid
// is never reissued after a delete, so "1" printed on an article today can
// never mean a different article tomorrow. The caller's struct is updated
// in place with the assigned ID and CreatedAt (pointer receiver semantics,
// same as the rest of this package).
func (db *DB) Create(ctx context.Context, article *model.Article) error {
	article.CreatedAt = time.Now().UTC()
	article.UpdatedAt = nil // set on first update, never at creation

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO articles (title, content, created_at) VALUES (?, ?, ?)`,
		article.Title,
		article.Content,
		article.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new article id: %w", err)
	}
	article.ID = strconv.FormatInt(id, 10)

	return nil
}

// List returns every article ordered by ID - IDs are assigned sequentially
// at insert and never change, so ID order IS insertion order, regardless of
// how often a row has been updated since.
func (db *DB) List(ctx context.Context) ([]model.Article, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM articles ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing articles: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty collection serializes as [] rather than null.
	articles := []model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning article row: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating article rows: %w", err)
	}

	return articles, nil
}

// GetByID retrieves a single article.
// Returns apperror.ErrNotFound if no article exists with that ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Article, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM articles WHERE id = ?`,
		id,
	)

	a, err := scanArticle(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("article", id)
		}
		return nil, fmt.Errorf("sqlite: getting article %s: %w", id, err)
	}

	return a, nil
}

// Update overwrites the title and content of an existing article and stamps
// UpdatedAt. The service layer has already merged partial input into a full
// record, so this is a plain whole-row write.
func (db *DB) Update(ctx context.Context, article *model.Article) error {
	now := time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE articles SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		article.Title,
		article.Content,
		now,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating article %s: %w", article.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking update of article %s: %w", article.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("article", article.ID)
	}

	article.UpdatedAt = &now
	return nil
}

// Delete permanently removes an article.
// Returns apperror.ErrNotFound if no article exists with that ID.
func (db *DB) Delete(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting article %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking delete of article %s: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("article", id)
	}

	return nil
}

// Reset clears the collection and rewinds the ID counter. Test-only.
func (db *DB) Reset(ctx context.Context) error {
	return db.resetTable("articles")
}

// scanArticle reads one article row. updated_at is nullable - NULL means the
// article has never been updated and the model keeps a nil pointer.
func scanArticle(scan func(dest ...any) error) (*model.Article, error) {
	var (
		a         model.Article
		id        int64
		updatedAt sql.NullTime
	)

	if err := scan(&id, &a.Title, &a.Content, &a.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}

	a.ID = strconv.FormatInt(id, 10)
	if updatedAt.Valid {
		t := updatedAt.Time
		a.UpdatedAt = &t
	}

	return &a, nil
}
