package repository

import (
	"context"
	"errors"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/jackc/pgx/v5"
)

const contentColumns = `id, slug, title, content, meta_description, language, published,
            created_at, updated_at`

type ContentRepository struct {
	db DBConn
}

func NewContentRepository(db DBConn) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) GetPublished(ctx context.Context, slug, language string) (*models.ContentPage, error) {
	query := `
        SELECT ` + contentColumns + `
        FROM content_pages
        WHERE slug = $1 AND language = $2 AND published = true
    `
	return r.scanPage(r.db.QueryRow(ctx, query, slug, language))
}

// GetPublishedAny is the last link of the language fallback chain: any
// published revision of the slug, newest first.
func (r *ContentRepository) GetPublishedAny(ctx context.Context, slug string) (*models.ContentPage, error) {
	query := `
        SELECT ` + contentColumns + `
        FROM content_pages
        WHERE slug = $1 AND published = true
        ORDER BY updated_at DESC
        LIMIT 1
    `
	return r.scanPage(r.db.QueryRow(ctx, query, slug))
}

func (r *ContentRepository) scanPage(row pgx.Row) (*models.ContentPage, error) {
	var p models.ContentPage
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Content, &p.MetaDescription, &p.Language,
		&p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrPageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
