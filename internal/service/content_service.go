package service

import (
	"context"
	"errors"
	"log/slog"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/gardaracing/charter-api/internal/ports"
)

type contentService struct {
	pages           ports.ContentRepository
	logger          *slog.Logger
	defaultLanguage string
}

func NewContentService(pages ports.ContentRepository, logger *slog.Logger, defaultLanguage string) *contentService {
	return &contentService{pages: pages, logger: logger, defaultLanguage: defaultLanguage}
}

// GetPage walks the fallback chain: requested language, default language,
// then any published revision of the slug.
func (s *contentService) GetPage(ctx context.Context, slug, language string) (*models.ContentPage, error) {
	if language == "" {
		language = s.defaultLanguage
	}

	page, err := s.pages.GetPublished(ctx, slug, language)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, models.ErrPageNotFound) {
		s.logger.Warn("content lookup failed, trying fallback", "slug", slug, "language", language, "error", err)
	}

	if language != s.defaultLanguage {
		page, err = s.pages.GetPublished(ctx, slug, s.defaultLanguage)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, models.ErrPageNotFound) {
			s.logger.Warn("content lookup failed, trying fallback", "slug", slug,
				"language", s.defaultLanguage, "error", err)
		}
	}

	page, err = s.pages.GetPublishedAny(ctx, slug)
	if err != nil {
		if errors.Is(err, models.ErrPageNotFound) {
			return nil, models.ErrPageNotFound
		}
		return nil, err
	}
	return page, nil
}
