package service

import (
	"context"

	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
)

// TitleInput is the write shape of a title. Category and genres are slugs.
// Nil fields are left untouched on update; an empty Category clears it.
type TitleInput struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      *[]string
}

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page repository.Page) ([]models.Title, int64, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, in TitleInput) (*models.Title, error)
	Update(ctx context.Context, id int64, in TitleInput) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titles     repository.TitleRepository
	categories repository.TaxonomyRepository
	genres     repository.TaxonomyRepository
}

func NewTitleService(titles repository.TitleRepository, categories, genres repository.TaxonomyRepository) TitleService {
	return &titleService{titles: titles, categories: categories, genres: genres}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page repository.Page) ([]models.Title, int64, error) {
	return s.titles.List(ctx, filter, page)
}

func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "title")
	}
	return title, nil
}

func (s *titleService) Create(ctx context.Context, in TitleInput) (*models.Title, error) {
	v := apperr.NewValidationError()
	if in.Name == nil {
		v.Add("name", msgFieldRequired)
	}
	if in.Year == nil {
		v.Add("year", msgFieldRequired)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	title := &models.Title{}
	if err := s.apply(ctx, title, in); err != nil {
		return nil, err
	}
	if err := s.titles.Create(ctx, title); err != nil {
		return nil, err
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, in TitleInput) (*models.Title, error) {
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, title, in); err != nil {
		return nil, err
	}
	if err := s.titles.Update(ctx, title); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	return notFound(s.titles.Delete(ctx, id), "title")
}

// apply copies the set fields of in onto title, resolving slugs. Unknown
// slugs are reported per field.
func (s *titleService) apply(ctx context.Context, title *models.Title, in TitleInput) error {
	v := apperr.NewValidationError()
	if in.Name != nil {
		title.Name = plainText(v, "name", *in.Name)
	}
	if in.Year != nil {
		title.Year = *in.Year
	}
	if in.Description != nil {
		description := plainText(v, "description", *in.Description)
		title.Description = &description
	}
	if in.Category != nil {
		title.Category = nil
		title.CategoryID = nil
		if slug := *in.Category; slug != "" {
			found, err := s.categories.FindBySlugs(ctx, []string{slug})
			if err != nil {
				return err
			}
			if len(found) == 0 {
				v.Add("category", doesNotExist(slug))
			} else {
				id := found[0].ID
				title.CategoryID = &id
				title.Category = &models.Category{Tag: found[0]}
			}
		}
	}
	if in.Genres != nil {
		genres, err := s.resolveGenres(ctx, *in.Genres, v)
		if err != nil {
			return err
		}
		title.Genres = genres
	}
	return v.OrNil()
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string, v *apperr.ValidationError) ([]models.Genre, error) {
	found, err := s.genres.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]models.Tag, len(found))
	for _, tag := range found {
		bySlug[tag.Slug] = tag
	}

	genres := make([]models.Genre, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		tag, ok := bySlug[slug]
		if !ok {
			v.Add("genre", doesNotExist(slug))
			continue
		}
		if seen[slug] {
			continue
		}
		seen[slug] = true
		genres = append(genres, models.Genre{Tag: tag})
	}
	return genres, nil
}
