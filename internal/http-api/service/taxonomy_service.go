package service

import (
	"context"
	"fmt"

	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
)

// TaxonomyService manages one tag table. Tags have no update operation.
type TaxonomyService interface {
	Taxonomy() models.Taxonomy
	List(ctx context.Context, name string, page repository.Page) ([]models.Tag, int64, error)
	Create(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, slug string) error
}

type taxonomyService struct {
	repo repository.TaxonomyRepository
}

func NewTaxonomyService(repo repository.TaxonomyRepository) TaxonomyService {
	return &taxonomyService{repo: repo}
}

func (s *taxonomyService) Taxonomy() models.Taxonomy {
	return s.repo.Taxonomy()
}

func (s *taxonomyService) List(ctx context.Context, name string, page repository.Page) ([]models.Tag, int64, error) {
	return s.repo.List(ctx, name, page)
}

func (s *taxonomyService) Create(ctx context.Context, tag *models.Tag) error {
	tag.ID = 0
	v := apperr.NewValidationError()
	tag.Name = plainText(v, "name", tag.Name)
	if err := v.OrNil(); err != nil {
		return err
	}
	err := s.repo.Create(ctx, tag)
	return duplicateField(err, map[string]string{
		"slug": fmt.Sprintf("%s with this slug already exists.", s.repo.Taxonomy().Noun()),
	})
}

func (s *taxonomyService) Delete(ctx context.Context, slug string) error {
	return notFound(s.repo.DeleteBySlug(ctx, slug), s.repo.Taxonomy().Noun())
}
