package repository

import (
	"context"

	"gorm.io/gorm"

	"yamdb/internal/http-api/models"
)

// TaxonomyRepository serves one tag table, categories or genres. Both share
// the Tag shape and are looked up by slug.
type TaxonomyRepository interface {
	Taxonomy() models.Taxonomy
	List(ctx context.Context, name string, page Page) ([]models.Tag, int64, error)
	Create(ctx context.Context, tag *models.Tag) error
	DeleteBySlug(ctx context.Context, slug string) error
	FindBySlugs(ctx context.Context, slugs []string) ([]models.Tag, error)
}

type taxonomyRepository struct {
	db       *gorm.DB
	taxonomy models.Taxonomy
}

func NewTaxonomyRepository(db *gorm.DB, taxonomy models.Taxonomy) TaxonomyRepository {
	return &taxonomyRepository{db: db, taxonomy: taxonomy}
}

func (r *taxonomyRepository) Taxonomy() models.Taxonomy {
	return r.taxonomy
}

func (r *taxonomyRepository) table(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(string(r.taxonomy))
}

// List orders by id. name, when set, must match exactly.
func (r *taxonomyRepository) List(ctx context.Context, name string, page Page) ([]models.Tag, int64, error) {
	var tags []models.Tag
	var total int64

	q := r.table(ctx)
	if name != "" {
		q = q.Where("name = ?", name)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := page.apply(q.Order("id")).Find(&tags).Error; err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

func (r *taxonomyRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := tag.Validate(); err != nil {
		return err
	}
	return translate(r.table(ctx).Create(tag).Error)
}

func (r *taxonomyRepository) DeleteBySlug(ctx context.Context, slug string) error {
	result := r.table(ctx).Where("slug = ?", slug).Delete(&models.Tag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindBySlugs returns the tags that exist; callers compare lengths to spot
// unknown slugs.
func (r *taxonomyRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Tag, error) {
	var tags []models.Tag
	if len(slugs) == 0 {
		return tags, nil
	}
	if err := r.table(ctx).Where("slug IN ?", slugs).Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
