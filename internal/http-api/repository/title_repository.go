package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yamdb/internal/http-api/models"
)

// TitleFilter narrows a title list. Zero fields do not filter.
type TitleFilter struct {
	Category string // category slug
	Genre    string // genre slug
	Name     string // case-insensitive partial match
	Year     *int
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page Page) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

// timeNow is the clock the year check runs against.
var timeNow = time.Now

// ratingSelect computes the average review score next to every title row.
const ratingSelect = "titles.*, (SELECT AVG(reviews.score)::float8 FROM reviews WHERE reviews.title_id = titles.id) AS rating"

func (r *titleRepository) read(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Title{}).
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.id")
		})
}

func (r *titleRepository) filter(q *gorm.DB, f TitleFilter) *gorm.DB {
	if f.Category != "" {
		q = q.Where("titles.category_id IN (?)",
			r.db.Table("categories").Select("id").Where("slug = ?", f.Category))
	}
	if f.Genre != "" {
		q = q.Where("titles.id IN (?)",
			r.db.Table("titles_genres").
				Select("titles_genres.title_id").
				Joins("JOIN genres ON genres.id = titles_genres.genre_id").
				Where("genres.slug = ?", f.Genre))
	}
	if f.Name != "" {
		q = q.Where("titles.name ILIKE ?", likePattern(f.Name))
	}
	if f.Year != nil {
		q = q.Where("titles.year = ?", *f.Year)
	}
	return q
}

func (r *titleRepository) List(ctx context.Context, f TitleFilter, page Page) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	if err := r.filter(r.db.WithContext(ctx).Model(&models.Title{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := page.apply(r.filter(r.read(ctx), f).Order("titles.id"))
	if err := q.Find(&titles).Error; err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	if err := r.read(ctx).Where("titles.id = ?", id).First(&title).Error; err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Title{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// Create inserts the title and its genre links. Genres must already exist.
func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	if err := title.Validate(timeNow()); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Omit("Category", "Genres.*").Create(title).Error
}

// Update saves the columns and replaces the genre links in one transaction.
func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	if err := title.Validate(timeNow()); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(title).Error; err != nil {
			return err
		}
		genres := tx.Model(title).Omit("Genres.*").Association("Genres")
		if len(title.Genres) == 0 {
			return genres.Clear()
		}
		return genres.Replace(title.Genres)
	})
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
