package service

import (
	"context"

	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/permission"
	"yamdb/internal/http-api/repository"
)

const msgReviewExists = "Score already exists"

// ReviewInput is the write shape of a review. Author and title come from
// the request context, never from the body.
type ReviewInput struct {
	Text  *string
	Score *int
}

type ReviewService interface {
	List(ctx context.Context, titleID int64, page repository.Page) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, author permission.Subject, titleID int64, in ReviewInput) (*models.Review, error)
	Update(ctx context.Context, review *models.Review, in ReviewInput) (*models.Review, error)
	Delete(ctx context.Context, review *models.Review) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
}

func NewReviewService(reviews repository.ReviewRepository, titles repository.TitleRepository) ReviewService {
	return &reviewService{reviews: reviews, titles: titles}
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	ok, err := s.titles.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *reviewService) List(ctx context.Context, titleID int64, page repository.Page) ([]models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviews.ListByTitle(ctx, titleID, page)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, notFound(err, "review")
	}
	return review, nil
}

// Create rejects a second review of the same title by the same author.
// The check runs before the insert and is not atomic with it.
func (s *reviewService) Create(ctx context.Context, author permission.Subject, titleID int64, in ReviewInput) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	v := apperr.NewValidationError()
	var text string
	if in.Text == nil {
		v.Add("text", msgFieldRequired)
	} else {
		text = plainText(v, "text", *in.Text)
	}
	if in.Score == nil {
		v.Add("score", msgFieldRequired)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsForAuthor(ctx, titleID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict(msgReviewExists)
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: author.ID,
		Text:     text,
		Score:    *in.Score,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return s.Get(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, review *models.Review, in ReviewInput) (*models.Review, error) {
	if in.Text != nil {
		v := apperr.NewValidationError()
		text := plainText(v, "text", *in.Text)
		if err := v.OrNil(); err != nil {
			return nil, err
		}
		review.Text = text
	}
	if in.Score != nil {
		review.Score = *in.Score
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return s.Get(ctx, review.TitleID, review.ID)
}

func (s *reviewService) Delete(ctx context.Context, review *models.Review) error {
	return notFound(s.reviews.Delete(ctx, review.ID), "review")
}
