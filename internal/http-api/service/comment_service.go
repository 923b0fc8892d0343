package service

import (
	"context"

	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/permission"
	"yamdb/internal/http-api/repository"
)

type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page repository.Page) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, author permission.Subject, titleID, reviewID int64, text *string) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment, text *string) (*models.Comment, error)
	Delete(ctx context.Context, comment *models.Comment) error
}

type commentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
}

func NewCommentService(comments repository.CommentRepository, reviews repository.ReviewRepository) CommentService {
	return &commentService{comments: comments, reviews: reviews}
}

// requireReview checks that the review exists under the title of the path.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviews.GetByID(ctx, titleID, reviewID); err != nil {
		return notFound(err, "review")
	}
	return nil
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page repository.Page) ([]models.Comment, int64, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListByReview(ctx, reviewID, page)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, notFound(err, "comment")
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, author permission.Subject, titleID, reviewID int64, text *string) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	if text == nil {
		return nil, apperr.FieldError("text", msgFieldRequired)
	}
	v := apperr.NewValidationError()
	clean := plainText(v, "text", *text)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: author.ID,
		Text:     clean,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.reload(ctx, comment)
}

func (s *commentService) Update(ctx context.Context, comment *models.Comment, text *string) (*models.Comment, error) {
	if text != nil {
		v := apperr.NewValidationError()
		clean := plainText(v, "text", *text)
		if err := v.OrNil(); err != nil {
			return nil, err
		}
		comment.Text = clean
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.reload(ctx, comment)
}

func (s *commentService) Delete(ctx context.Context, comment *models.Comment) error {
	return notFound(s.comments.Delete(ctx, comment.ID), "comment")
}

func (s *commentService) reload(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	fresh, err := s.comments.GetByID(ctx, comment.ReviewID, comment.ID)
	if err != nil {
		return nil, notFound(err, "comment")
	}
	return fresh, nil
}
