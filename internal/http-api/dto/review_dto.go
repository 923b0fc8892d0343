package dto

import (
	"time"

	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/service"
)

type ReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

func (r *ReviewRequest) ToInput() service.ReviewInput {
	return service.ReviewInput{Text: r.Text, Score: r.Score}
}

// ReviewResponse names the author by username and the title by name.
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
	Title   string    `json:"title"`
}

func FromModelToReviewResponse(review *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Author:  review.Author.Username,
		Score:   review.Score,
		PubDate: review.PubDate,
		Title:   review.Title.Name,
	}
}

type CommentRequest struct {
	Text *string `json:"text"`
}

type CommentResponse struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	Author   string    `json:"author"`
	PubDate  time.Time `json:"pub_date"`
	ReviewID int64     `json:"review_id"`
}

func FromModelToCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:       comment.ID,
		Text:     comment.Text,
		Author:   comment.Author.Username,
		PubDate:  comment.PubDate,
		ReviewID: comment.ReviewID,
	}
}
