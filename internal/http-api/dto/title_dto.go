package dto

import (
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/service"
)

// TagResponse is the public shape of a category or genre.
type TagResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TagRequest struct {
	Name string `json:"name" binding:"required,max=150"`
	Slug string `json:"slug" binding:"required,slug"`
}

func (r *TagRequest) ToModel() *models.Tag {
	return &models.Tag{Name: r.Name, Slug: r.Slug}
}

func FromModelToTagResponse(tag *models.Tag) TagResponse {
	return TagResponse{Name: tag.Name, Slug: tag.Slug}
}

// TitleResponse is the read shape: tags are expanded and the rating is
// the integer part of the average score, null without reviews.
type TitleResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Year        int           `json:"year"`
	Rating      *int          `json:"rating"`
	Description *string       `json:"description"`
	Genre       []TagResponse `json:"genre"`
	Category    *TagResponse  `json:"category"`
}

func FromModelToTitleResponse(title *models.Title) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		Genre:       make([]TagResponse, 0, len(title.Genres)),
	}
	if title.Rating != nil {
		rating := int(*title.Rating)
		resp.Rating = &rating
	}
	for i := range title.Genres {
		resp.Genre = append(resp.Genre, FromModelToTagResponse(&title.Genres[i].Tag))
	}
	if title.Category != nil {
		category := FromModelToTagResponse(&title.Category.Tag)
		resp.Category = &category
	}
	return resp
}

// TitleRequest is the write shape: tags are referenced by slug. A nil
// Genre keeps the current genres, an empty list clears them.
type TitleRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=200"`
	Year        *int     `json:"year" binding:"omitempty,pastyear"`
	Description *string  `json:"description" binding:"omitempty,max=200"`
	Category    *string  `json:"category" binding:"omitempty,slug"`
	Genre       []string `json:"genre" binding:"omitempty,dive,slug"`
}

func (r *TitleRequest) ToInput() service.TitleInput {
	in := service.TitleInput{
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Category:    r.Category,
	}
	if r.Genre != nil {
		genres := r.Genre
		in.Genres = &genres
	}
	return in
}
