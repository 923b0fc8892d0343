package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/permission"
)

func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }
func slugs(s ...string) *[]string { return &s }

var author = permission.Subject{ID: "u-1", Username: "alice", Role: models.RoleUser}

func TestReviewService_CreateOnce(t *testing.T) {
	reviews := new(MockReviewRepository)
	titles := new(MockTitleRepository)
	svc := NewReviewService(reviews, titles)
	ctx := context.Background()

	titles.On("Exists", ctx, int64(1)).Return(true, nil)
	reviews.On("ExistsForAuthor", ctx, int64(1), "u-1").Return(false, nil).Once()
	reviews.On("Create", ctx, mock.MatchedBy(func(r *models.Review) bool {
		return r.AuthorID == "u-1" && r.TitleID == 1 && r.Score == 8 && r.Text == "Great"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Review).ID = 10
	}).Return(nil).Once()
	reviews.On("GetByID", ctx, int64(1), int64(10)).Return(&models.Review{ID: 10, TitleID: 1, AuthorID: "u-1", Score: 8}, nil).Once()

	review, err := svc.Create(ctx, author, 1, ReviewInput{Text: strPtr("  Great  "), Score: intPtr(8)})
	require.NoError(t, err)
	assert.Equal(t, int64(10), review.ID)

	reviews.On("ExistsForAuthor", ctx, int64(1), "u-1").Return(true, nil).Once()
	_, err = svc.Create(ctx, author, 1, ReviewInput{Text: strPtr("Again"), Score: intPtr(3)})

	assert.ErrorIs(t, err, apperr.ErrConflict)
	v, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Score already exists"}, v.Fields[apperr.NonFieldKey])
	reviews.AssertNumberOfCalls(t, "Create", 1)
}

func TestReviewService_UpdateSkipsUniquenessCheck(t *testing.T) {
	reviews := new(MockReviewRepository)
	svc := NewReviewService(reviews, new(MockTitleRepository))
	ctx := context.Background()

	existing := &models.Review{ID: 10, TitleID: 1, AuthorID: "u-1", Text: "ok", Score: 5}
	reviews.On("Update", ctx, existing).Return(nil).Once()
	reviews.On("GetByID", ctx, int64(1), int64(10)).Return(existing, nil).Once()

	updated, err := svc.Update(ctx, existing, ReviewInput{Score: intPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Score)
	assert.Equal(t, "ok", updated.Text)
	reviews.AssertNotCalled(t, "ExistsForAuthor", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_MissingTitle(t *testing.T) {
	reviews := new(MockReviewRepository)
	titles := new(MockTitleRepository)
	svc := NewReviewService(reviews, titles)
	ctx := context.Background()

	titles.On("Exists", ctx, int64(404)).Return(false, nil)

	_, err := svc.Create(ctx, author, 404, ReviewInput{Text: strPtr("x"), Score: intPtr(5)})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, _, err = svc.List(ctx, 404, pageOne)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReviewService_RequiredFields(t *testing.T) {
	titles := new(MockTitleRepository)
	svc := NewReviewService(new(MockReviewRepository), titles)
	ctx := context.Background()
	titles.On("Exists", ctx, int64(1)).Return(true, nil)

	_, err := svc.Create(ctx, author, 1, ReviewInput{})
	v, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v.Fields, "text")
	assert.Contains(t, v.Fields, "score")
}

func TestReviewService_TextKeptAsSubmitted(t *testing.T) {
	reviews := new(MockReviewRepository)
	titles := new(MockTitleRepository)
	svc := NewReviewService(reviews, titles)
	ctx := context.Background()

	titles.On("Exists", ctx, int64(1)).Return(true, nil)
	reviews.On("ExistsForAuthor", ctx, int64(1), "u-1").Return(false, nil)
	reviews.On("Create", ctx, mock.MatchedBy(func(r *models.Review) bool {
		return r.Text == "x < y & z > w, &lt;b&gt;"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Review).ID = 11
	}).Return(nil).Once()
	reviews.On("GetByID", ctx, int64(1), int64(11)).Return(&models.Review{ID: 11, TitleID: 1}, nil).Once()

	_, err := svc.Create(ctx, author, 1, ReviewInput{Text: strPtr("x < y & z > w, &lt;b&gt;"), Score: intPtr(6)})
	require.NoError(t, err)
	reviews.AssertExpectations(t)
}

func TestReviewService_MarkupRejected(t *testing.T) {
	reviews := new(MockReviewRepository)
	titles := new(MockTitleRepository)
	svc := NewReviewService(reviews, titles)
	ctx := context.Background()
	titles.On("Exists", ctx, int64(1)).Return(true, nil)

	_, err := svc.Create(ctx, author, 1, ReviewInput{Text: strPtr("x<y and z>w"), Score: intPtr(6)})
	v, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{msgMarkup}, v.Fields["text"])

	existing := &models.Review{ID: 10, TitleID: 1, AuthorID: "u-1", Text: "ok", Score: 5}
	_, err = svc.Update(ctx, existing, ReviewInput{Text: strPtr("use the <br> tag")})
	_, ok = apperr.IsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, "ok", existing.Text)

	reviews.AssertNotCalled(t, "ExistsForAuthor", mock.Anything, mock.Anything, mock.Anything)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCommentService_ReviewMustBelongToTitle(t *testing.T) {
	comments := new(MockCommentRepository)
	reviews := new(MockReviewRepository)
	svc := NewCommentService(comments, reviews)
	ctx := context.Background()

	reviews.On("GetByID", ctx, int64(2), int64(10)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(ctx, author, 2, 10, strPtr("hi"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentService_Create(t *testing.T) {
	comments := new(MockCommentRepository)
	reviews := new(MockReviewRepository)
	svc := NewCommentService(comments, reviews)
	ctx := context.Background()

	reviews.On("GetByID", ctx, int64(1), int64(10)).Return(&models.Review{ID: 10, TitleID: 1}, nil)
	comments.On("Create", ctx, mock.MatchedBy(func(c *models.Comment) bool {
		return c.ReviewID == 10 && c.AuthorID == "u-1" && c.Text == "hi"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Comment).ID = 3
	}).Return(nil).Once()
	comments.On("GetByID", ctx, int64(10), int64(3)).Return(&models.Comment{ID: 3, ReviewID: 10, Text: "hi"}, nil).Once()

	comment, err := svc.Create(ctx, author, 1, 10, strPtr("hi"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), comment.ID)

	_, err = svc.Create(ctx, author, 1, 10, nil)
	_, ok := apperr.IsValidation(err)
	assert.True(t, ok)
}

func TestCommentService_MarkupRejected(t *testing.T) {
	comments := new(MockCommentRepository)
	reviews := new(MockReviewRepository)
	svc := NewCommentService(comments, reviews)
	ctx := context.Background()

	reviews.On("GetByID", ctx, int64(1), int64(10)).Return(&models.Review{ID: 10, TitleID: 1}, nil)

	_, err := svc.Create(ctx, author, 1, 10, strPtr("<i>hi</i>"))
	v, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{msgMarkup}, v.Fields["text"])
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
