package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"

	"yamdb/database"
	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
)

func migrationsPath(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "database", "migrations")
}

// setupDB starts postgres in a container and applies the migrations. It
// skips when -short is set or no container runtime is available.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := tcpostgres.Run(
		ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("yamdb"),
		tcpostgres.WithUsername("yamdb"),
		tcpostgres.WithPassword("yamdb"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.MigrateUp(dsn, migrationsPath(t)))

	db, err := database.ConnectDB(ctx, dsn, zerolog.Nop())
	require.NoError(t, err)
	return db
}

func TestRepositories(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	users := repository.NewUserRepository(db)
	titles := repository.NewTitleRepository(db)
	categories := repository.NewTaxonomyRepository(db, models.TaxonomyCategory)
	genres := repository.NewTaxonomyRepository(db, models.TaxonomyGenre)
	reviews := repository.NewReviewRepository(db)
	comments := repository.NewCommentRepository(db)

	alice := &models.User{Username: "alice", Email: "alice@example.com"}
	bob := &models.User{Username: "bob", Email: "bob@example.com", Role: models.RoleModerator}

	t.Run("users", func(t *testing.T) {
		require.NoError(t, users.Create(ctx, alice))
		require.NoError(t, users.Create(ctx, bob))
		assert.NotEmpty(t, alice.ID)

		root := &models.User{Username: "root", Email: "root@example.com", IsSuperuser: true}
		require.NoError(t, users.Create(ctx, root))
		stored, err := users.FindByUsername(ctx, "root")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, stored.Role)

		stored.Role = models.RoleUser
		require.NoError(t, users.Update(ctx, stored))
		again, err := users.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, again.Role, "superusers stay admins")

		err = users.Create(ctx, &models.User{Username: "alice2", Email: "alice@example.com"})
		require.ErrorIs(t, err, repository.ErrDuplicate)
		var dup *repository.DuplicateError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "email", dup.Column())

		err = users.Create(ctx, &models.User{Username: "al", Email: "al@example.com"})
		_, ok := apperr.IsValidation(err)
		assert.True(t, ok)

		found, total, err := users.List(ctx, "AL", repository.Page{Number: 1, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "alice", found[0].Username)

		_, err = users.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	var drama, comedy models.Tag
	var film models.Tag

	t.Run("taxonomy", func(t *testing.T) {
		film = models.Tag{Name: "Film", Slug: "film"}
		require.NoError(t, categories.Create(ctx, &film))
		drama = models.Tag{Name: "Drama", Slug: "drama"}
		comedy = models.Tag{Name: "Comedy", Slug: "comedy"}
		require.NoError(t, genres.Create(ctx, &drama))
		require.NoError(t, genres.Create(ctx, &comedy))

		err := genres.Create(ctx, &models.Tag{Name: "Drama again", Slug: "drama"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		list, total, err := genres.List(ctx, "Comedy", repository.Page{Number: 1, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "comedy", list[0].Slug)

		found, err := genres.FindBySlugs(ctx, []string{"drama", "comedy", "missing"})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	var title models.Title

	t.Run("titles", func(t *testing.T) {
		title = models.Title{
			Name:       "The Godfather",
			Year:       1972,
			CategoryID: &film.ID,
			Genres:     []models.Genre{{Tag: drama}},
		}
		require.NoError(t, titles.Create(ctx, &title))

		other := models.Title{Name: "Airplane!", Year: 1980, Genres: []models.Genre{{Tag: comedy}}}
		require.NoError(t, titles.Create(ctx, &other))

		err := titles.Create(ctx, &models.Title{Name: "Future", Year: time.Now().Year() + 1})
		_, ok := apperr.IsValidation(err)
		assert.True(t, ok)

		got, err := titles.GetByID(ctx, title.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Rating)
		require.NotNil(t, got.Category)
		assert.Equal(t, "film", got.Category.Slug)
		require.Len(t, got.Genres, 1)
		assert.Equal(t, "drama", got.Genres[0].Slug)

		list, total, err := titles.List(ctx, repository.TitleFilter{Genre: "comedy"}, repository.Page{Number: 1, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Airplane!", list[0].Name)

		list, _, err = titles.List(ctx, repository.TitleFilter{Name: "godf", Category: "film"}, repository.Page{Number: 1, Size: 10})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, title.ID, list[0].ID)

		year := 1980
		_, total, err = titles.List(ctx, repository.TitleFilter{Year: &year}, repository.Page{Number: 1, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		got.Genres = []models.Genre{{Tag: drama}, {Tag: comedy}}
		require.NoError(t, titles.Update(ctx, got))
		got, err = titles.GetByID(ctx, title.ID)
		require.NoError(t, err)
		assert.Len(t, got.Genres, 2)
	})

	var review models.Review

	t.Run("reviews", func(t *testing.T) {
		review = models.Review{TitleID: title.ID, AuthorID: alice.ID, Text: "Classic", Score: 7}
		require.NoError(t, reviews.Create(ctx, &review))
		require.NoError(t, reviews.Create(ctx, &models.Review{TitleID: title.ID, AuthorID: bob.ID, Text: "Great", Score: 8}))

		exists, err := reviews.ExistsForAuthor(ctx, title.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		got, err := titles.GetByID(ctx, title.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Rating)
		assert.InDelta(t, 7.5, *got.Rating, 0.001)

		loaded, err := reviews.GetByID(ctx, title.ID, review.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", loaded.Author.Username)
		assert.Equal(t, "The Godfather", loaded.Title.Name)

		_, err = reviews.GetByID(ctx, title.ID+1000, review.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		list, total, err := reviews.ListByTitle(ctx, title.ID, repository.Page{Number: 1, Size: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, list, 1)
	})

	t.Run("comments", func(t *testing.T) {
		first := models.Comment{ReviewID: review.ID, AuthorID: bob.ID, Text: "Agreed"}
		require.NoError(t, comments.Create(ctx, &first))
		second := models.Comment{ReviewID: review.ID, AuthorID: alice.ID, Text: "Thanks"}
		require.NoError(t, comments.Create(ctx, &second))

		list, total, err := comments.ListByReview(ctx, review.ID, repository.Page{Number: 1, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, second.ID, list[0].ID, "newest first")
		assert.Equal(t, "bob", list[1].Author.Username)

		require.NoError(t, comments.Delete(ctx, first.ID))
		assert.ErrorIs(t, comments.Delete(ctx, first.ID), gorm.ErrRecordNotFound)
	})

	t.Run("category delete keeps titles", func(t *testing.T) {
		require.NoError(t, categories.DeleteBySlug(ctx, "film"))
		got, err := titles.GetByID(ctx, title.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CategoryID)
		assert.Nil(t, got.Category)

		assert.ErrorIs(t, categories.DeleteBySlug(ctx, "film"), gorm.ErrRecordNotFound)
	})

	t.Run("user delete cascades", func(t *testing.T) {
		require.NoError(t, users.Delete(ctx, alice.ID))
		exists, err := reviews.ExistsForAuthor(ctx, title.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, repository.Page{Number: 1, Size: 10}.Offset())
	assert.Equal(t, 20, repository.Page{Number: 3, Size: 10}.Offset())
	assert.Equal(t, 0, repository.Page{Number: 0, Size: 10}.Offset())
}

func TestDuplicateError_Column(t *testing.T) {
	assert.Equal(t, "email", (&repository.DuplicateError{Constraint: "users_email_key"}).Column())
	assert.Equal(t, "username", (&repository.DuplicateError{Constraint: "users_username_key"}).Column())
	assert.Equal(t, "slug", (&repository.DuplicateError{Constraint: "genres_slug_key"}).Column())
	assert.True(t, errors.Is(&repository.DuplicateError{}, repository.ErrDuplicate))
}
