package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/LarsBecker/StoryPress/app/models"
)

// newTestDB opens a throwaway in-memory database with the full schema.
// A single connection keeps every query on the same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Author{},
		&models.Category{},
		&models.Article{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Bookmark{},
	))

	return db
}

func seedAuthor(t *testing.T, db *gorm.DB, fullname, email string) *models.Author {
	t.Helper()

	user := &models.User{FullName: fullname, Email: email, Password: "x", IsActive: true, IsAuthor: true}
	require.NoError(t, db.Create(user).Error)

	author := &models.Author{UserID: user.ID}
	require.NoError(t, db.Create(author).Error)
	author.User = *user
	return author
}

func seedArticle(t *testing.T, db *gorm.DB, authorID uint, title string, published, deleted bool, createdAt time.Time) *models.Article {
	t.Helper()

	article := &models.Article{
		Title:       title,
		Content:     "body of " + title,
		AuthorID:    authorID,
		IsPublished: published,
		IsDeleted:   deleted,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(article).Error)
	return article
}

func articleIDs(articles []models.Article) []uint {
	ids := make([]uint, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestArticleQueriesExcludeSoftDeleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)
	author := seedAuthor(t, db, "Mira Holt", "mira@example.com")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	visible := seedArticle(t, db, author.ID, "Visible Story", true, false, base)
	deleted := seedArticle(t, db, author.ID, "Removed Story", true, true, base.Add(time.Hour))
	draft := seedArticle(t, db, author.ID, "Draft Story", false, false, base.Add(2*time.Hour))

	listed, err := repo.ListPublished(SortDateDesc, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{visible.ID}, articleIDs(listed))

	count, err := repo.CountPublished()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	latest, err := repo.Latest(10)
	require.NoError(t, err)
	assert.Equal(t, []uint{visible.ID}, articleIDs(latest))

	found, err := repo.Search("Story")
	require.NoError(t, err)
	assert.Equal(t, []uint{visible.ID}, articleIDs(found))

	byAuthor, err := repo.ByAuthorPublished(author.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{visible.ID}, articleIDs(byAuthor))

	// the author's own listing keeps drafts but still hides deleted rows
	own, err := repo.ByAuthorAll(author.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{visible.ID, draft.ID}, articleIDs(own))

	_, err = repo.GetByID(deleted.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	any, err := repo.GetAnyByID(deleted.ID)
	require.NoError(t, err)
	assert.Equal(t, deleted.ID, any.ID)
}

func TestIncrementViewCountReachesSoftDeleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)
	author := seedAuthor(t, db, "Mira Holt", "mira@example.com")

	article := seedArticle(t, db, author.ID, "Removed Story", true, true, time.Now())

	require.NoError(t, repo.IncrementViewCount(article.ID))

	got, err := repo.GetAnyByID(article.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ViewCount)

	assert.ErrorIs(t, repo.IncrementViewCount(9999), gorm.ErrRecordNotFound)
}

func TestToggleLikeIsAnInvolution(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	author := seedAuthor(t, db, "Mira Holt", "mira@example.com")
	article := seedArticle(t, db, author.ID, "Visible Story", true, false, time.Now())

	reader := &models.User{FullName: "Sam Reader", Email: "sam@example.com", Password: "x", IsActive: true}
	require.NoError(t, db.Create(reader).Error)

	comment := &models.Comment{ArticleID: article.ID, UserID: reader.ID, Content: "nice read"}
	require.NoError(t, db.Create(comment).Error)

	liked, err := repo.ToggleLike(comment.ID, reader.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := repo.LikeCount(comment.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	liked, err = repo.ToggleLike(comment.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = repo.LikeCount(comment.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	liked, err = repo.ToggleLike(comment.ID, reader.ID)
	require.NoError(t, err)
	assert.True(t, liked, "a third toggle likes again")
}

func TestBookmarkPairUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepository(db)
	author := seedAuthor(t, db, "Mira Holt", "mira@example.com")
	article := seedArticle(t, db, author.ID, "Visible Story", true, false, time.Now())

	reader := &models.User{FullName: "Sam Reader", Email: "sam@example.com", Password: "x", IsActive: true}
	require.NoError(t, db.Create(reader).Error)

	exists, err := repo.PairExists(reader.ID, article.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	bookmark := &models.Bookmark{UserID: reader.ID, ArticleID: article.ID}
	require.NoError(t, repo.Create(bookmark))

	exists, err = repo.PairExists(reader.ID, article.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// the unique index backs up the handler-level check
	dup := &models.Bookmark{UserID: reader.ID, ArticleID: article.ID}
	assert.Error(t, repo.Create(dup))

	_, err = repo.GetByIDForUser(bookmark.ID, reader.ID+1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "another user's id never resolves the row")
}

func TestCategoryNameMatchingIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)

	require.NoError(t, repo.Create(&models.Category{Name: "Web Development", IsActive: true}))

	exists, err := repo.NameExists("WEB DEVELOPMENT")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.NameExists("  web development  ")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.NameExists("Web Design")
	require.NoError(t, err)
	assert.False(t, exists)

	category, err := repo.GetByNameFold("wEb DeVeLoPmEnT")
	require.NoError(t, err)
	assert.Equal(t, "Web Development", category.Name)
	assert.Equal(t, "web-development", category.Slug)
}
