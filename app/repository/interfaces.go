package repository

import (
	"time"

	"github.com/LarsBecker/StoryPress/app/models"
	"gorm.io/gorm"
)

// UserFilter narrows the admin user listing. Zero values mean "all".
type UserFilter struct {
	Search string // fullname/email substring
	Role   string // admin | author | reader
	Status string // active | suspended
}

// UserStats are the role/status counts shown next to the admin user list.
type UserStats struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Authors int64 `json:"authors"`
	Admins  int64 `json:"admins"`
	Readers int64 `json:"readers"`
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(filter UserFilter) ([]models.User, error)
	Count() (int64, error)
	CountJoinedSince(since time.Time) (int64, error)
	GetStats() (*UserStats, error)
}

// AuthorRepository defines the interface for author-profile operations
type AuthorRepository interface {
	Create(author *models.Author) error
	GetByID(id uint) (*models.Author, error)
	GetByUserID(userID uint) (*models.Author, error)
	ExistsForUser(userID uint) (bool, error)
	List() ([]models.Author, error)
	Update(author *models.Author) error
	Delete(id uint) error
}

// ArticleSort names the supported list orderings.
type ArticleSort string

const (
	SortDateDesc  ArticleSort = "date_desc"
	SortDateAsc   ArticleSort = "date_asc"
	SortViewsDesc ArticleSort = "views_desc"
	SortViewsAsc  ArticleSort = "views_asc"
)

// PeriodStats aggregates articles created inside a time window.
type PeriodStats struct {
	Articles int64
	Views    int64
}

// AuthorPerformance is the per-author aggregate used by the analytics report.
type AuthorPerformance struct {
	AuthorID      uint    `json:"author_id"`
	AuthorName    string  `json:"author_name"`
	TotalArticles int64   `json:"total_articles"`
	TotalViews    int64   `json:"total_views"`
	AvgViews      float64 `json:"avg_views"`
}

// ArticleRepository defines the interface for article-related database operations
type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	GetAnyByID(id uint) (*models.Article, error)
	GetPublishedBySlug(slug string) (*models.Article, error)
	ListPublished(sort ArticleSort, offset, limit int) ([]models.Article, error)
	CountPublished() (int64, error)
	Latest(limit int) ([]models.Article, error)
	Search(query string) ([]models.Article, error)
	ByAuthorPublished(authorID uint) ([]models.Article, error)
	ByAuthorAll(authorID uint) ([]models.Article, error)
	ByCategory(categoryID uint, offset, limit int) ([]models.Article, int64, error)
	IncrementViewCount(id uint) error
	Update(article *models.Article) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
	Count() (int64, error)

	// analytics
	TotalViews() (int64, error)
	AverageViews() (float64, error)
	TopByViews(limit int, ascending bool) ([]models.Article, error)
	StatsBetween(start, end time.Time) (*PeriodStats, error)
	Trending(since time.Time, limit int) ([]models.Article, error)
	CreatedSince(since time.Time) ([]models.Article, error)
	AuthorPerformance() ([]AuthorPerformance, error)
}

// CategoryRepository defines the interface for category operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetByNameFold(name string) (*models.Category, error)
	NameExists(name string) (bool, error)
	ListActive(search string, offset, limit int) ([]models.Category, int64, error)
	AllActive() ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uint) error
}

// CommentRepository defines the interface for comment and like operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	TopLevelByArticle(articleID uint) ([]models.Comment, error)
	Replies(commentID uint) ([]models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id uint) error
	ToggleLike(commentID, userID uint) (liked bool, err error)
	LikeCount(commentID uint) (int64, error)
}

// BookmarkRepository defines the interface for bookmark operations
type BookmarkRepository interface {
	Create(bookmark *models.Bookmark) error
	PairExists(userID, articleID uint) (bool, error)
	ListByUser(userID uint) ([]models.Bookmark, error)
	GetByIDForUser(id, userID uint) (*models.Bookmark, error)
	Delete(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User     UserRepository
	Author   AuthorRepository
	Article  ArticleRepository
	Category CategoryRepository
	Comment  CommentRepository
	Bookmark BookmarkRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Author:   NewAuthorRepository(db),
		Article:  NewArticleRepository(db),
		Category: NewCategoryRepository(db),
		Comment:  NewCommentRepository(db),
		Bookmark: NewBookmarkRepository(db),
	}
}
