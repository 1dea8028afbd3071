package repository

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/LarsBecker/StoryPress/app/models"
	"gorm.io/gorm"
)

// articleRepository implements the ArticleRepository interface
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository instance
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// notDeleted scopes a query to rows that are not soft-deleted
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("articles.is_deleted = ?", false)
}

// publicOnly scopes a query to published, not soft-deleted rows
func publicOnly(db *gorm.DB) *gorm.DB {
	return db.Where("articles.is_published = ? AND articles.is_deleted = ?", true, false)
}

// Create creates a new article
func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

// GetByID retrieves a non-deleted article by ID
func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Scopes(notDeleted).
		Preload("Author.User").Preload("Category").
		First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetAnyByID retrieves an article by ID regardless of its deletion flag.
// Used by the increment endpoint and admin paths.
func (r *articleRepository) GetAnyByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author.User").Preload("Category").First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetPublishedBySlug retrieves a published, non-deleted article by its slug
func (r *articleRepository) GetPublishedBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Scopes(publicOnly).
		Preload("Author.User").Preload("Category").
		Where("articles.slug = ?", slug).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// ListPublished retrieves a page of published articles in the given order
func (r *articleRepository) ListPublished(sort ArticleSort, offset, limit int) ([]models.Article, error) {
	order := "articles.created_at DESC"
	switch sort {
	case SortDateAsc:
		order = "articles.created_at ASC"
	case SortViewsDesc:
		order = "articles.view_count DESC"
	case SortViewsAsc:
		order = "articles.view_count ASC"
	}

	var articles []models.Article
	query := r.db.Scopes(publicOnly).
		Preload("Author.User").Preload("Category").
		Order(order)
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	err := query.Find(&articles).Error
	return articles, err
}

// CountPublished counts published, non-deleted articles
func (r *articleRepository) CountPublished() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Scopes(publicOnly).Count(&count).Error
	return count, err
}

// Latest retrieves the newest published articles up to limit
func (r *articleRepository) Latest(limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Scopes(publicOnly).
		Preload("Author.User").Preload("Category").
		Order("articles.created_at DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

// Search matches published articles by title, excerpt, content, category
// name or author fullname, case-insensitive substring, OR-combined.
func (r *articleRepository) Search(query string) ([]models.Article, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"

	var articles []models.Article
	err := r.db.Scopes(publicOnly).
		Preload("Author.User").Preload("Category").
		Joins("LEFT JOIN categories ON categories.id = articles.category_id").
		Joins("JOIN authors ON authors.id = articles.author_id").
		Joins("JOIN users ON users.id = authors.user_id").
		Where(
			"articles.title LIKE ? OR articles.excerpt LIKE ? OR articles.content LIKE ? OR categories.name LIKE ? OR users.fullname LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		).
		Order("articles.created_at DESC").
		Find(&articles).Error
	return articles, err
}

// ByAuthorPublished retrieves the published articles of one author
func (r *articleRepository) ByAuthorPublished(authorID uint) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Scopes(publicOnly).
		Preload("Author.User").Preload("Category").
		Where("articles.author_id = ?", authorID).
		Order("articles.created_at DESC").
		Find(&articles).Error
	return articles, err
}

// ByAuthorAll retrieves all non-deleted articles of one author, drafts included
func (r *articleRepository) ByAuthorAll(authorID uint) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Scopes(notDeleted).
		Preload("Author.User").Preload("Category").
		Where("articles.author_id = ?", authorID).
		Order("articles.created_at DESC").
		Find(&articles).Error
	return articles, err
}

// ByCategory retrieves a page of published articles in one category plus the total count
func (r *articleRepository) ByCategory(categoryID uint, offset, limit int) ([]models.Article, int64, error) {
	base := r.db.Model(&models.Article{}).Scopes(publicOnly).Where("articles.category_id = ?", categoryID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []models.Article
	err := r.db.Scopes(publicOnly).
		Preload("Author.User").Preload("Category").
		Where("articles.category_id = ?", categoryID).
		Order("articles.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, total, err
}

// IncrementViewCount bumps the view counter with a single UPDATE expression
// so concurrent readers never lose an increment.
func (r *articleRepository) IncrementViewCount(id uint) error {
	result := r.db.Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Update updates an existing article
func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

// Delete removes an article permanently
func (r *articleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Article{}, id).Error
}

// SlugExists reports whether the slug is already taken
func (r *articleRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Count counts all non-deleted articles
func (r *articleRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Scopes(notDeleted).Count(&count).Error
	return count, err
}

// TotalViews sums view_count across non-deleted articles
func (r *articleRepository) TotalViews() (int64, error) {
	var total int64
	err := r.db.Model(&models.Article{}).Scopes(notDeleted).
		Select("COALESCE(SUM(view_count), 0)").Row().Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum view counts: %w", err)
	}
	return total, nil
}

// AverageViews averages view_count across non-deleted articles
func (r *articleRepository) AverageViews() (float64, error) {
	var avg float64
	err := r.db.Model(&models.Article{}).Scopes(notDeleted).
		Select("COALESCE(AVG(view_count), 0)").Row().Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to average view counts: %w", err)
	}
	return avg, nil
}

// TopByViews retrieves the most (or least) viewed non-deleted articles
func (r *articleRepository) TopByViews(limit int, ascending bool) ([]models.Article, error) {
	order := "view_count DESC"
	if ascending {
		order = "view_count ASC"
	}

	var articles []models.Article
	err := r.db.Scopes(notDeleted).
		Preload("Author.User").Preload("Category").
		Order(order).
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

// StatsBetween aggregates non-deleted articles created inside [start, end]
func (r *articleRepository) StatsBetween(start, end time.Time) (*PeriodStats, error) {
	var stats PeriodStats

	base := r.db.Model(&models.Article{}).Scopes(notDeleted).
		Where("created_at BETWEEN ? AND ?", start, end)

	if err := base.Count(&stats.Articles).Error; err != nil {
		return nil, err
	}
	if err := base.Select("COALESCE(SUM(view_count), 0)").Row().Scan(&stats.Views); err != nil {
		return nil, fmt.Errorf("failed to sum period views: %w", err)
	}

	return &stats, nil
}

// Trending retrieves recent published articles ordered by views
func (r *articleRepository) Trending(since time.Time, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Scopes(publicOnly).
		Preload("Author.User").Preload("Category").
		Where("articles.created_at >= ?", since).
		Order("articles.view_count DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

// CreatedSince retrieves non-deleted articles created at or after the given time
func (r *articleRepository) CreatedSince(since time.Time) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Scopes(notDeleted).
		Preload("Author.User").Preload("Category").
		Where("articles.created_at >= ?", since).
		Order("articles.created_at DESC").
		Find(&articles).Error
	return articles, err
}

// AuthorPerformance aggregates article count and views per author. The
// report covers every author; there is no pagination.
func (r *articleRepository) AuthorPerformance() ([]AuthorPerformance, error) {
	var authors []models.Author
	if err := r.db.Preload("User").Find(&authors).Error; err != nil {
		return nil, err
	}

	performance := make([]AuthorPerformance, 0, len(authors))
	for _, author := range authors {
		base := r.db.Model(&models.Article{}).Scopes(notDeleted).Where("author_id = ?", author.ID)

		var articleCount int64
		if err := base.Count(&articleCount).Error; err != nil {
			return nil, fmt.Errorf("failed to count articles for author %d: %w", author.ID, err)
		}

		var totalViews int64
		if err := base.Select("COALESCE(SUM(view_count), 0)").Row().Scan(&totalViews); err != nil {
			return nil, fmt.Errorf("failed to sum views for author %d: %w", author.ID, err)
		}

		avg := 0.0
		if articleCount > 0 {
			avg = math.Round(float64(totalViews)/float64(articleCount)*100) / 100
		}

		performance = append(performance, AuthorPerformance{
			AuthorID:      author.ID,
			AuthorName:    author.User.FullName,
			TotalArticles: articleCount,
			TotalViews:    totalViews,
			AvgViews:      avg,
		})
	}

	return performance, nil
}
