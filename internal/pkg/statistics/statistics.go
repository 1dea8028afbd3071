package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/LarsBecker/StoryPress/app/models"
	"github.com/LarsBecker/StoryPress/internal/pkg/cache"
	"github.com/LarsBecker/StoryPress/internal/pkg/database"
)

const (
	CacheKeyArticlesTotal = "statistics:articles:total"
	CacheKeyArticlesDaily = "statistics:articles:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyUsersTotal    = "statistics:users:total"
	CacheKeyViewsTotal    = "statistics:views:total"
	CacheExpiration       = 30 * time.Minute
)

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached totals are older than the
// update interval.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached totals if the interval elapsed.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded to refresh.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recomputes the platform totals and stores them in
// the cache.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalArticles int64
	if err := db.Model(&models.Article{}).Where("is_deleted = ?", false).Count(&totalArticles).Error; err != nil {
		log.Printf("Error counting total articles: %v", err)
		return err
	}

	var todayArticles int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.Article{}).Where("is_deleted = ?", false).
		Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayArticles).Error; err != nil {
		log.Printf("Error counting today's articles: %v", err)
		return err
	}

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	var totalViews int64
	if err := db.Model(&models.Article{}).Where("is_deleted = ?", false).
		Select("COALESCE(SUM(view_count), 0)").Row().Scan(&totalViews); err != nil {
		log.Printf("Error summing article views: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyArticlesTotal, strconv.FormatInt(totalArticles, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total articles: %v", err)
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyArticlesDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayArticles, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's articles: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsersTotal, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total users: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyViewsTotal, strconv.FormatInt(totalViews, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total views: %v", err)
		return err
	}

	return nil
}

// GetTotalArticles returns the total number of live articles from cache,
// falling back to the database.
func GetTotalArticles() int {
	val, err := cache.Get(CacheKeyArticlesTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Article{}).Where("is_deleted = ?", false).Count(&count).Error; err != nil {
			log.Printf("Error counting total articles: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyArticlesTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total articles: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTotalUsers returns the total number of accounts from cache, falling
// back to the database.
func GetTotalUsers() int {
	val, err := cache.Get(CacheKeyUsersTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
			log.Printf("Error counting total users: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyUsersTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total users: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTotalViews returns the accumulated view count across live articles
// from cache, falling back to the database.
func GetTotalViews() int {
	val, err := cache.Get(CacheKeyViewsTotal)
	if err != nil {
		var total int64
		db := database.GetDB()
		if err := db.Model(&models.Article{}).Where("is_deleted = ?", false).
			Select("COALESCE(SUM(view_count), 0)").Row().Scan(&total); err != nil {
			log.Printf("Error summing article views: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyViewsTotal, strconv.FormatInt(total, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total views: %v", err)
		}

		return int(total)
	}

	total, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(total)
}
