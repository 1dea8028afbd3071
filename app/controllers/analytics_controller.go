package controllers

import (
	"fmt"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/LarsBecker/StoryPress/app/repository"
	"github.com/LarsBecker/StoryPress/internal/pkg/statistics"
)

// HandleViewAnalytics reports all-time view KPIs plus a bucketed series
// for the requested time range (daily, weekly, monthly).
func HandleViewAnalytics(c *fiber.Ctx) error {
	timeRange := c.Query("time_range", statistics.RangeMonthly)
	switch timeRange {
	case statistics.RangeDaily, statistics.RangeWeekly, statistics.RangeMonthly:
	default:
		timeRange = statistics.RangeMonthly
	}

	articleRepo := repository.GetGlobalFactory().GetArticleRepository()

	totalViews, err := articleRepo.TotalViews()
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving analytics", fiber.Map{"detail": err.Error()})
	}
	avgViews, err := articleRepo.AverageViews()
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving analytics", fiber.Map{"detail": err.Error()})
	}

	mostViewed, err := articleRepo.TopByViews(5, false)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving analytics", fiber.Map{"detail": err.Error()})
	}
	leastViewed, err := articleRepo.TopByViews(5, true)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving analytics", fiber.Map{"detail": err.Error()})
	}

	now := time.Now()

	var windows []statistics.Window
	switch timeRange {
	case statistics.RangeDaily:
		windows = statistics.DailyWindows(now)
	case statistics.RangeWeekly:
		windows = statistics.WeeklyWindows(now)
	default:
		windows = statistics.MonthlyWindows(now)
	}

	chartData := make([]fiber.Map, 0, len(windows))
	for i, window := range windows {
		stats, err := articleRepo.StatsBetween(window.Start, window.End)
		if err != nil {
			return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving analytics", fiber.Map{"detail": err.Error()})
		}

		point := fiber.Map{
			"views":    stats.Views,
			"articles": stats.Articles,
		}
		switch timeRange {
		case statistics.RangeDaily:
			point["date"] = window.Start.Format("2006-01-02")
			point["day"] = window.Start.Format("Mon")
			point["label"] = window.Start.Format("Mon")
		case statistics.RangeWeekly:
			point["week_number"] = i + 1
			point["label"] = fmt.Sprintf("Week %d", i+1)
			point["start_date"] = window.Start.Format("2006-01-02")
			point["end_date"] = window.End.Format("2006-01-02")
		default:
			point["month"] = window.Start.Format("2006-01")
			point["label"] = window.Start.Format("Jan")
			point["month_name"] = window.Start.Format("January")
			point["year"] = window.Start.Year()
		}
		chartData = append(chartData, point)
	}

	periodStart, periodEnd := statistics.PeriodBounds(timeRange, now)
	periodStats, err := articleRepo.StatsBetween(periodStart, periodEnd)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving analytics", fiber.Map{"detail": err.Error()})
	}

	periodAvg := 0.0
	if periodStats.Articles > 0 {
		periodAvg = math.Round(float64(periodStats.Views)/float64(periodStats.Articles)*100) / 100
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"total_views":   totalViews,
		"average_views": math.Round(avgViews*100) / 100,
		"most_viewed":   articleListPayloads(mostViewed),
		"least_viewed":  articleListPayloads(leastViewed),
		"chart_data":    chartData,
		"time_range_kpis": fiber.Map{
			"total_views_in_period":        periodStats.Views,
			"avg_views_in_period":          periodAvg,
			"articles_published_in_period": periodStats.Articles,
			"period_start":                 formatTime(periodStart),
			"period_end":                   formatTime(periodEnd),
		},
		"time_range": timeRange,
	}, "Analytics retrieved successfully")
}

// HandleTrendingArticles returns the most viewed published articles from
// the last 7 days, capped at 10.
func HandleTrendingArticles(c *fiber.Ctx) error {
	weekAgo := time.Now().AddDate(0, 0, -7)

	articles, err := repository.GetGlobalFactory().GetArticleRepository().Trending(weekAgo, 10)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving trending articles", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, articleListPayloads(articles), "Trending articles retrieved successfully")
}

// HandleRecentActivity returns articles created in the last 48 hours,
// drafts included.
func HandleRecentActivity(c *fiber.Ctx) error {
	since := time.Now().Add(-48 * time.Hour)

	articles, err := repository.GetGlobalFactory().GetArticleRepository().CreatedSince(since)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving recent activity", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, articleListPayloads(articles), "Recent activity retrieved successfully")
}

// HandleAuthorPerformance reports per-author article and view aggregates.
func HandleAuthorPerformance(c *fiber.Ctx) error {
	performance, err := repository.GetGlobalFactory().GetArticleRepository().AuthorPerformance()
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving author performance", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, performance, "Author performance retrieved successfully")
}

// HandlePlatformStats serves the cached platform totals used by the public
// landing page.
func HandlePlatformStats(c *fiber.Ctx) error {
	statistics.UpdateCacheIfNeeded()

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"total_articles": statistics.GetTotalArticles(),
		"total_users":    statistics.GetTotalUsers(),
		"total_views":    statistics.GetTotalViews(),
	}, "Platform stats retrieved successfully")
}
