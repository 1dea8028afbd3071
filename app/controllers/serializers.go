package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/LarsBecker/StoryPress/app/models"
)

// Response shaping lives here so handlers stay focused on flow control.
// Timestamps are RFC3339 in UTC across all payloads.

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func userPayload(user *models.User, hasAuthorProfile bool) fiber.Map {
	return fiber.Map{
		"id":          user.ID,
		"email":       user.Email,
		"fullname":    user.FullName,
		"is_active":   user.IsActive,
		"is_staff":    user.IsAdmin,
		"date_joined": formatTime(user.DateJoined),
		"is_author":   hasAuthorProfile,
	}
}

func adminUserPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":          user.ID,
		"email":       user.Email,
		"fullname":    user.FullName,
		"role":        user.Role(),
		"status":      user.Status(),
		"date_joined": formatTime(user.DateJoined),
	}
}

func authorPayload(author *models.Author) fiber.Map {
	payload := fiber.Map{
		"id":           author.ID,
		"user_id":      author.UserID,
		"bio":          author.Bio,
		"social_links": author.SocialLinks,
		"created_at":   formatTime(author.CreatedAt),
		"updated_at":   formatTime(author.UpdatedAt),
	}
	if author.User.ID != 0 {
		payload["fullname"] = author.User.FullName
		payload["email"] = author.User.Email
	}
	return payload
}

func articleListPayload(article *models.Article) fiber.Map {
	payload := fiber.Map{
		"id":             article.ID,
		"title":          article.Title,
		"slug":           article.Slug,
		"excerpt":        article.Excerpt,
		"featured_image": article.FeaturedImage,
		"author_id":      article.AuthorID,
		"view_count":     article.ViewCount,
		"is_published":   article.IsPublished,
		"created_at":     formatTime(article.CreatedAt),
		"updated_at":     formatTime(article.UpdatedAt),
	}
	if article.Author.ID != 0 {
		payload["author_name"] = article.Author.User.FullName
	}
	if article.Category != nil {
		payload["category"] = fiber.Map{
			"id":   article.Category.ID,
			"name": article.Category.Name,
			"slug": article.Category.Slug,
		}
	}
	return payload
}

func articleDetailPayload(article *models.Article) fiber.Map {
	payload := articleListPayload(article)
	payload["content"] = article.Content
	payload["is_deleted"] = article.IsDeleted
	return payload
}

func articleListPayloads(articles []models.Article) []fiber.Map {
	out := make([]fiber.Map, 0, len(articles))
	for i := range articles {
		out = append(out, articleListPayload(&articles[i]))
	}
	return out
}

func categoryPayload(category *models.Category) fiber.Map {
	return fiber.Map{
		"id":        category.ID,
		"name":      category.Name,
		"slug":      category.Slug,
		"icon_name": category.IconName,
		"is_active": category.IsActive,
	}
}

func commentPayload(comment *models.Comment) fiber.Map {
	payload := fiber.Map{
		"id":         comment.ID,
		"article_id": comment.ArticleID,
		"user_id":    comment.UserID,
		"parent_id":  comment.ParentID,
		"content":    comment.Content,
		"like_count": len(comment.Likes),
		"created_at": formatTime(comment.CreatedAt),
	}
	if comment.User.ID != 0 {
		payload["user_fullname"] = comment.User.FullName
	}

	replies := make([]fiber.Map, 0, len(comment.Replies))
	for i := range comment.Replies {
		replies = append(replies, commentPayload(&comment.Replies[i]))
	}
	payload["replies"] = replies

	return payload
}

func bookmarkPayload(bookmark *models.Bookmark) fiber.Map {
	payload := fiber.Map{
		"id":         bookmark.ID,
		"user_id":    bookmark.UserID,
		"article_id": bookmark.ArticleID,
		"created_at": formatTime(bookmark.CreatedAt),
	}
	if bookmark.Article.ID != 0 {
		payload["article"] = articleListPayload(&bookmark.Article)
	}
	return payload
}
