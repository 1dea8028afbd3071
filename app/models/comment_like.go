package models

// CommentLike is the join row behind the comment likers set. The composite
// primary key keeps a (comment, user) pair unique, which is what makes the
// like toggle an involution.
type CommentLike struct {
	CommentID uint `gorm:"primaryKey" json:"comment_id"`
	UserID    uint `gorm:"primaryKey" json:"user_id"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
