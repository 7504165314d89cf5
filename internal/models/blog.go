package models

import "time"

// Blog post categories.
const (
	BlogCategoryBedroom    = "recamara"
	BlogCategoryLivingRoom = "sala"
	BlogCategoryDiningRoom = "comedor"
	BlogCategoryBathroom   = "bano"
)

// ValidBlogCategory reports whether c is a known blog category.
func ValidBlogCategory(c string) bool {
	switch c {
	case BlogCategoryBedroom, BlogCategoryLivingRoom, BlogCategoryDiningRoom, BlogCategoryBathroom:
		return true
	}
	return false
}

// BlogPost is an article written by a user.
type BlogPost struct {
	ID        string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string        `json:"title" gorm:"type:varchar(200)" validate:"required,max=200"`
	Content   string        `json:"content" validate:"required"`
	AuthorID  string        `json:"author_id" gorm:"index;type:varchar(36)"`
	Author    *User         `json:"author,omitempty"`
	Category  string        `json:"category" gorm:"index;type:varchar(30);default:recamara"`
	Image     string        `json:"image" gorm:"type:varchar(255)"`
	Comments  []BlogComment `json:"comments,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Likes     []BlogLike    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `json:"created_at" gorm:"index"`
}

// BlogComment is a user comment on a post.
type BlogComment struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BlogPostID string    `json:"blog_post_id" gorm:"index;type:varchar(36)"`
	UserID     string    `json:"user_id" gorm:"type:varchar(36)"`
	User       *User     `json:"user,omitempty"`
	Text       string    `json:"text" validate:"required"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// BlogLike marks that a user liked a post. One like per user per post.
type BlogLike struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BlogPostID string    `json:"blog_post_id" gorm:"type:varchar(36);uniqueIndex:idx_blog_like"`
	UserID     string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_blog_like"`
	CreatedAt  time.Time `json:"created_at"`
}
