package repositories

import (
	"fmt"
	"muebleria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogRepository defines the interface for blog data access.
type BlogRepository interface {
	GetAll(category string) ([]models.BlogPost, error)
	GetRecent(limit int) ([]models.BlogPost, error)
	GetByID(id string) (*models.BlogPost, error)
	Create(post *models.BlogPost) error
	AddComment(comment *models.BlogComment) error
	HasLike(postID, userID string) (bool, error)
	AddLike(postID, userID string) error
	RemoveLike(postID, userID string) error
	CountLikes(postID string) (int64, error)
}

// GORMBlogRepository is a GORM implementation of BlogRepository.
type GORMBlogRepository struct {
	db *gorm.DB
}

// NewGORMBlogRepository creates a new instance of GORMBlogRepository.
func NewGORMBlogRepository(db *gorm.DB) *GORMBlogRepository {
	return &GORMBlogRepository{
		db: db,
	}
}

// GetAll retrieves posts, newest first, optionally filtered by category.
func (r *GORMBlogRepository) GetAll(category string) ([]models.BlogPost, error) {
	query := r.db.Preload("Author").Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var posts []models.BlogPost
	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to get blog posts: %w", err)
	}
	return posts, nil
}

// GetRecent retrieves the latest posts.
func (r *GORMBlogRepository) GetRecent(limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.Order("created_at DESC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blog posts: %w", err)
	}
	return posts, nil
}

// GetByID retrieves a post with its author and comments.
func (r *GORMBlogRepository) GetByID(id string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").Preload("Comments.User").First(&post, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("blog post with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get blog post by ID %s: %w", id, err)
	}
	return &post, nil
}

// Create creates a new blog post.
func (r *GORMBlogRepository) Create(post *models.BlogPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	return nil
}

// AddComment attaches a comment to a post.
func (r *GORMBlogRepository) AddComment(comment *models.BlogComment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// HasLike reports whether the user already liked the post.
func (r *GORMBlogRepository) HasLike(postID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlogLike{}).
		Where("blog_post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return count > 0, nil
}

// AddLike records a like.
func (r *GORMBlogRepository) AddLike(postID, userID string) error {
	like := models.BlogLike{ID: uuid.New().String(), BlogPostID: postID, UserID: userID}
	if err := r.db.Create(&like).Error; err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

// RemoveLike deletes a like.
func (r *GORMBlogRepository) RemoveLike(postID, userID string) error {
	err := r.db.Delete(&models.BlogLike{}, "blog_post_id = ? AND user_id = ?", postID, userID).Error
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

// CountLikes counts a post's likes.
func (r *GORMBlogRepository) CountLikes(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogLike{}).Where("blog_post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
