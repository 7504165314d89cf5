package services

import (
	"fmt"

	"muebleria/internal/models"
	"muebleria/internal/repositories"
)

// BlogService handles blog posts, comments and likes.
type BlogService struct {
	repo repositories.BlogRepository
}

// NewBlogService creates a new BlogService.
func NewBlogService(repo repositories.BlogRepository) *BlogService {
	return &BlogService{
		repo: repo,
	}
}

// GetPosts lists posts, optionally filtered by category.
func (s *BlogService) GetPosts(category string) ([]models.BlogPost, error) {
	if category != "" && !models.ValidBlogCategory(category) {
		return nil, fmt.Errorf("invalid blog category: %s", category)
	}
	return s.repo.GetAll(category)
}

// GetRecentPosts lists the latest posts.
func (s *BlogService) GetRecentPosts(limit int) ([]models.BlogPost, error) {
	return s.repo.GetRecent(limit)
}

// GetPost retrieves one post with comments.
func (s *BlogService) GetPost(id string) (*models.BlogPost, error) {
	return s.repo.GetByID(id)
}

// CreatePost creates a post authored by the given user.
func (s *BlogService) CreatePost(post *models.BlogPost) error {
	if post.Category == "" {
		post.Category = models.BlogCategoryBedroom
	}
	if !models.ValidBlogCategory(post.Category) {
		return fmt.Errorf("invalid blog category: %s", post.Category)
	}
	return s.repo.Create(post)
}

// AddComment attaches a comment to a post.
func (s *BlogService) AddComment(postID, userID, text string) (*models.BlogComment, error) {
	if _, err := s.repo.GetByID(postID); err != nil {
		return nil, err
	}
	comment := &models.BlogComment{
		BlogPostID: postID,
		UserID:     userID,
		Text:       text,
	}
	if err := s.repo.AddComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ToggleLike likes the post if the user has not liked it, unlikes it
// otherwise. Returns whether the post is now liked and the new like count.
func (s *BlogService) ToggleLike(postID, userID string) (bool, int64, error) {
	if _, err := s.repo.GetByID(postID); err != nil {
		return false, 0, err
	}
	liked, err := s.repo.HasLike(postID, userID)
	if err != nil {
		return false, 0, err
	}
	if liked {
		if err := s.repo.RemoveLike(postID, userID); err != nil {
			return false, 0, err
		}
	} else {
		if err := s.repo.AddLike(postID, userID); err != nil {
			return false, 0, err
		}
	}
	count, err := s.repo.CountLikes(postID)
	if err != nil {
		return false, 0, err
	}
	return !liked, count, nil
}
