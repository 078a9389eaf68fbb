package dto

import (
	"time"

	"backr/internal/model"
	"backr/internal/service"
)

// PostCreateDTO is used for incoming post creation and update requests.
type PostCreateDTO struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content,omitempty"`
	Teaser   string   `json:"teaser,omitempty"`
	ImageURL string   `json:"image_url,omitempty" validate:"omitempty,url"`
	VideoURL string   `json:"video_url,omitempty" validate:"omitempty,url"`
	MinTier  int      `json:"min_tier" validate:"gte=0"`
	IsPublic bool     `json:"is_public"`
	Category string   `json:"category,omitempty"`
	Hashtags []string `json:"hashtags,omitempty"`
}

// PostResponseDTO is returned in API responses for posts. For locked posts
// Content is empty and Teaser stands in for the body.
type PostResponseDTO struct {
	ID             string    `json:"id"`
	CreatorAddress string    `json:"creator_address"`
	Title          string    `json:"title"`
	Content        string    `json:"content,omitempty"`
	Teaser         string    `json:"teaser,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	VideoURL       string    `json:"video_url,omitempty"`
	MinTier        int       `json:"min_tier"`
	IsPublic       bool      `json:"is_public"`
	Likes          int       `json:"likes"`
	Category       string    `json:"category,omitempty"`
	Locked         bool      `json:"locked"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewPostResponse maps an ungated post (feed, own posts).
func NewPostResponse(p *model.Post) PostResponseDTO {
	return PostResponseDTO{
		ID:             p.ID,
		CreatorAddress: p.CreatorAddress,
		Title:          p.Title,
		Content:        p.Content,
		Teaser:         p.Teaser,
		ImageURL:       p.ImageURL,
		VideoURL:       p.VideoURL,
		MinTier:        p.MinTier,
		IsPublic:       p.IsPublic,
		Likes:          p.Likes,
		Category:       p.Category,
		CreatedAt:      p.CreatedAt,
	}
}

// NewGatedPostResponse maps a viewer-specific gated post.
func NewGatedPostResponse(gp *service.GatedPost) PostResponseDTO {
	resp := NewPostResponse(&gp.Post)
	resp.Locked = gp.Locked
	return resp
}

// NewGatedPostListResponse maps a gated post list.
func NewGatedPostListResponse(gps []service.GatedPost) []PostResponseDTO {
	out := make([]PostResponseDTO, 0, len(gps))
	for i := range gps {
		out = append(out, NewGatedPostResponse(&gps[i]))
	}
	return out
}

// CommentCreateDTO is used for incoming comments.
type CommentCreateDTO struct {
	Body string `json:"body" validate:"required,max=2000"`
}

// CommentResponseDTO is returned in API responses for comments.
type CommentResponseDTO struct {
	ID            string    `json:"id"`
	PostID        string    `json:"post_id"`
	AuthorAddress string    `json:"author_address"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewCommentResponse maps a model row to its response shape.
func NewCommentResponse(c *model.Comment) CommentResponseDTO {
	return CommentResponseDTO{
		ID:            c.ID,
		PostID:        c.PostID,
		AuthorAddress: c.AuthorAddress,
		Body:          c.Body,
		CreatedAt:     c.CreatedAt,
	}
}
