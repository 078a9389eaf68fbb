package model

import "time"

// Post belongs to one creator. MinTier 0 (or IsPublic) means the full content
// is visible to everyone; anything else gates the content behind an active
// membership to the creator.
type Post struct {
	ID             string    `json:"id"`
	CreatorAddress string    `json:"creator_address"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Teaser         string    `json:"teaser,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	VideoURL       string    `json:"video_url,omitempty"`
	MinTier        int       `json:"min_tier"`
	IsPublic       bool      `json:"is_public"`
	Likes          int       `json:"likes"`
	Category       string    `json:"category,omitempty"`
	Hashtags       []string  `json:"hashtags,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Public reports whether the post is readable without any membership. The
// flag and the tier rank are stored independently; either one marking the
// post open makes it open, so the redundant fields can never disagree in the
// restrictive direction.
func (p *Post) Public() bool {
	return p.IsPublic || p.MinTier == 0
}

// Comment is a discussion entry under a post.
type Comment struct {
	ID            string    `json:"id"`
	PostID        string    `json:"post_id"`
	AuthorAddress string    `json:"author_address"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
}
