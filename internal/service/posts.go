package service

import (
	"context"
	"fmt"

	"backr/internal/model"
	"backr/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title    string
	Content  string
	Teaser   string
	ImageURL string
	VideoURL string
	MinTier  int
	IsPublic bool
	Category string
	Hashtags []string
}

// GatedPost is a post as seen by a specific viewer. When locked, the full
// content and media are stripped and the teaser stands in for the body.
type GatedPost struct {
	Post   model.Post `json:"post"`
	Locked bool       `json:"locked"`
}

// PostService manages posts, their gating, and their discussion.
type PostService interface {
	Create(ctx context.Context, actor string, in PostInput) (*model.Post, error)
	Update(ctx context.Context, actor, id string, in PostInput) (*model.Post, error)
	Delete(ctx context.Context, actor, id string) error
	// GetForViewer returns one post redacted per the viewer's entitlement.
	GetForViewer(ctx context.Context, viewer, id string) (*GatedPost, error)
	// ListForViewer returns a creator's posts, each redacted per the
	// viewer's entitlement, evaluated fresh per call.
	ListForViewer(ctx context.Context, viewer, creatorAddress string) ([]GatedPost, error)
	// Feed lists public posts, optionally filtered by category.
	Feed(ctx context.Context, category string, limit int) ([]model.Post, error)
	Like(ctx context.Context, id string) error
	AddComment(ctx context.Context, actor, postID, body string) (*model.Comment, error)
	ListComments(ctx context.Context, postID string) ([]model.Comment, error)
}

type postService struct {
	repo        repository.PostRepository
	entitlement EntitlementService
	logger      zerolog.Logger
}

// NewPostService creates a new PostService.
func NewPostService(repo repository.PostRepository, entitlement EntitlementService, logger zerolog.Logger) PostService {
	return &postService{
		repo:        repo,
		entitlement: entitlement,
		logger:      logger.With().Str("service", "PostService").Logger(),
	}
}

func (s *postService) Create(ctx context.Context, actor string, in PostInput) (*model.Post, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	if in.MinTier < 0 {
		return nil, fmt.Errorf("%w: min_tier must not be negative", ErrValidation)
	}
	p := &model.Post{
		ID:             uuid.NewString(),
		CreatorAddress: model.NormalizeAddress(actor),
		Title:          in.Title,
		Content:        in.Content,
		Teaser:         in.Teaser,
		ImageURL:       in.ImageURL,
		VideoURL:       in.VideoURL,
		MinTier:        in.MinTier,
		IsPublic:       in.IsPublic || in.MinTier == 0,
		Category:       in.Category,
		Hashtags:       in.Hashtags,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, p.ID)
}

func (s *postService) Update(ctx context.Context, actor, id string, in PostInput) (*model.Post, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.SameAddress(current.CreatorAddress, actor) {
		return nil, ErrForbidden
	}
	current.Title = in.Title
	current.Content = in.Content
	current.Teaser = in.Teaser
	current.ImageURL = in.ImageURL
	current.VideoURL = in.VideoURL
	current.MinTier = in.MinTier
	current.IsPublic = in.IsPublic || in.MinTier == 0
	current.Category = in.Category
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *postService) Delete(ctx context.Context, actor, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !model.SameAddress(current.CreatorAddress, actor) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id, current.CreatorAddress)
}

func (s *postService) GetForViewer(ctx context.Context, viewer, id string) (*GatedPost, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	gp, err := s.gate(ctx, viewer, *p)
	if err != nil {
		return nil, err
	}
	return &gp, nil
}

func (s *postService) ListForViewer(ctx context.Context, viewer, creatorAddress string) ([]GatedPost, error) {
	posts, err := s.repo.ListByCreator(ctx, creatorAddress)
	if err != nil {
		return nil, err
	}
	out := make([]GatedPost, 0, len(posts))
	for _, p := range posts {
		gp, err := s.gate(ctx, viewer, p)
		if err != nil {
			return nil, err
		}
		out = append(out, gp)
	}
	return out, nil
}

// gate redacts a post for a viewer. Locked posts keep their metadata but the
// body is replaced by the teaser and media URLs are dropped.
func (s *postService) gate(ctx context.Context, viewer string, p model.Post) (GatedPost, error) {
	ok, err := s.entitlement.CanView(ctx, viewer, &p)
	if err != nil {
		return GatedPost{}, err
	}
	if ok {
		return GatedPost{Post: p}, nil
	}
	p.Content = ""
	p.ImageURL = ""
	p.VideoURL = ""
	return GatedPost{Post: p, Locked: true}, nil
}

func (s *postService) Feed(ctx context.Context, category string, limit int) ([]model.Post, error) {
	return s.repo.ListPublic(ctx, category, limit)
}

func (s *postService) Like(ctx context.Context, id string) error {
	return s.repo.IncrementLikes(ctx, id)
}

func (s *postService) AddComment(ctx context.Context, actor, postID, body string) (*model.Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: comment body required", ErrValidation)
	}
	if _, err := s.repo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	c := &model.Comment{
		ID:            uuid.NewString(),
		PostID:        postID,
		AuthorAddress: model.NormalizeAddress(actor),
		Body:          body,
	}
	if err := s.repo.InsertComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *postService) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	return s.repo.ListComments(ctx, postID)
}
