package service

import (
	"context"
	"fmt"

	"backr/internal/model"
	"backr/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TierInput carries the mutable fields of a tier.
type TierInput struct {
	Name     string
	Price    float64
	Perks    []string
	ImageURL string
}

// TierService manages a creator's tier catalog. All mutations are targeted
// single-row statements; Reorder is the one whole-list operation and runs in
// a transaction.
type TierService interface {
	Create(ctx context.Context, actor string, in TierInput) (*model.Tier, error)
	Update(ctx context.Context, actor, id string, in TierInput) (*model.Tier, error)
	Delete(ctx context.Context, actor, id string) error
	ListByCreator(ctx context.Context, creatorAddress string) ([]model.Tier, error)
	Reorder(ctx context.Context, actor string, orderedIDs []string) ([]model.Tier, error)
}

type tierService struct {
	repo   repository.TierRepository
	logger zerolog.Logger
}

// NewTierService creates a new TierService.
func NewTierService(repo repository.TierRepository, logger zerolog.Logger) TierService {
	return &tierService{repo: repo, logger: logger.With().Str("service", "TierService").Logger()}
}

func (s *tierService) Create(ctx context.Context, actor string, in TierInput) (*model.Tier, error) {
	if err := validateTierInput(in); err != nil {
		return nil, err
	}
	creator := model.NormalizeAddress(actor)
	existing, err := s.repo.ListByCreator(ctx, creator)
	if err != nil {
		return nil, err
	}
	t := &model.Tier{
		ID:             uuid.NewString(),
		CreatorAddress: creator,
		Name:           in.Name,
		Price:          in.Price,
		Perks:          in.Perks,
		ImageURL:       in.ImageURL,
		Position:       len(existing),
	}
	if t.Perks == nil {
		t.Perks = []string{}
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info().Str("creator", creator).Str("tier", t.ID).Msg("tier created")
	return t, nil
}

func (s *tierService) Update(ctx context.Context, actor, id string, in TierInput) (*model.Tier, error) {
	if err := validateTierInput(in); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.SameAddress(current.CreatorAddress, actor) {
		return nil, ErrForbidden
	}
	current.Name = in.Name
	current.Price = in.Price
	current.Perks = in.Perks
	if current.Perks == nil {
		current.Perks = []string{}
	}
	current.ImageURL = in.ImageURL
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *tierService) Delete(ctx context.Context, actor, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !model.SameAddress(current.CreatorAddress, actor) {
		return ErrForbidden
	}
	// Deleting a tier never invalidates memberships already issued against
	// it; entitlement is anchored to the membership row.
	return s.repo.Delete(ctx, id, current.CreatorAddress)
}

func (s *tierService) ListByCreator(ctx context.Context, creatorAddress string) ([]model.Tier, error) {
	return s.repo.ListByCreator(ctx, creatorAddress)
}

// Reorder rewrites the catalog in the given id order, keeping every tier's
// identity and fields.
func (s *tierService) Reorder(ctx context.Context, actor string, orderedIDs []string) ([]model.Tier, error) {
	creator := model.NormalizeAddress(actor)
	current, err := s.repo.ListByCreator(ctx, creator)
	if err != nil {
		return nil, err
	}
	if len(orderedIDs) != len(current) {
		return nil, fmt.Errorf("%w: reorder must list all %d tiers", ErrValidation, len(current))
	}
	byID := make(map[string]model.Tier, len(current))
	for _, t := range current {
		byID[t.ID] = t
	}
	reordered := make([]model.Tier, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		t, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown tier id %s", ErrValidation, id)
		}
		t.Position = len(reordered)
		reordered = append(reordered, t)
	}
	if err := s.repo.ReplaceAll(ctx, creator, reordered); err != nil {
		return nil, err
	}
	return reordered, nil
}

func validateTierInput(in TierInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: tier name required", ErrValidation)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: tier price must be positive", ErrValidation)
	}
	return nil
}
