package service

import (
	"context"
	"errors"
	"fmt"

	"backr/internal/model"
	"backr/internal/repository"

	"github.com/rs/zerolog"
)

// ProfileInput carries the editable fields of a creator profile.
type ProfileInput struct {
	Name            string
	Bio             string
	Username        string
	AvatarURL       string
	CoverURL        string
	ContractAddress string
}

// CreatorService manages creator profiles. A profile is created on first
// save and only ever written by its own wallet.
type CreatorService interface {
	Save(ctx context.Context, actor string, in ProfileInput) (*model.Creator, error)
	GetByAddress(ctx context.Context, address string) (*model.Creator, error)
	GetByUsername(ctx context.Context, username string) (*model.Creator, error)
}

type creatorService struct {
	repo   repository.CreatorRepository
	logger zerolog.Logger
}

// NewCreatorService creates a new CreatorService.
func NewCreatorService(repo repository.CreatorRepository, logger zerolog.Logger) CreatorService {
	return &creatorService{repo: repo, logger: logger.With().Str("service", "CreatorService").Logger()}
}

func (s *creatorService) Save(ctx context.Context, actor string, in ProfileInput) (*model.Creator, error) {
	address := model.NormalizeAddress(actor)
	if address == "" {
		return nil, fmt.Errorf("%w: address required", ErrValidation)
	}
	if in.Username != "" {
		owner, err := s.repo.GetByUsername(ctx, in.Username)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if owner != nil && !model.SameAddress(owner.Address, address) {
			return nil, ErrUsernameTaken
		}
	}
	c := &model.Creator{
		Address:         address,
		Name:            in.Name,
		Bio:             in.Bio,
		Username:        in.Username,
		AvatarURL:       in.AvatarURL,
		CoverURL:        in.CoverURL,
		ContractAddress: in.ContractAddress,
	}
	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return s.repo.GetByAddress(ctx, address)
}

func (s *creatorService) GetByAddress(ctx context.Context, address string) (*model.Creator, error) {
	return s.repo.GetByAddress(ctx, address)
}

func (s *creatorService) GetByUsername(ctx context.Context, username string) (*model.Creator, error) {
	return s.repo.GetByUsername(ctx, username)
}
