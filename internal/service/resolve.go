package service

import (
	"strconv"

	"backr/internal/model"
)

// Tier identifiers have historically been written three ways: the tier's
// UUID, a zero-based index into the creator's tier list, or a denormalized
// tier name stored on the membership row itself. Resolution tries each
// strategy in that order. Each strategy is a pure function of its inputs, so
// repeated resolution against an unchanged list always yields the same tier.

func resolveByID(tierID string, tiers []model.Tier) (*model.Tier, bool) {
	for i := range tiers {
		if tiers[i].ID == tierID {
			return &tiers[i], true
		}
	}
	return nil, false
}

func resolveByIndex(tierID string, tiers []model.Tier) (*model.Tier, bool) {
	idx, err := strconv.Atoi(tierID)
	if err != nil || idx < 0 || idx >= len(tiers) {
		return nil, false
	}
	return &tiers[idx], true
}

func resolveByName(tierName string, tiers []model.Tier) (*model.Tier, bool) {
	if tierName == "" {
		return nil, false
	}
	for i := range tiers {
		if tiers[i].Name == tierName {
			return &tiers[i], true
		}
	}
	return nil, false
}

// ResolveTier maps a membership row onto the creator's current catalog.
// A row that resolves through none of the strategies contributes nothing to
// revenue; it never fails the caller.
func ResolveTier(tierID, tierName string, tiers []model.Tier) (*model.Tier, bool) {
	if t, ok := resolveByID(tierID, tiers); ok {
		return t, true
	}
	if t, ok := resolveByIndex(tierID, tiers); ok {
		return t, true
	}
	return resolveByName(tierName, tiers)
}
