package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/seralva/algorealm/internal/errors"
	"github.com/seralva/algorealm/internal/game"
	"github.com/seralva/algorealm/internal/ledger"
	"github.com/seralva/algorealm/internal/ownership"
)

// unavailableItemName labels placeholder entries for holdings whose asset
// details could not be fetched.
const unavailableItemName = "Unknown Item"

// ListGameItems returns the active account's game item inventory. Asset
// details are fetched with bounded concurrency; one asset's failure never
// hides the rest. A holding whose asset was destroyed is skipped, while any
// other detail failure yields an Unavailable placeholder so the player still
// sees that something is held.
func (s *Service) ListGameItems(ctx context.Context) ([]game.GameItem, error) {
	acct, err := s.ledger.AccountInfo(ctx, s.account)
	if err != nil {
		return nil, err
	}

	items := make([]*game.GameItem, len(acct.Holdings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.detailConcurrency)
	for i, holding := range acct.Holdings {
		g.Go(func() error {
			items[i] = s.describeHolding(gctx, holding)
			return nil
		})
	}
	// Goroutines isolate their own failures, so Wait only fails on a
	// cancelled context.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]game.GameItem, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out, nil
}

// describeHolding resolves one holding into an inventory entry, or nil when
// the holding is not a game item.
func (s *Service) describeHolding(ctx context.Context, holding ledger.AssetHolding) *game.GameItem {
	asset, err := s.ledger.AssetInfo(ctx, holding.AssetID)
	if err != nil {
		if errors.IsCode(err, errors.CodeNotFound) {
			// Destroyed asset; nothing to show.
			return nil
		}
		if holding.Amount == 0 {
			return nil
		}
		return &game.GameItem{
			AssetID:     holding.AssetID,
			Name:        unavailableItemName,
			Amount:      holding.Amount,
			Frozen:      holding.Frozen,
			Unavailable: true,
		}
	}

	res := ownership.Resolve(asset, s.account, s.deployment.AppAddress)
	if holding.Amount == 0 || !res.IsGameItem {
		return nil
	}
	return &game.GameItem{
		AssetID:    asset.AssetID,
		Name:       asset.Name,
		UnitName:   asset.UnitName,
		Amount:     holding.Amount,
		Total:      asset.Total,
		Decimals:   asset.Decimals,
		Creator:    asset.Creator,
		Manager:    asset.Manager,
		Reserve:    asset.Reserve,
		Freeze:     asset.Freeze,
		Clawback:   asset.Clawback,
		Frozen:     holding.Frozen,
		URL:        asset.URL,
		IsGameItem: true,
		Owner:      res.Owner,
		OwnerKnown: res.OwnerKnown,
		IsOwner:    res.IsOwner,
	}
}

// OwnershipSummary describes who an asset is registered to, for display.
// It degrades to a fixed message rather than failing; ownership display is
// informational and must not break inventory views.
func (s *Service) OwnershipSummary(ctx context.Context, assetID uint64) string {
	asset, err := s.ledger.AssetInfo(ctx, assetID)
	if err != nil {
		return "Ownership information unavailable"
	}
	if owner, ok := ownership.ExtractOwner(asset.URL, asset.Name); ok {
		return fmt.Sprintf("Registered to %s", owner)
	}
	return "No embedded ownership metadata; this may be an item from before ownership tracking"
}

// ItemExists reports whether the asset still exists on the ledger. A
// destroyed or never-created asset is not an error.
func (s *Service) ItemExists(ctx context.Context, assetID uint64) (bool, error) {
	if _, err := s.ledger.AssetInfo(ctx, assetID); err != nil {
		if errors.IsCode(err, errors.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
