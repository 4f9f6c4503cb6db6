package contract

import (
	"context"
	"fmt"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/seralva/algorealm/internal/errors"
	"github.com/seralva/algorealm/internal/game"
)

// CreateItemParams are the arguments for create_game_item.
type CreateItemParams struct {
	Recipient     string
	ItemName      string
	ItemType      string
	Rarity        string
	AttackPower   uint64
	DefensePower  uint64
	SpecialEffect string
}

func invalidArgument(format string, args ...interface{}) error {
	return errors.New(errors.CodeInvalidArgument, fmt.Sprintf(format, args...))
}

func validateAddress(label, address string) error {
	if _, err := types.DecodeAddress(strings.TrimSpace(address)); err != nil {
		return invalidArgument("%s %q is not a well-formed address", label, address)
	}
	return nil
}

// OptInRegister opts the sender in to the application through the
// register_player method. The ledger requires opt-in before the contract
// can hold per-player state.
func (c *Client) OptInRegister(ctx context.Context, playerName string) (CallResult, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return CallResult{}, invalidArgument("player name is required")
	}
	return c.call(ctx, c.methods.registerPlayer, types.OptInOC, []interface{}{playerName})
}

// Register registers the sender as a player. The account must already be
// opted in.
func (c *Client) Register(ctx context.Context, playerName string) (CallResult, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return CallResult{}, invalidArgument("player name is required")
	}
	return c.call(ctx, c.methods.registerPlayer, types.NoOpOC, []interface{}{playerName})
}

// CreateGameItem mints a new game item for a registered recipient. The
// contract restricts this to the game master.
func (c *Client) CreateGameItem(ctx context.Context, p CreateItemParams) (CallResult, error) {
	if err := validateAddress("recipient", p.Recipient); err != nil {
		return CallResult{}, err
	}
	if strings.TrimSpace(p.ItemName) == "" {
		return CallResult{}, invalidArgument("item name is required")
	}
	if strings.TrimSpace(p.ItemType) == "" {
		return CallResult{}, invalidArgument("item type is required")
	}
	if strings.TrimSpace(p.Rarity) == "" {
		return CallResult{}, invalidArgument("rarity is required")
	}
	return c.call(ctx, c.methods.createGameItem, types.NoOpOC, []interface{}{
		strings.TrimSpace(p.Recipient),
		p.ItemName,
		p.ItemType,
		p.Rarity,
		p.AttackPower,
		p.DefensePower,
		p.SpecialEffect,
	})
}

// RecoverLostItem reissues a lost item. The proof is the opaque recovery
// quest credential, validated by the contract, opaque here.
func (c *Client) RecoverLostItem(ctx context.Context, originalItemID uint64, proof []byte, newRecipient string) (CallResult, error) {
	if originalItemID == 0 {
		return CallResult{}, invalidArgument("original item id is required")
	}
	if len(proof) == 0 {
		return CallResult{}, invalidArgument("recovery quest proof is required")
	}
	if err := validateAddress("new recipient", newRecipient); err != nil {
		return CallResult{}, err
	}
	return c.call(ctx, c.methods.recoverLostItem, types.NoOpOC, []interface{}{
		originalItemID,
		proof,
		strings.TrimSpace(newRecipient),
	})
}

// SeasonalEventReissue reissues a previous-season item for event
// participation.
func (c *Client) SeasonalEventReissue(ctx context.Context, eventName string, proof []byte, recipient string) (CallResult, error) {
	if strings.TrimSpace(eventName) == "" {
		return CallResult{}, invalidArgument("event name is required")
	}
	if len(proof) == 0 {
		return CallResult{}, invalidArgument("participation proof is required")
	}
	if err := validateAddress("recipient", recipient); err != nil {
		return CallResult{}, err
	}
	return c.call(ctx, c.methods.seasonalEventReissue, types.NoOpOC, []interface{}{
		eventName,
		proof,
		strings.TrimSpace(recipient),
	})
}

// CraftItems combines two material assets per a recipe.
func (c *Client) CraftItems(ctx context.Context, material1, material2, recipeID uint64) (CallResult, error) {
	if material1 == 0 || material2 == 0 {
		return CallResult{}, invalidArgument("both material asset ids are required")
	}
	if recipeID == 0 {
		return CallResult{}, invalidArgument("recipe id is required")
	}
	return c.call(ctx, c.methods.craftItems, types.NoOpOC, []interface{}{
		material1,
		material2,
		recipeID,
	})
}

// AdvanceSeason advances the game to the next season. The contract
// restricts this to the game master.
func (c *Client) AdvanceSeason(ctx context.Context) (CallResult, error) {
	return c.call(ctx, c.methods.advanceSeason, types.NoOpOC, nil)
}

// ClaimItem transfers a minted item to the sender. The sender must have
// opted in to the asset first.
func (c *Client) ClaimItem(ctx context.Context, itemID uint64) (CallResult, error) {
	if itemID == 0 {
		return CallResult{}, invalidArgument("item id is required")
	}
	return c.call(ctx, c.methods.claimItem, types.NoOpOC, []interface{}{itemID})
}

// GetPlayerStats reads the stats tuple for a registered player through the
// contract's readonly method. The contract rejects unregistered players.
func (c *Client) GetPlayerStats(ctx context.Context, player string) (game.PlayerStats, error) {
	if err := validateAddress("player", player); err != nil {
		return game.PlayerStats{}, err
	}
	res, err := c.call(ctx, c.methods.getPlayerStats, types.NoOpOC, []interface{}{strings.TrimSpace(player)})
	if err != nil {
		return game.PlayerStats{}, err
	}
	tuple, err := res.Uint64Tuple(3)
	if err != nil {
		return game.PlayerStats{}, err
	}
	return game.PlayerStats{Level: tuple[0], Experience: tuple[1], RecoveryCount: tuple[2]}, nil
}

// GetGameInfo reads the aggregate counter tuple through the contract's
// readonly method. Always a fresh read.
func (c *Client) GetGameInfo(ctx context.Context) (game.GameInfo, error) {
	res, err := c.call(ctx, c.methods.getGameInfo, types.NoOpOC, nil)
	if err != nil {
		return game.GameInfo{}, err
	}
	tuple, err := res.Uint64Tuple(3)
	if err != nil {
		return game.GameInfo{}, err
	}
	return game.GameInfo{TotalPlayers: tuple[0], TotalItems: tuple[1], CurrentSeason: tuple[2]}, nil
}

// GetRecoveryStatus reads a player's recovery usage against the contract
// cap.
func (c *Client) GetRecoveryStatus(ctx context.Context, player string) (game.RecoveryStatus, error) {
	if err := validateAddress("player", player); err != nil {
		return game.RecoveryStatus{}, err
	}
	res, err := c.call(ctx, c.methods.getRecoveryStatus, types.NoOpOC, []interface{}{strings.TrimSpace(player)})
	if err != nil {
		return game.RecoveryStatus{}, err
	}
	tuple, err := res.Uint64Tuple(2)
	if err != nil {
		return game.RecoveryStatus{}, err
	}
	return game.RecoveryStatus{Used: tuple[0], Max: tuple[1]}, nil
}
