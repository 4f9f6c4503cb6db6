package contract

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/seralva/algorealm/internal/errors"
	"github.com/seralva/algorealm/internal/game"
)

// Contract state keys. Fixed by the deployed contract.
const (
	globalTotalPlayers  = "total_players"
	globalTotalItems    = "total_items_created"
	globalGameMaster    = "game_master"
	globalCurrentSeason = "current_season"

	localPlayerLevel      = "player_level"
	localPlayerExperience = "player_experience"
	localRecoveryCount    = "player_recovery_count"
	localIsRegistered     = "is_registered"
)

// TEAL value types as reported by the node.
const (
	tealTypeBytes = 1
	tealTypeUint  = 2
)

// stateMap indexes decoded key/value pairs by their plain-text key.
type stateMap map[string]models.TealValue

func decodeState(entries []models.TealKeyValue) stateMap {
	out := make(stateMap, len(entries))
	for _, entry := range entries {
		key, err := base64.StdEncoding.DecodeString(entry.Key)
		if err != nil {
			continue
		}
		out[string(key)] = entry.Value
	}
	return out
}

func (m stateMap) uint(key string) (uint64, bool) {
	v, ok := m[key]
	if !ok || v.Type != tealTypeUint {
		return 0, false
	}
	return v.Uint, true
}

func (m stateMap) address(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v.Type != tealTypeBytes {
		return "", false
	}
	raw, err := base64.StdEncoding.DecodeString(v.Bytes)
	if err != nil || len(raw) != len(types.Address{}) {
		return "", false
	}
	var addr types.Address
	copy(addr[:], raw)
	return addr.String(), true
}

// globalState fetches the application's global key/value state.
func (c *Client) globalState(ctx context.Context) (stateMap, error) {
	app, err := c.algod.GetApplicationByID(c.appID).Do(ctx)
	if err != nil {
		return nil, classifyStateRead("application state", err)
	}
	return decodeState(app.Params.GlobalState), nil
}

// localState fetches the per-player key/value state for address. A nil map
// with no error means the account has not opted in.
func (c *Client) localState(ctx context.Context, address string) (stateMap, error) {
	info, err := c.algod.AccountApplicationInformation(address, c.appID).Do(ctx)
	if err != nil {
		return nil, classifyStateRead("account application state", err)
	}
	return localStateMap(info.AppLocalState), nil
}

// localStateMap distinguishes "not opted in" from decoded state. The node
// reports local state as an empty record rather than omitting it, so the
// absence of a key/value block is the opt-in signal.
func localStateMap(state models.ApplicationLocalState) stateMap {
	if state.KeyValue == nil {
		return nil
	}
	return decodeState(state.KeyValue)
}

// classifyStateRead mirrors the ledger adapter's read classification: state
// reads are pure reads against the node, not submissions.
func classifyStateRead(operation string, err error) error {
	msg := err.Error()
	lowered := strings.ToLower(msg)
	if strings.Contains(lowered, "404") || strings.Contains(lowered, "not found") || strings.Contains(lowered, "does not exist") {
		return errors.Wrap(errors.CodeNotFound, operation+": not found", err)
	}
	return errors.Wrap(errors.CodeLedgerUnavailable, operation+": "+msg, err)
}

// TotalPlayers reads the global player counter.
func (c *Client) TotalPlayers(ctx context.Context) (uint64, error) {
	state, err := c.globalState(ctx)
	if err != nil {
		return 0, err
	}
	v, _ := state.uint(globalTotalPlayers)
	return v, nil
}

// TotalItemsCreated reads the global item counter.
func (c *Client) TotalItemsCreated(ctx context.Context) (uint64, error) {
	state, err := c.globalState(ctx)
	if err != nil {
		return 0, err
	}
	v, _ := state.uint(globalTotalItems)
	return v, nil
}

// CurrentSeason reads the global season counter.
func (c *Client) CurrentSeason(ctx context.Context) (uint64, error) {
	state, err := c.globalState(ctx)
	if err != nil {
		return 0, err
	}
	v, _ := state.uint(globalCurrentSeason)
	return v, nil
}

// GameMasterAddress reads the configured game master from global state.
func (c *Client) GameMasterAddress(ctx context.Context) (string, error) {
	state, err := c.globalState(ctx)
	if err != nil {
		return "", err
	}
	addr, ok := state.address(globalGameMaster)
	if !ok {
		return "", errors.New(errors.CodeNotFound, "game master is not set in application state")
	}
	return addr, nil
}

// IsRegistered reports whether address is a registered player. An account
// that never opted in is simply not registered; that is not an error.
func (c *Client) IsRegistered(ctx context.Context, address string) (bool, error) {
	if err := validateAddress("player", address); err != nil {
		return false, err
	}
	state, err := c.localState(ctx, strings.TrimSpace(address))
	if err != nil {
		if errors.IsCode(err, errors.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	if state == nil {
		return false, nil
	}
	v, _ := state.uint(localIsRegistered)
	return v != 0, nil
}

// PlayerState reads the contract-held per-player stats from local state.
// Returns CodeNotFound when the account has not opted in.
func (c *Client) PlayerState(ctx context.Context, address string) (game.PlayerStats, error) {
	if err := validateAddress("player", address); err != nil {
		return game.PlayerStats{}, err
	}
	state, err := c.localState(ctx, strings.TrimSpace(address))
	if err != nil {
		return game.PlayerStats{}, err
	}
	if state == nil {
		return game.PlayerStats{}, errors.New(errors.CodeNotFound, "account has not opted in to the game")
	}
	var stats game.PlayerStats
	stats.Level, _ = state.uint(localPlayerLevel)
	stats.Experience, _ = state.uint(localPlayerExperience)
	stats.RecoveryCount, _ = state.uint(localRecoveryCount)
	return stats, nil
}
