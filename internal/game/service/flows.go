package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/seralva/algorealm/internal/contract"
	"github.com/seralva/algorealm/internal/errors"
	"github.com/seralva/algorealm/internal/game"
)

// RegistrationResult reports a completed registration flow.
type RegistrationResult struct {
	OptInTxID    string
	RegisterTxID string
	Message      string
	Stats        game.PlayerStats
	Info         game.GameInfo
}

// RegisterPlayer runs the registration flow: funding check, contract opt-in,
// registration call, then a state refresh. The funding check runs first so
// an underfunded account fails before any transaction is composed.
func (s *Service) RegisterPlayer(ctx context.Context, playerName string) (RegistrationResult, error) {
	ctx, span := s.startSpan(ctx, "RegisterPlayer")
	var err error
	defer func() { finishSpan(span, err) }()

	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		err = errors.New(errors.CodeInvalidArgument, "player name is required")
		s.emit(ctx, flowRegister, StateFailed, err)
		return RegistrationResult{}, err
	}

	if err = s.guard.EnsureFunded(ctx, s.account, s.minBalance); err != nil {
		s.emit(ctx, flowRegister, StateFailed, err)
		return RegistrationResult{}, err
	}
	s.emit(ctx, flowRegister, StateFunded, nil)

	optIn, err := s.actions.OptInRegister(ctx, playerName)
	if err != nil {
		s.emit(ctx, flowRegister, StateFailed, err)
		return RegistrationResult{}, err
	}
	s.emit(ctx, flowRegister, StateOptedIn, nil)

	reg, err := s.actions.Register(ctx, playerName)
	if err != nil {
		s.emit(ctx, flowRegister, StateFailed, err)
		return RegistrationResult{}, err
	}
	s.markRegistered()
	s.emit(ctx, flowRegister, StateRegistered, nil)

	result := RegistrationResult{
		OptInTxID:    optIn.TxID,
		RegisterTxID: reg.TxID,
	}
	if result.Message, err = reg.Text(); err != nil {
		s.emit(ctx, flowRegister, StateFailed, err)
		return RegistrationResult{}, err
	}
	if result.Stats, err = s.actions.PlayerState(ctx, s.account); err != nil {
		s.emit(ctx, flowRegister, StateFailed, err)
		return RegistrationResult{}, err
	}
	if result.Info, err = s.actions.GetGameInfo(ctx); err != nil {
		s.emit(ctx, flowRegister, StateFailed, err)
		return RegistrationResult{}, err
	}
	s.emit(ctx, flowRegister, StateDone, nil)
	return result, nil
}

// CreateItemInput carries the user-supplied fields for item creation.
type CreateItemInput struct {
	Recipient     string
	ItemName      string
	ItemType      string
	Rarity        string
	AttackPower   uint64
	DefensePower  uint64
	SpecialEffect string
}

// CreateItemResult reports a completed item creation. Items is the
// submitter's refreshed inventory, not the recipient's; the minted asset
// sits with the contract until the recipient claims it.
type CreateItemResult struct {
	AssetID uint64
	TxID    string
	Record  game.CreatedItemRecord
	Info    game.GameInfo
	Items   []game.GameItem
}

// CreateItem mints a game item for a registered recipient. Only the game
// master can create items; the local check avoids a doomed transaction but
// the contract remains the authority. The recipient's registration is
// verified before anything is submitted so an unregistered recipient never
// costs a transaction fee.
func (s *Service) CreateItem(ctx context.Context, in CreateItemInput) (CreateItemResult, error) {
	ctx, span := s.startSpan(ctx, "CreateItem")
	var err error
	defer func() { finishSpan(span, err) }()

	if !s.IsGameMaster() {
		err = errors.New(errors.CodeInvalidArgument, "active account is not the game master")
		s.emit(ctx, flowCreateItem, StateFailed, err)
		return CreateItemResult{}, err
	}

	registered, err := s.actions.IsRegistered(ctx, in.Recipient)
	if err != nil {
		s.emit(ctx, flowCreateItem, StateFailed, err)
		return CreateItemResult{}, err
	}
	if !registered {
		err = errors.New(errors.CodeRecipientNotRegistered,
			fmt.Sprintf("recipient %s is not a registered player", in.Recipient))
		s.emit(ctx, flowCreateItem, StateFailed, err)
		return CreateItemResult{}, err
	}
	s.emit(ctx, flowCreateItem, StateRecipientChecked, nil)

	res, err := s.actions.CreateGameItem(ctx, contract.CreateItemParams{
		Recipient:     in.Recipient,
		ItemName:      in.ItemName,
		ItemType:      in.ItemType,
		Rarity:        in.Rarity,
		AttackPower:   in.AttackPower,
		DefensePower:  in.DefensePower,
		SpecialEffect: in.SpecialEffect,
	})
	if err != nil {
		s.emit(ctx, flowCreateItem, StateFailed, err)
		return CreateItemResult{}, err
	}
	s.emit(ctx, flowCreateItem, StateSubmitted, nil)

	assetID, err := res.Uint64()
	if err != nil {
		s.emit(ctx, flowCreateItem, StateFailed, err)
		return CreateItemResult{}, err
	}

	record := game.CreatedItemRecord{
		AssetID:   assetID,
		ItemName:  in.ItemName,
		ItemType:  in.ItemType,
		Rarity:    in.Rarity,
		Recipient: in.Recipient,
		TxID:      res.TxID,
		CreatedAt: s.clock().UTC(),
	}
	s.recordCreatedItem(record)

	result := CreateItemResult{AssetID: assetID, TxID: res.TxID, Record: record}
	if result.Info, err = s.actions.GetGameInfo(ctx); err != nil {
		s.emit(ctx, flowCreateItem, StateFailed, err)
		return result, err
	}
	if result.Items, err = s.ListGameItems(ctx); err != nil {
		s.emit(ctx, flowCreateItem, StateFailed, err)
		return result, err
	}
	s.emit(ctx, flowCreateItem, StateDone, nil)
	return result, nil
}

// RecoveryResult reports a completed item recovery.
type RecoveryResult struct {
	AssetID uint64
	TxID    string
	Stats   game.PlayerStats
}

// parseItemID parses a user-supplied decimal asset id. Junk input fails
// locally before any network traffic.
func parseItemID(label, raw string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errors.New(errors.CodeInvalidArgument,
			fmt.Sprintf("%s must be a decimal asset id, got %q", label, raw))
	}
	return id, nil
}

// RecoverItem reissues a lost item to a new recipient given ownership proof.
// The original item id arrives as text from the caller and is parsed here.
func (s *Service) RecoverItem(ctx context.Context, originalItemID, proof, newRecipient string) (RecoveryResult, error) {
	ctx, span := s.startSpan(ctx, "RecoverItem")
	var err error
	defer func() { finishSpan(span, err) }()

	itemID, err := parseItemID("original item id", originalItemID)
	if err != nil {
		s.emit(ctx, flowRecoverItem, StateFailed, err)
		return RecoveryResult{}, err
	}
	if strings.TrimSpace(proof) == "" {
		err = errors.New(errors.CodeInvalidArgument, "ownership proof is required")
		s.emit(ctx, flowRecoverItem, StateFailed, err)
		return RecoveryResult{}, err
	}

	res, err := s.actions.RecoverLostItem(ctx, itemID, []byte(proof), newRecipient)
	if err != nil {
		s.emit(ctx, flowRecoverItem, StateFailed, err)
		return RecoveryResult{}, err
	}
	s.emit(ctx, flowRecoverItem, StateSubmitted, nil)

	result := RecoveryResult{TxID: res.TxID}
	if result.AssetID, err = res.Uint64(); err != nil {
		s.emit(ctx, flowRecoverItem, StateFailed, err)
		return RecoveryResult{}, err
	}
	if result.Stats, err = s.actions.PlayerState(ctx, s.account); err != nil {
		s.emit(ctx, flowRecoverItem, StateFailed, err)
		return result, err
	}
	s.emit(ctx, flowRecoverItem, StateDone, nil)
	return result, nil
}

// SeasonalReissue mints a seasonal replacement item for an event holder.
func (s *Service) SeasonalReissue(ctx context.Context, eventName, proof, recipient string) (RecoveryResult, error) {
	ctx, span := s.startSpan(ctx, "SeasonalReissue")
	var err error
	defer func() { finishSpan(span, err) }()

	if strings.TrimSpace(eventName) == "" {
		err = errors.New(errors.CodeInvalidArgument, "event name is required")
		s.emit(ctx, flowReissue, StateFailed, err)
		return RecoveryResult{}, err
	}
	if strings.TrimSpace(proof) == "" {
		err = errors.New(errors.CodeInvalidArgument, "ownership proof is required")
		s.emit(ctx, flowReissue, StateFailed, err)
		return RecoveryResult{}, err
	}

	res, err := s.actions.SeasonalEventReissue(ctx, eventName, []byte(proof), recipient)
	if err != nil {
		s.emit(ctx, flowReissue, StateFailed, err)
		return RecoveryResult{}, err
	}
	s.emit(ctx, flowReissue, StateSubmitted, nil)

	result := RecoveryResult{TxID: res.TxID}
	if result.AssetID, err = res.Uint64(); err != nil {
		s.emit(ctx, flowReissue, StateFailed, err)
		return RecoveryResult{}, err
	}
	s.emit(ctx, flowReissue, StateDone, nil)
	return result, nil
}

// CraftResult reports a completed crafting call.
type CraftResult struct {
	AssetID uint64
	TxID    string
}

// CraftItems combines two material assets into a crafted item.
func (s *Service) CraftItems(ctx context.Context, material1, material2, recipeID uint64) (CraftResult, error) {
	ctx, span := s.startSpan(ctx, "CraftItems")
	var err error
	defer func() { finishSpan(span, err) }()

	res, err := s.actions.CraftItems(ctx, material1, material2, recipeID)
	if err != nil {
		s.emit(ctx, flowCraft, StateFailed, err)
		return CraftResult{}, err
	}
	s.emit(ctx, flowCraft, StateSubmitted, nil)

	result := CraftResult{TxID: res.TxID}
	if result.AssetID, err = res.Uint64(); err != nil {
		s.emit(ctx, flowCraft, StateFailed, err)
		return CraftResult{}, err
	}
	s.emit(ctx, flowCraft, StateDone, nil)
	return result, nil
}

// SeasonResult reports a completed season advancement.
type SeasonResult struct {
	Season uint64
	TxID   string
	Info   game.GameInfo
}

// AdvanceSeason moves the game to the next season. Game master only; the
// contract enforces it, the local check just fails faster.
func (s *Service) AdvanceSeason(ctx context.Context) (SeasonResult, error) {
	ctx, span := s.startSpan(ctx, "AdvanceSeason")
	var err error
	defer func() { finishSpan(span, err) }()

	if !s.IsGameMaster() {
		err = errors.New(errors.CodeInvalidArgument, "active account is not the game master")
		s.emit(ctx, flowAdvanceSeason, StateFailed, err)
		return SeasonResult{}, err
	}

	res, err := s.actions.AdvanceSeason(ctx)
	if err != nil {
		s.emit(ctx, flowAdvanceSeason, StateFailed, err)
		return SeasonResult{}, err
	}
	s.emit(ctx, flowAdvanceSeason, StateSubmitted, nil)

	result := SeasonResult{TxID: res.TxID}
	if result.Season, err = res.Uint64(); err != nil {
		s.emit(ctx, flowAdvanceSeason, StateFailed, err)
		return SeasonResult{}, err
	}
	if result.Info, err = s.actions.GetGameInfo(ctx); err != nil {
		s.emit(ctx, flowAdvanceSeason, StateFailed, err)
		return result, err
	}
	s.emit(ctx, flowAdvanceSeason, StateDone, nil)
	return result, nil
}

// ClaimResult reports a completed item claim.
type ClaimResult struct {
	Message string
	TxID    string
}

// ClaimItem claims a held game item, marking it as claimed in player state.
func (s *Service) ClaimItem(ctx context.Context, itemID uint64) (ClaimResult, error) {
	ctx, span := s.startSpan(ctx, "ClaimItem")
	var err error
	defer func() { finishSpan(span, err) }()

	res, err := s.actions.ClaimItem(ctx, itemID)
	if err != nil {
		s.emit(ctx, flowClaimItem, StateFailed, err)
		return ClaimResult{}, err
	}
	s.emit(ctx, flowClaimItem, StateSubmitted, nil)

	result := ClaimResult{TxID: res.TxID}
	if result.Message, err = res.Text(); err != nil {
		s.emit(ctx, flowClaimItem, StateFailed, err)
		return ClaimResult{}, err
	}
	s.emit(ctx, flowClaimItem, StateDone, nil)
	return result, nil
}
