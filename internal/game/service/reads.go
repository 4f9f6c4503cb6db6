package service

import (
	"context"

	"github.com/seralva/algorealm/internal/game"
)

// GameInfo reads the global game counters. Always a fresh read so values
// reflect activity by other participants.
func (s *Service) GameInfo(ctx context.Context) (game.GameInfo, error) {
	return s.actions.GetGameInfo(ctx)
}

// PlayerStats reads another player's stats from contract state.
func (s *Service) PlayerStats(ctx context.Context, address string) (game.PlayerStats, error) {
	return s.actions.PlayerState(ctx, address)
}

// RecoveryStatus reads the active account's recovery usage against the cap.
func (s *Service) RecoveryStatus(ctx context.Context) (game.RecoveryStatus, error) {
	return s.actions.GetRecoveryStatus(ctx, s.account)
}

// Account assembles the active account's combined view: chain balance plus
// contract-held player state. Registration is monotonic within a session; a
// read that comes back unregistered never clears a previously observed
// registration, which papers over indexer lag right after registering.
func (s *Service) Account(ctx context.Context) (game.Account, error) {
	info, err := s.ledger.AccountInfo(ctx, s.account)
	if err != nil {
		return game.Account{}, err
	}

	registered, err := s.actions.IsRegistered(ctx, s.account)
	if err != nil {
		return game.Account{}, err
	}
	if registered {
		s.markRegistered()
	} else if s.wasRegistered() {
		registered = true
	}

	account := game.Account{
		Address:    s.account,
		Balance:    info.Balance,
		Registered: registered,
	}
	if registered {
		stats, err := s.actions.PlayerState(ctx, s.account)
		if err != nil {
			return game.Account{}, err
		}
		account.Level = stats.Level
		account.Experience = stats.Experience
		account.RecoveryCount = stats.RecoveryCount
	}
	return account, nil
}
