package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/seralva/algorealm/internal/contract"
	"github.com/seralva/algorealm/internal/errors"
	"github.com/seralva/algorealm/internal/game"
	"github.com/seralva/algorealm/internal/ledger"
)

const (
	testAccount   = "PLAYERAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	testMaster    = "MASTERAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	testRecipient = "RECIPIENTAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	testAppAddr   = "APPAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
)

func testDeployment() game.Deployment {
	return game.Deployment{
		AppID:      1002,
		AppAddress: testAppAddr,
		GameMaster: testMaster,
		Network:    "localnet",
	}
}

type fakeLedger struct {
	mu          sync.Mutex
	account     ledger.Account
	accountErr  error
	assets      map[uint64]ledger.Asset
	assetErrs   map[uint64]error
	assetReads  int
	accountRead int
}

func (f *fakeLedger) AccountInfo(ctx context.Context, address string) (ledger.Account, error) {
	f.mu.Lock()
	f.accountRead++
	f.mu.Unlock()
	if f.accountErr != nil {
		return ledger.Account{}, f.accountErr
	}
	return f.account, nil
}

func (f *fakeLedger) AssetInfo(ctx context.Context, assetID uint64) (ledger.Asset, error) {
	f.mu.Lock()
	f.assetReads++
	f.mu.Unlock()
	if err, ok := f.assetErrs[assetID]; ok {
		return ledger.Asset{}, err
	}
	asset, ok := f.assets[assetID]
	if !ok {
		return ledger.Asset{}, errors.New(errors.CodeNotFound, "asset does not exist")
	}
	return asset, nil
}

type fakeActions struct {
	mu    sync.Mutex
	calls []string

	registered      map[string]bool
	isRegisteredErr error
	stats           game.PlayerStats
	statsErr        error
	recovery        game.RecoveryStatus
	info            game.GameInfo
	infoFn          func() game.GameInfo

	optInResult    contract.CallResult
	registerResult contract.CallResult
	registerErr    error
	createResult   contract.CallResult
	createErr      error
	recoverResult  contract.CallResult
	recoverErr     error
	reissueResult  contract.CallResult
	craftResult    contract.CallResult
	advanceResult  contract.CallResult
	claimResult    contract.CallResult
}

func (f *fakeActions) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeActions) callNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeActions) OptInRegister(ctx context.Context, playerName string) (contract.CallResult, error) {
	f.record("OptInRegister")
	return f.optInResult, nil
}

func (f *fakeActions) Register(ctx context.Context, playerName string) (contract.CallResult, error) {
	f.record("Register")
	if f.registerErr != nil {
		return contract.CallResult{}, f.registerErr
	}
	return f.registerResult, nil
}

func (f *fakeActions) CreateGameItem(ctx context.Context, p contract.CreateItemParams) (contract.CallResult, error) {
	f.record("CreateGameItem")
	if f.createErr != nil {
		return contract.CallResult{}, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeActions) RecoverLostItem(ctx context.Context, originalItemID uint64, proof []byte, newRecipient string) (contract.CallResult, error) {
	f.record("RecoverLostItem")
	if f.recoverErr != nil {
		return contract.CallResult{}, f.recoverErr
	}
	return f.recoverResult, nil
}

func (f *fakeActions) SeasonalEventReissue(ctx context.Context, eventName string, proof []byte, recipient string) (contract.CallResult, error) {
	f.record("SeasonalEventReissue")
	return f.reissueResult, nil
}

func (f *fakeActions) CraftItems(ctx context.Context, material1, material2, recipeID uint64) (contract.CallResult, error) {
	f.record("CraftItems")
	return f.craftResult, nil
}

func (f *fakeActions) AdvanceSeason(ctx context.Context) (contract.CallResult, error) {
	f.record("AdvanceSeason")
	return f.advanceResult, nil
}

func (f *fakeActions) ClaimItem(ctx context.Context, itemID uint64) (contract.CallResult, error) {
	f.record("ClaimItem")
	return f.claimResult, nil
}

func (f *fakeActions) GetPlayerStats(ctx context.Context, player string) (game.PlayerStats, error) {
	f.record("GetPlayerStats")
	return f.stats, f.statsErr
}

func (f *fakeActions) GetGameInfo(ctx context.Context) (game.GameInfo, error) {
	f.record("GetGameInfo")
	if f.infoFn != nil {
		return f.infoFn(), nil
	}
	return f.info, nil
}

func (f *fakeActions) GetRecoveryStatus(ctx context.Context, player string) (game.RecoveryStatus, error) {
	f.record("GetRecoveryStatus")
	return f.recovery, nil
}

func (f *fakeActions) IsRegistered(ctx context.Context, address string) (bool, error) {
	f.record("IsRegistered")
	if f.isRegisteredErr != nil {
		return false, f.isRegisteredErr
	}
	return f.registered[address], nil
}

func (f *fakeActions) PlayerState(ctx context.Context, address string) (game.PlayerStats, error) {
	f.record("PlayerState")
	return f.stats, f.statsErr
}

type fakeGuard struct {
	err   error
	calls int
}

func (f *fakeGuard) EnsureFunded(ctx context.Context, address string, minBalance uint64) error {
	f.calls++
	return f.err
}

func newTestService(t *testing.T, account string, ld *fakeLedger, actions *fakeActions, guard *fakeGuard) *Service {
	t.Helper()
	svc, err := New(Deps{
		Deployment: testDeployment(),
		Account:    account,
		Ledger:     ld,
		Actions:    actions,
		Guard:      guard,
		Clock:      func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc
}

func TestNewValidatesDeps(t *testing.T) {
	t.Parallel()

	deps := Deps{
		Deployment: testDeployment(),
		Account:    testAccount,
		Ledger:     &fakeLedger{},
		Actions:    &fakeActions{},
		Guard:      &fakeGuard{},
	}

	if _, err := New(deps); err != nil {
		t.Fatalf("New() error = %v", err)
	}

	missing := deps
	missing.Account = ""
	if _, err := New(missing); !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Fatalf("New() without account error = %v, want %s", err, errors.CodeInvalidArgument)
	}

	broken := deps
	broken.Deployment.AppID = 0
	if _, err := New(broken); err == nil {
		t.Fatal("New() with invalid deployment succeeded")
	}
}
