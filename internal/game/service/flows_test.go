package service

import (
	"context"
	"testing"

	"github.com/seralva/algorealm/internal/contract"
	"github.com/seralva/algorealm/internal/errors"
	"github.com/seralva/algorealm/internal/game"
)

func TestRegisterPlayer(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{
		optInResult:    contract.CallResult{TxID: "OPTIN"},
		registerResult: contract.CallResult{TxID: "REG", Return: "Welcome, Alice!"},
		stats:          game.PlayerStats{Level: 1},
		info:           game.GameInfo{TotalPlayers: 5, CurrentSeason: 2},
	}
	svc := newTestService(t, testAccount, &fakeLedger{}, actions, &fakeGuard{})

	result, err := svc.RegisterPlayer(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("RegisterPlayer() error = %v", err)
	}
	if result.OptInTxID != "OPTIN" || result.RegisterTxID != "REG" {
		t.Fatalf("RegisterPlayer() txids = %q, %q", result.OptInTxID, result.RegisterTxID)
	}
	if result.Message != "Welcome, Alice!" {
		t.Fatalf("RegisterPlayer() message = %q", result.Message)
	}
	if result.Info.TotalPlayers != 5 {
		t.Fatalf("RegisterPlayer() total players = %d, want 5", result.Info.TotalPlayers)
	}
	if !svc.wasRegistered() {
		t.Fatal("registration flag not latched after success")
	}
}

func TestRegisterPlayerEmptyName(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{}
	guard := &fakeGuard{}
	svc := newTestService(t, testAccount, &fakeLedger{}, actions, guard)

	_, err := svc.RegisterPlayer(context.Background(), "   ")
	if !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Fatalf("RegisterPlayer() error = %v, want %s", err, errors.CodeInvalidArgument)
	}
	if guard.calls != 0 {
		t.Fatalf("funding guard ran %d times for invalid input", guard.calls)
	}
	if calls := actions.callNames(); len(calls) != 0 {
		t.Fatalf("contract calls made for invalid input: %v", calls)
	}
}

func TestRegisterPlayerUnderfunded(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{}
	guard := &fakeGuard{err: errors.New(errors.CodeInsufficientFunds, "account balance below minimum")}
	svc := newTestService(t, testAccount, &fakeLedger{}, actions, guard)

	_, err := svc.RegisterPlayer(context.Background(), "Alice")
	if !errors.IsCode(err, errors.CodeInsufficientFunds) {
		t.Fatalf("RegisterPlayer() error = %v, want %s", err, errors.CodeInsufficientFunds)
	}
	if calls := actions.callNames(); len(calls) != 0 {
		t.Fatalf("contract calls made after funding failure: %v", calls)
	}
	if svc.wasRegistered() {
		t.Fatal("registration flag latched on failure")
	}
}

func TestRegisterPlayerWalletKeyMismatchPropagates(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{
		optInResult: contract.CallResult{TxID: "OPTIN"},
		registerErr: errors.New(errors.CodeWalletKeyMismatch, "register_player: key does not exist in this wallet"),
	}
	svc := newTestService(t, testAccount, &fakeLedger{}, actions, &fakeGuard{})

	_, err := svc.RegisterPlayer(context.Background(), "Alice")
	if !errors.IsCode(err, errors.CodeWalletKeyMismatch) {
		t.Fatalf("RegisterPlayer() error = %v, want %s", err, errors.CodeWalletKeyMismatch)
	}
}

func TestCreateItem(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{
		registered:   map[string]bool{testRecipient: true},
		createResult: contract.CallResult{TxID: "CREATE", Return: uint64(7001)},
		info:         game.GameInfo{TotalItems: 10},
	}
	svc := newTestService(t, testMaster, &fakeLedger{}, actions, &fakeGuard{})

	result, err := svc.CreateItem(context.Background(), CreateItemInput{
		Recipient: testRecipient,
		ItemName:  "Dragon Sword",
		ItemType:  "weapon",
		Rarity:    "legendary",
	})
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if result.AssetID != 7001 {
		t.Fatalf("CreateItem() asset id = %d, want 7001", result.AssetID)
	}
	if result.Record.Recipient != testRecipient || result.Record.TxID != "CREATE" {
		t.Fatalf("CreateItem() record = %+v", result.Record)
	}

	items := svc.CreatedItems()
	if len(items) != 1 || items[0].AssetID != 7001 {
		t.Fatalf("CreatedItems() = %+v, want one record for 7001", items)
	}
}

func TestCreateItemRecipientNotRegistered(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{registered: map[string]bool{}}
	svc := newTestService(t, testMaster, &fakeLedger{}, actions, &fakeGuard{})

	_, err := svc.CreateItem(context.Background(), CreateItemInput{
		Recipient: testRecipient,
		ItemName:  "Dragon Sword",
	})
	if !errors.IsCode(err, errors.CodeRecipientNotRegistered) {
		t.Fatalf("CreateItem() error = %v, want %s", err, errors.CodeRecipientNotRegistered)
	}
	for _, call := range actions.callNames() {
		if call == "CreateGameItem" {
			t.Fatal("creation submitted despite unregistered recipient")
		}
	}
	if items := svc.CreatedItems(); len(items) != 0 {
		t.Fatalf("CreatedItems() = %+v after failed creation", items)
	}
}

func TestCreateItemNotGameMaster(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{registered: map[string]bool{testRecipient: true}}
	svc := newTestService(t, testAccount, &fakeLedger{}, actions, &fakeGuard{})

	_, err := svc.CreateItem(context.Background(), CreateItemInput{Recipient: testRecipient})
	if !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Fatalf("CreateItem() error = %v, want %s", err, errors.CodeInvalidArgument)
	}
	if calls := actions.callNames(); len(calls) != 0 {
		t.Fatalf("contract calls made by non-game-master: %v", calls)
	}
}

func TestCreatedItemsMostRecentFirst(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{
		registered:   map[string]bool{testRecipient: true},
		createResult: contract.CallResult{TxID: "TX1", Return: uint64(1)},
	}
	svc := newTestService(t, testMaster, &fakeLedger{}, actions, &fakeGuard{})

	if _, err := svc.CreateItem(context.Background(), CreateItemInput{Recipient: testRecipient, ItemName: "First"}); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	actions.createResult = contract.CallResult{TxID: "TX2", Return: uint64(2)}
	if _, err := svc.CreateItem(context.Background(), CreateItemInput{Recipient: testRecipient, ItemName: "Second"}); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}

	items := svc.CreatedItems()
	if len(items) != 2 {
		t.Fatalf("CreatedItems() returned %d records, want 2", len(items))
	}
	if items[0].ItemName != "Second" || items[1].ItemName != "First" {
		t.Fatalf("CreatedItems() order = %q, %q, want most recent first", items[0].ItemName, items[1].ItemName)
	}
}

func TestRecoverItemRejectsNonNumericID(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{}
	svc := newTestService(t, testAccount, &fakeLedger{}, actions, &fakeGuard{})

	for _, raw := range []string{"", "abc", "12.5", "-3", "0x10"} {
		_, err := svc.RecoverItem(context.Background(), raw, "proof", testRecipient)
		if !errors.IsCode(err, errors.CodeInvalidArgument) {
			t.Fatalf("RecoverItem(%q) error = %v, want %s", raw, err, errors.CodeInvalidArgument)
		}
	}
	if calls := actions.callNames(); len(calls) != 0 {
		t.Fatalf("contract calls made for malformed item ids: %v", calls)
	}
}

func TestRecoverItem(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{
		recoverResult: contract.CallResult{TxID: "RECOVER", Return: uint64(9001)},
		stats:         game.PlayerStats{Level: 3, RecoveryCount: 1},
	}
	svc := newTestService(t, testAccount, &fakeLedger{}, actions, &fakeGuard{})

	result, err := svc.RecoverItem(context.Background(), " 404 ", "bought at launch", testRecipient)
	if err != nil {
		t.Fatalf("RecoverItem() error = %v", err)
	}
	if result.AssetID != 9001 {
		t.Fatalf("RecoverItem() asset id = %d, want 9001", result.AssetID)
	}
	if result.Stats.RecoveryCount != 1 {
		t.Fatalf("RecoverItem() recovery count = %d, want 1", result.Stats.RecoveryCount)
	}
}

func TestRecoverItemContractRejected(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{
		recoverErr: errors.New(errors.CodeContractRejected, "recover_lost_item: assert failed"),
	}
	svc := newTestService(t, testAccount, &fakeLedger{}, actions, &fakeGuard{})

	_, err := svc.RecoverItem(context.Background(), "404", "proof", testRecipient)
	if !errors.IsCode(err, errors.CodeContractRejected) {
		t.Fatalf("RecoverItem() error = %v, want %s", err, errors.CodeContractRejected)
	}
}

func TestSeasonalReissueValidatesInput(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{}
	svc := newTestService(t, testAccount, &fakeLedger{}, actions, &fakeGuard{})

	if _, err := svc.SeasonalReissue(context.Background(), "", "proof", testRecipient); !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Fatalf("SeasonalReissue() without event error = %v, want %s", err, errors.CodeInvalidArgument)
	}
	if _, err := svc.SeasonalReissue(context.Background(), "winter-2024", "", testRecipient); !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Fatalf("SeasonalReissue() without proof error = %v, want %s", err, errors.CodeInvalidArgument)
	}
	if calls := actions.callNames(); len(calls) != 0 {
		t.Fatalf("contract calls made for invalid input: %v", calls)
	}
}

func TestAdvanceSeason(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{
		advanceResult: contract.CallResult{TxID: "SEASON", Return: uint64(3)},
		info:          game.GameInfo{CurrentSeason: 3},
	}
	svc := newTestService(t, testMaster, &fakeLedger{}, actions, &fakeGuard{})

	result, err := svc.AdvanceSeason(context.Background())
	if err != nil {
		t.Fatalf("AdvanceSeason() error = %v", err)
	}
	if result.Season != 3 {
		t.Fatalf("AdvanceSeason() season = %d, want 3", result.Season)
	}
	if result.Info.CurrentSeason != 3 {
		t.Fatalf("AdvanceSeason() info season = %d, want 3", result.Info.CurrentSeason)
	}
}

func TestAdvanceSeasonNotGameMaster(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{}
	svc := newTestService(t, testAccount, &fakeLedger{}, actions, &fakeGuard{})

	if _, err := svc.AdvanceSeason(context.Background()); !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Fatalf("AdvanceSeason() error = %v, want %s", err, errors.CodeInvalidArgument)
	}
	if calls := actions.callNames(); len(calls) != 0 {
		t.Fatalf("contract calls made by non-game-master: %v", calls)
	}
}

func TestClaimItem(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{
		claimResult: contract.CallResult{TxID: "CLAIM", Return: "Item claimed!"},
	}
	svc := newTestService(t, testAccount, &fakeLedger{}, actions, &fakeGuard{})

	result, err := svc.ClaimItem(context.Background(), 7001)
	if err != nil {
		t.Fatalf("ClaimItem() error = %v", err)
	}
	if result.Message != "Item claimed!" {
		t.Fatalf("ClaimItem() message = %q", result.Message)
	}
}

func TestCraftItems(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{
		craftResult: contract.CallResult{TxID: "CRAFT", Return: uint64(5555)},
	}
	svc := newTestService(t, testAccount, &fakeLedger{}, actions, &fakeGuard{})

	result, err := svc.CraftItems(context.Background(), 100, 101, 1)
	if err != nil {
		t.Fatalf("CraftItems() error = %v", err)
	}
	if result.AssetID != 5555 {
		t.Fatalf("CraftItems() asset id = %d, want 5555", result.AssetID)
	}
}
