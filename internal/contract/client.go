// Package contract wraps the deployed game contract behind one method per
// contract operation. Each method validates its arguments locally, fails
// fast with CodeInvalidArgument rather than submitting a doomed
// transaction, and returns the raw contract result without reinterpretation.
// Interpretation belongs to the orchestrator.
//
// The ABI surface is a versioned external contract; the signature strings
// below are fixed and must not be altered here.
package contract

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/seralva/algorealm/internal/errors"
)

// Method signatures of the deployed game manager contract.
const (
	sigRegisterPlayer       = "register_player(string)string"
	sigCreateGameItem       = "create_game_item(account,string,string,string,uint64,uint64,string)uint64"
	sigRecoverLostItem      = "recover_lost_item(asset,byte[],account)uint64"
	sigSeasonalEventReissue = "seasonal_event_reissue(string,byte[],account)uint64"
	sigCraftItems           = "craft_items(asset,asset,uint64)uint64"
	sigAdvanceSeason        = "advance_season()uint64"
	sigGetPlayerStats       = "get_player_stats(account)(uint64,uint64,uint64)"
	sigGetGameInfo          = "get_game_info()(uint64,uint64,uint64)"
	sigClaimItem            = "claim_item(asset)string"
	sigGetRecoveryStatus    = "get_recovery_status(account)(uint64,uint64)"
)

// defaultWaitRounds is how many rounds Execute waits for confirmation.
const defaultWaitRounds = 4

type methodTable struct {
	registerPlayer       abi.Method
	createGameItem       abi.Method
	recoverLostItem      abi.Method
	seasonalEventReissue abi.Method
	craftItems           abi.Method
	advanceSeason        abi.Method
	getPlayerStats       abi.Method
	getGameInfo          abi.Method
	claimItem            abi.Method
	getRecoveryStatus    abi.Method
}

func parseMethods() (methodTable, error) {
	var table methodTable
	for _, entry := range []struct {
		sig string
		dst *abi.Method
	}{
		{sigRegisterPlayer, &table.registerPlayer},
		{sigCreateGameItem, &table.createGameItem},
		{sigRecoverLostItem, &table.recoverLostItem},
		{sigSeasonalEventReissue, &table.seasonalEventReissue},
		{sigCraftItems, &table.craftItems},
		{sigAdvanceSeason, &table.advanceSeason},
		{sigGetPlayerStats, &table.getPlayerStats},
		{sigGetGameInfo, &table.getGameInfo},
		{sigClaimItem, &table.claimItem},
		{sigGetRecoveryStatus, &table.getRecoveryStatus},
	} {
		method, err := abi.MethodFromSignature(entry.sig)
		if err != nil {
			return methodTable{}, fmt.Errorf("parse method %q: %w", entry.sig, err)
		}
		*entry.dst = method
	}
	return table, nil
}

// Client issues calls against one deployed application on behalf of one
// sender. It holds no mutable state; when the active account changes the
// caller constructs a new Client rather than mutating this one.
type Client struct {
	algod      *algod.Client
	appID      uint64
	sender     types.Address
	signer     transaction.TransactionSigner
	waitRounds uint64
	methods    methodTable
}

// New creates a Client for appID acting as sender. The signer must be able
// to sign for sender; wallet key management stays outside this package.
func New(algodClient *algod.Client, appID uint64, sender string, signer transaction.TransactionSigner) (*Client, error) {
	if appID == 0 {
		return nil, fmt.Errorf("app id is required")
	}
	addr, err := types.DecodeAddress(sender)
	if err != nil {
		return nil, fmt.Errorf("decode sender address: %w", err)
	}
	methods, err := parseMethods()
	if err != nil {
		return nil, err
	}
	return &Client{
		algod:      algodClient,
		appID:      appID,
		sender:     addr,
		signer:     signer,
		waitRounds: defaultWaitRounds,
		methods:    methods,
	}, nil
}

// Sender returns the address this client submits for.
func (c *Client) Sender() string {
	return c.sender.String()
}

// call composes, signs, submits, and waits for one method call.
func (c *Client) call(ctx context.Context, method abi.Method, onComplete types.OnCompletion, args []interface{}) (CallResult, error) {
	sp, err := c.algod.SuggestedParams().Do(ctx)
	if err != nil {
		return CallResult{}, classifySubmit(method.Name, err)
	}

	var atc transaction.AtomicTransactionComposer
	if err := atc.AddMethodCall(transaction.AddMethodCallParams{
		AppID:           c.appID,
		Method:          method,
		MethodArgs:      args,
		Sender:          c.sender,
		SuggestedParams: sp,
		OnComplete:      onComplete,
		Signer:          c.signer,
	}); err != nil {
		return CallResult{}, errors.Wrap(errors.CodeInvalidArgument, fmt.Sprintf("%s: compose call: %v", method.Name, err), err)
	}

	res, err := atc.Execute(c.algod, ctx, c.waitRounds)
	if err != nil {
		return CallResult{}, classifySubmit(method.Name, err)
	}

	out := CallResult{ConfirmedRound: res.ConfirmedRound}
	if len(res.TxIDs) > 0 {
		out.TxID = res.TxIDs[0]
	}
	if len(res.MethodResults) > 0 {
		last := res.MethodResults[len(res.MethodResults)-1]
		out.Return = last.ReturnValue
		out.RawReturn = last.RawReturnValue
		if last.DecodeError != nil {
			out.Return = nil
		}
	}
	return out, nil
}
