// Package ledger provides read-only queries against the chain node. It has
// no side effects and performs no retries; callers decide retry policy.
package ledger

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
)

// AssetHolding is one asset position held by an account.
type AssetHolding struct {
	AssetID uint64
	Amount  uint64
	Frozen  bool
}

// Account is the chain-native view of an account: spendable balance in
// microalgos plus its asset positions.
type Account struct {
	Address  string
	Balance  uint64
	Holdings []AssetHolding
}

// Asset is the parameter record of one ledger asset.
type Asset struct {
	AssetID  uint64
	Name     string
	UnitName string
	Total    uint64
	Decimals uint64
	Creator  string
	Manager  string
	Reserve  string
	Freeze   string
	Clawback string
	URL      string
}

// Adapter wraps an algod client behind the two reads the game client needs.
type Adapter struct {
	algod *algod.Client
}

// New creates an Adapter over an algod client.
func New(client *algod.Client) *Adapter {
	return &Adapter{algod: client}
}

// AccountInfo returns the balance and asset holdings for an address.
func (a *Adapter) AccountInfo(ctx context.Context, address string) (Account, error) {
	info, err := a.algod.AccountInformation(address).Do(ctx)
	if err != nil {
		return Account{}, classify(fmt.Sprintf("account information for %s", address), err)
	}

	account := Account{
		Address: address,
		Balance: info.Amount,
	}
	if len(info.Assets) > 0 {
		account.Holdings = make([]AssetHolding, 0, len(info.Assets))
		for _, holding := range info.Assets {
			account.Holdings = append(account.Holdings, AssetHolding{
				AssetID: holding.AssetId,
				Amount:  holding.Amount,
				Frozen:  holding.IsFrozen,
			})
		}
	}
	return account, nil
}

// AssetInfo returns the parameter record for one asset. Callers treat a
// NotFound result as "skip", not "abort".
func (a *Adapter) AssetInfo(ctx context.Context, assetID uint64) (Asset, error) {
	info, err := a.algod.GetAssetByID(assetID).Do(ctx)
	if err != nil {
		return Asset{}, classify(fmt.Sprintf("asset %d", assetID), err)
	}

	return Asset{
		AssetID:  info.Index,
		Name:     info.Params.Name,
		UnitName: info.Params.UnitName,
		Total:    info.Params.Total,
		Decimals: info.Params.Decimals,
		Creator:  info.Params.Creator,
		Manager:  info.Params.Manager,
		Reserve:  info.Params.Reserve,
		Freeze:   info.Params.Freeze,
		Clawback: info.Params.Clawback,
		URL:      info.Params.Url,
	}, nil
}
