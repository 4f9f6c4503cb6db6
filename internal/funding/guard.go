// Package funding provides the precondition check run before fee-bearing
// operations, so a zero-balance account gets an actionable error instead of
// an opaque transport failure.
package funding

import (
	"context"
	"fmt"
	"strconv"

	"github.com/seralva/algorealm/internal/errors"
	"github.com/seralva/algorealm/internal/ledger"
)

// DefaultMinBalance is the spendable balance required before a first
// contract interaction, in microalgos.
const DefaultMinBalance = 1_000_000

// BalanceReader reads account balances from the ledger.
type BalanceReader interface {
	AccountInfo(ctx context.Context, address string) (ledger.Account, error)
}

// Guard checks account funding. It performs one ledger read and never
// attempts remediation; directing the user to a funding mechanism is the
// caller's concern.
type Guard struct {
	reader BalanceReader
}

// New creates a Guard over a balance reader.
func New(reader BalanceReader) *Guard {
	return &Guard{reader: reader}
}

// EnsureFunded returns nil when address holds at least minBalance
// microalgos, and a CodeInsufficientFunds error carrying the current and
// required balances otherwise. Ledger failures pass through classified.
func (g *Guard) EnsureFunded(ctx context.Context, address string, minBalance uint64) error {
	account, err := g.reader.AccountInfo(ctx, address)
	if err != nil {
		return err
	}
	if account.Balance >= minBalance {
		return nil
	}
	return errors.WithMetadata(
		errors.CodeInsufficientFunds,
		fmt.Sprintf("account %s holds %d microalgos, needs %d; fund the account and try again", address, account.Balance, minBalance),
		map[string]string{
			"current":  strconv.FormatUint(account.Balance, 10),
			"required": strconv.FormatUint(minBalance, 10),
		},
	)
}
