// Package ownership infers game-item membership and logical ownership from
// raw asset records.
//
// The ledger's asset model has no first-class owner field distinct from the
// holder, so the game embeds an owner marker in asset metadata instead. The
// marker grammar is the literal prefix "OWNER:" followed by a maximal run of
// alphanumeric characters. The scan is best effort: a missing or malformed
// marker degrades to "ownership unknown", never to an error. This is a
// compatibility shim for the contract lacking a queryable owner index; when
// both scanned fields carry different markers, the URL field wins by scan
// order.
package ownership

import (
	"regexp"

	"github.com/seralva/algorealm/internal/ledger"
)

// marker matches the embedded owner grammar. The token stops at the first
// non-alphanumeric character.
var marker = regexp.MustCompile(`OWNER:([a-zA-Z0-9]+)`)

// gameUnitNames is the fixed set of unit codes the contract issues.
// Membership is exact and case-sensitive.
var gameUnitNames = map[string]struct{}{
	"ALGITEM":  {},
	"ALGRECOV": {},
	"ALGSEASN": {},
	"ALGCRAFT": {},
}

// Resolution carries the inferred game metadata for one asset.
type Resolution struct {
	IsGameItem bool
	Owner      string
	OwnerKnown bool
	IsOwner    bool
}

// Resolve infers game-item membership and logical ownership for one asset
// record as seen by queryAccount. appAddress is the application address of
// the deployed contract.
func Resolve(asset ledger.Asset, queryAccount, appAddress string) Resolution {
	res := Resolution{
		IsGameItem: isGameItem(asset, appAddress),
	}

	owner, ok := ExtractOwner(asset.URL, asset.Name)
	if !ok {
		return res
	}
	res.Owner = owner
	res.OwnerKnown = true
	res.IsOwner = owner == queryAccount
	return res
}

// ExtractOwner scans fields in order for an embedded owner marker and
// returns the first token found. The boolean result distinguishes "no
// marker" from an empty owner; absence means unknown, not false.
func ExtractOwner(fields ...string) (string, bool) {
	for _, field := range fields {
		if field == "" {
			continue
		}
		if m := marker.FindStringSubmatch(field); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// isGameItem reports whether the asset originates from, or is managed by,
// the game contract.
func isGameItem(asset ledger.Asset, appAddress string) bool {
	if appAddress != "" && (asset.Manager == appAddress || asset.Creator == appAddress) {
		return true
	}
	_, ok := gameUnitNames[asset.UnitName]
	return ok
}
