package ownership

import (
	"testing"

	"github.com/seralva/algorealm/internal/ledger"
)

const appAddress = "WCS6TVPJRBSARHLN2326LRU5BYVJZUKI2VJ53CAWKYYHDE455ZGKANWMGM"

func TestExtractOwnerStopsAtNonAlphanumeric(t *testing.T) {
	t.Parallel()

	owner, ok := ExtractOwner("OWNER:ABC123 more text")
	if !ok {
		t.Fatal("expected marker match")
	}
	if owner != "ABC123" {
		t.Fatalf("owner = %q, want ABC123", owner)
	}
}

func TestExtractOwnerFieldOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		asset  string
		owner  string
		wantOK bool
	}{
		{"url wins over name", "OWNER:FIRST", "OWNER:SECOND", "FIRST", true},
		{"falls back to name", "ipfs://item/7", "Sword OWNER:SECOND", "SECOND", true},
		{"no marker anywhere", "ipfs://item/7", "Sword of Dawn", "", false},
		{"empty fields", "", "", "", false},
		{"prefix with no token", "OWNER:", "OWNER:!!", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, ok := ExtractOwner(tt.url, tt.asset)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if owner != tt.owner {
				t.Fatalf("owner = %q, want %q", owner, tt.owner)
			}
		})
	}
}

func TestResolveOwnership(t *testing.T) {
	t.Parallel()

	query := "PLAYERX"
	asset := ledger.Asset{
		AssetID:  7,
		Name:     "Dragon Sword",
		UnitName: "ALGITEM",
		URL:      "OWNER:PLAYERX",
	}

	res := Resolve(asset, query, appAddress)
	if !res.IsGameItem {
		t.Fatal("expected game item by unit name")
	}
	if !res.OwnerKnown || res.Owner != "PLAYERX" {
		t.Fatalf("owner = %q (known=%v), want PLAYERX", res.Owner, res.OwnerKnown)
	}
	if !res.IsOwner {
		t.Fatal("expected querying account to be owner")
	}

	// A different embedded owner is still reported, just not as ours.
	asset.URL = "OWNER:PLAYERY"
	res = Resolve(asset, query, appAddress)
	if res.IsOwner {
		t.Fatal("expected isOwner=false for foreign owner")
	}
	if res.Owner != "PLAYERY" {
		t.Fatalf("owner = %q, want PLAYERY", res.Owner)
	}
}

func TestResolveMissingMarkerIsUnknown(t *testing.T) {
	t.Parallel()

	asset := ledger.Asset{
		AssetID:  9,
		Name:     "Old Relic",
		UnitName: "ALGITEM",
		URL:      "https://example.com/relic",
	}

	res := Resolve(asset, "PLAYERX", appAddress)
	if res.OwnerKnown {
		t.Fatal("expected unknown ownership")
	}
	if res.Owner != "" {
		t.Fatalf("owner = %q, want empty", res.Owner)
	}
	if res.IsOwner {
		t.Fatal("unknown ownership must not imply isOwner")
	}
}

func TestIsGameItemRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		asset ledger.Asset
		want  bool
	}{
		{"managed by contract", ledger.Asset{Manager: appAddress, UnitName: "MISC"}, true},
		{"created by contract", ledger.Asset{Creator: appAddress, UnitName: "MISC"}, true},
		{"known unit code", ledger.Asset{UnitName: "ALGRECOV"}, true},
		{"case sensitive unit code", ledger.Asset{UnitName: "algitem"}, false},
		{"unrelated asset", ledger.Asset{Creator: "OTHER", UnitName: "USDC"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isGameItem(tt.asset, appAddress); got != tt.want {
				t.Fatalf("isGameItem = %v, want %v", got, tt.want)
			}
		})
	}
}
