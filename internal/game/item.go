package game

// GameItem is a projection of one ledger asset held by an account, enriched
// with game-membership and logical-ownership information.
//
// Owner is the address the game considers the rightful owner per embedded
// metadata. It may differ from the current holder, for example before the
// recipient has opted in and claimed the item. OwnerKnown distinguishes a
// parsed-and-absent marker from an unparseable one: when false, ownership is
// unknown rather than negated.
type GameItem struct {
	AssetID  uint64
	Name     string
	UnitName string
	Amount   uint64
	Total    uint64
	Decimals uint64
	Creator  string
	Manager  string
	Reserve  string
	Freeze   string
	Clawback string
	Frozen   bool
	URL      string

	IsGameItem bool
	Owner      string
	OwnerKnown bool
	IsOwner    bool

	// Unavailable marks a held asset whose detail fetch failed. The entry
	// stays in listings as a placeholder instead of aborting the listing.
	Unavailable bool
}

// GameInfo is the aggregate counter tuple held in the contract's global
// state. Always a fresh read, never cached.
type GameInfo struct {
	TotalPlayers  uint64
	TotalItems    uint64
	CurrentSeason uint64
}
