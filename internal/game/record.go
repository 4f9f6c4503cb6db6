package game

import "time"

// CreatedItemRecord is a session-local log entry for an item minted through
// the create-item flow. Records live until session end, are never persisted
// to the ledger, and are never trusted as a source of truth for ownership.
type CreatedItemRecord struct {
	AssetID   uint64
	ItemName  string
	ItemType  string
	Rarity    string
	Recipient string
	TxID      string
	CreatedAt time.Time
}
