package game

// Account is a point-in-time projection of a player account: chain-held
// balance plus contract-held per-player state.
type Account struct {
	Address       string
	Balance       uint64 // microalgos
	Registered    bool
	Level         uint64
	Experience    uint64
	RecoveryCount uint64
}

// PlayerStats is the stats tuple returned by the contract for a registered
// player.
type PlayerStats struct {
	Level         uint64
	Experience    uint64
	RecoveryCount uint64
}

// RecoveryStatus reports how many item recoveries a player has used against
// the contract's per-player cap.
type RecoveryStatus struct {
	Used uint64
	Max  uint64
}
