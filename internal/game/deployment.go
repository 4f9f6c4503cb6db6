package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrMissingAppID indicates the deployment descriptor lacks an
	// application id.
	ErrMissingAppID = errors.New("deployment app id is required")
	// ErrMissingAppAddress indicates the deployment descriptor lacks the
	// application address.
	ErrMissingAppAddress = errors.New("deployment app address is required")
	// ErrMissingGameMaster indicates the deployment descriptor lacks the
	// game master address.
	ErrMissingGameMaster = errors.New("deployment game master address is required")
)

// Deployment is the static descriptor for a deployed game contract. It is
// loaded once at startup and read-only for the lifetime of the process.
type Deployment struct {
	AppID      uint64 `json:"app_id"`
	AppAddress string `json:"app_address"`
	GameMaster string `json:"game_master"`
	Network    string `json:"network"`
}

// Validate checks the descriptor carries the fields the client depends on.
func (d Deployment) Validate() error {
	if d.AppID == 0 {
		return ErrMissingAppID
	}
	if strings.TrimSpace(d.AppAddress) == "" {
		return ErrMissingAppAddress
	}
	if strings.TrimSpace(d.GameMaster) == "" {
		return ErrMissingGameMaster
	}
	return nil
}

// IsGameMaster reports whether address is the configured game master. This
// is a UX short-circuit only; the contract enforces authorization
// authoritatively.
func (d Deployment) IsGameMaster(address string) bool {
	return address != "" && address == d.GameMaster
}

// LoadDeployment reads a deployment descriptor from a JSON file produced by
// the contract deployment tooling.
func LoadDeployment(path string) (Deployment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Deployment{}, fmt.Errorf("read deployment descriptor: %w", err)
	}
	var d Deployment
	if err := json.Unmarshal(raw, &d); err != nil {
		return Deployment{}, fmt.Errorf("parse deployment descriptor: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Deployment{}, err
	}
	return d, nil
}
