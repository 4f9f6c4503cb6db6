// Package realm parses realm command flags and runs game client commands
// against a deployed game contract.
package realm

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/transaction"

	"github.com/seralva/algorealm/internal/contract"
	"github.com/seralva/algorealm/internal/funding"
	"github.com/seralva/algorealm/internal/game"
	"github.com/seralva/algorealm/internal/game/service"
	"github.com/seralva/algorealm/internal/ledger"
	entrypoint "github.com/seralva/algorealm/internal/platform/cmd"
	"github.com/seralva/algorealm/internal/storage/sqlite"
	"github.com/seralva/algorealm/internal/telemetry"
)

// Config holds realm command configuration.
type Config struct {
	AlgodURL       string `env:"ALGOREALM_ALGOD_URL" envDefault:"http://localhost:4001"`
	AlgodToken     string `env:"ALGOREALM_ALGOD_TOKEN"`
	DeploymentPath string `env:"ALGOREALM_DEPLOYMENT" envDefault:"deployment.json"`
	AppID          uint64 `env:"ALGOREALM_APP_ID"`
	Mnemonic       string `env:"ALGOREALM_MNEMONIC"`
	TelemetryDB    string `env:"ALGOREALM_TELEMETRY_DB"`
	MinBalance     uint64 `env:"ALGOREALM_MIN_BALANCE"`

	// Args are the positional arguments left after flag parsing: the
	// subcommand and its operands.
	Args []string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.AlgodURL, "algod-url", cfg.AlgodURL, "The algod node URL")
	fs.StringVar(&cfg.AlgodToken, "algod-token", cfg.AlgodToken, "The algod API token")
	fs.StringVar(&cfg.DeploymentPath, "deployment", cfg.DeploymentPath, "Path to the deployment descriptor JSON")
	fs.Uint64Var(&cfg.AppID, "app-id", cfg.AppID, "The application id (overrides the deployment descriptor)")
	fs.StringVar(&cfg.TelemetryDB, "telemetry-db", cfg.TelemetryDB, "Path to the telemetry SQLite database (empty disables recording)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()
	return cfg, nil
}

// Run executes one realm subcommand.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRealm, func(ctx context.Context) error {
		svc, cleanup, err := buildService(cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		return dispatch(ctx, svc, os.Stdout, cfg.Args)
	})
}

// buildService wires the ledger adapter, contract client, funding guard,
// and telemetry into a Service for the configured account.
func buildService(cfg Config) (*service.Service, func(), error) {
	deployment, err := game.LoadDeployment(cfg.DeploymentPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load deployment: %w", err)
	}
	if cfg.AppID != 0 {
		deployment.AppID = cfg.AppID
	}

	if cfg.Mnemonic == "" {
		return nil, nil, fmt.Errorf("ALGOREALM_MNEMONIC is required")
	}
	key, err := mnemonic.ToPrivateKey(cfg.Mnemonic)
	if err != nil {
		return nil, nil, fmt.Errorf("decode mnemonic: %w", err)
	}
	account, err := crypto.AccountFromPrivateKey(key)
	if err != nil {
		return nil, nil, fmt.Errorf("derive account: %w", err)
	}
	signer := transaction.BasicAccountTransactionSigner{Account: account}

	algodClient, err := algod.MakeClient(cfg.AlgodURL, cfg.AlgodToken)
	if err != nil {
		return nil, nil, fmt.Errorf("algod client: %w", err)
	}

	actions, err := contract.New(algodClient, deployment.AppID, account.Address.String(), signer)
	if err != nil {
		return nil, nil, err
	}
	reader := ledger.New(algodClient)

	cleanup := func() {}
	var emitter *telemetry.Emitter
	if cfg.TelemetryDB != "" {
		store, err := sqlite.Open(cfg.TelemetryDB)
		if err != nil {
			return nil, nil, fmt.Errorf("open telemetry store: %w", err)
		}
		cleanup = func() {
			if err := store.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "close telemetry store: %v\n", err)
			}
		}
		emitter = telemetry.NewEmitter(store)
	}

	svc, err := service.New(service.Deps{
		Deployment: deployment,
		Account:    account.Address.String(),
		Ledger:     reader,
		Actions:    actions,
		Guard:      funding.New(reader),
		Emitter:    emitter,
		MinBalance: cfg.MinBalance,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

const usage = `usage: realm <command> [arguments]

commands:
  register <player-name>
  create-item <recipient> <name> <type> <rarity> <attack> <defense> <effect>
  recover <original-item-id> <proof> <new-recipient>
  reissue <event-name> <proof> <recipient>
  craft <material1-id> <material2-id> <recipe-id>
  claim <item-id>
  advance-season
  items
  info
  stats [address]
  recovery-status
`

// dispatch validates subcommand arguments and runs the matching flow.
// Argument validation happens before the service is touched so usage errors
// never reach the network.
func dispatch(ctx context.Context, svc *service.Service, w io.Writer, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(w, usage)
		return fmt.Errorf("a command is required")
	}
	command, rest := args[0], args[1:]
	switch command {
	case "register":
		if len(rest) != 1 {
			return fmt.Errorf("usage: realm register <player-name>")
		}
		result, err := svc.RegisterPlayer(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", result.Message)
		fmt.Fprintf(w, "opt-in tx: %s\nregister tx: %s\n", result.OptInTxID, result.RegisterTxID)
		fmt.Fprintf(w, "level %d, %d players in season %d\n",
			result.Stats.Level, result.Info.TotalPlayers, result.Info.CurrentSeason)
		return nil

	case "create-item":
		if len(rest) != 7 {
			return fmt.Errorf("usage: realm create-item <recipient> <name> <type> <rarity> <attack> <defense> <effect>")
		}
		attack, err := parseOperand("attack", rest[4])
		if err != nil {
			return err
		}
		defense, err := parseOperand("defense", rest[5])
		if err != nil {
			return err
		}
		result, err := svc.CreateItem(ctx, service.CreateItemInput{
			Recipient:     rest[0],
			ItemName:      rest[1],
			ItemType:      rest[2],
			Rarity:        rest[3],
			AttackPower:   attack,
			DefensePower:  defense,
			SpecialEffect: rest[6],
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "created asset %d (tx %s), %d items total\n",
			result.AssetID, result.TxID, result.Info.TotalItems)
		return nil

	case "recover":
		if len(rest) != 3 {
			return fmt.Errorf("usage: realm recover <original-item-id> <proof> <new-recipient>")
		}
		result, err := svc.RecoverItem(ctx, rest[0], rest[1], rest[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "recovered as asset %d (tx %s), %d recoveries used\n",
			result.AssetID, result.TxID, result.Stats.RecoveryCount)
		return nil

	case "reissue":
		if len(rest) != 3 {
			return fmt.Errorf("usage: realm reissue <event-name> <proof> <recipient>")
		}
		result, err := svc.SeasonalReissue(ctx, rest[0], rest[1], rest[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "reissued as asset %d (tx %s)\n", result.AssetID, result.TxID)
		return nil

	case "craft":
		if len(rest) != 3 {
			return fmt.Errorf("usage: realm craft <material1-id> <material2-id> <recipe-id>")
		}
		material1, err := parseOperand("material1-id", rest[0])
		if err != nil {
			return err
		}
		material2, err := parseOperand("material2-id", rest[1])
		if err != nil {
			return err
		}
		recipe, err := parseOperand("recipe-id", rest[2])
		if err != nil {
			return err
		}
		result, err := svc.CraftItems(ctx, material1, material2, recipe)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "crafted asset %d (tx %s)\n", result.AssetID, result.TxID)
		return nil

	case "claim":
		if len(rest) != 1 {
			return fmt.Errorf("usage: realm claim <item-id>")
		}
		itemID, err := parseOperand("item-id", rest[0])
		if err != nil {
			return err
		}
		result, err := svc.ClaimItem(ctx, itemID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s (tx %s)\n", result.Message, result.TxID)
		return nil

	case "advance-season":
		if len(rest) != 0 {
			return fmt.Errorf("usage: realm advance-season")
		}
		result, err := svc.AdvanceSeason(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "season advanced to %d (tx %s)\n", result.Season, result.TxID)
		return nil

	case "items":
		if len(rest) != 0 {
			return fmt.Errorf("usage: realm items")
		}
		items, err := svc.ListGameItems(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(w, "no game items held")
			return nil
		}
		for _, item := range items {
			printItem(w, item)
		}
		return nil

	case "info":
		if len(rest) != 0 {
			return fmt.Errorf("usage: realm info")
		}
		info, err := svc.GameInfo(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "players: %d\nitems created: %d\nseason: %d\n",
			info.TotalPlayers, info.TotalItems, info.CurrentSeason)
		return nil

	case "stats":
		if len(rest) > 1 {
			return fmt.Errorf("usage: realm stats [address]")
		}
		address := svc.ActiveAccount()
		if len(rest) == 1 {
			address = rest[0]
		}
		stats, err := svc.PlayerStats(ctx, address)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: level %d, %d xp, %d recoveries\n",
			address, stats.Level, stats.Experience, stats.RecoveryCount)
		return nil

	case "recovery-status":
		if len(rest) != 0 {
			return fmt.Errorf("usage: realm recovery-status")
		}
		status, err := svc.RecoveryStatus(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "recoveries used: %d of %d\n", status.Used, status.Max)
		return nil

	default:
		fmt.Fprint(w, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printItem(w io.Writer, item game.GameItem) {
	if item.Unavailable {
		fmt.Fprintf(w, "asset %d: %s (details unavailable)\n", item.AssetID, item.Name)
		return
	}
	owner := "owner unknown"
	if item.OwnerKnown {
		if item.IsOwner {
			owner = "owned by you"
		} else {
			owner = "registered to " + item.Owner
		}
	}
	frozen := ""
	if item.Frozen {
		frozen = ", frozen"
	}
	fmt.Fprintf(w, "asset %d: %s [%s] x%d (%s%s)\n",
		item.AssetID, item.Name, item.UnitName, item.Amount, owner, frozen)
}

// parseOperand parses a decimal command operand.
func parseOperand(label, raw string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a decimal number, got %q", label, raw)
	}
	return v, nil
}
