// Package service composes the ledger adapter, contract client, and funding
// guard into the game flows: registration, item creation, recovery, and
// season advancement.
//
// A Service is scoped to one active account. When the account changes the
// caller constructs a new Service with a fresh contract client rather than
// mutating this one. Flows run to completion before returning and hold no
// long-lived locks; the caller serializes user-triggered mutating flows,
// typically with a single busy flag.
package service

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/seralva/algorealm/internal/contract"
	"github.com/seralva/algorealm/internal/errors"
	"github.com/seralva/algorealm/internal/funding"
	"github.com/seralva/algorealm/internal/game"
	"github.com/seralva/algorealm/internal/ledger"
	"github.com/seralva/algorealm/internal/storage"
	"github.com/seralva/algorealm/internal/telemetry"
)

// FlowState names a state in a flow's state machine, recorded via
// telemetry as the flow progresses.
type FlowState string

const (
	StateFunded           FlowState = "funded"
	StateOptedIn          FlowState = "opted_in"
	StateRegistered       FlowState = "registered"
	StateRecipientChecked FlowState = "recipient_checked"
	StateSubmitted        FlowState = "submitted"
	StateDone             FlowState = "done"
	StateFailed           FlowState = "failed"
)

// Flow names for telemetry.
const (
	flowRegister      = "register_player"
	flowCreateItem    = "create_item"
	flowRecoverItem   = "recover_item"
	flowReissue       = "seasonal_reissue"
	flowCraft         = "craft_items"
	flowAdvanceSeason = "advance_season"
	flowClaimItem     = "claim_item"
)

// defaultDetailConcurrency bounds the per-asset detail fetch fan-out during
// inventory listing.
const defaultDetailConcurrency = 4

// LedgerReader reads chain state. Reads are side-effect-free and safe to
// race.
type LedgerReader interface {
	AccountInfo(ctx context.Context, address string) (ledger.Account, error)
	AssetInfo(ctx context.Context, assetID uint64) (ledger.Asset, error)
}

// ActionClient issues calls against the deployed game contract on behalf of
// the active account.
type ActionClient interface {
	OptInRegister(ctx context.Context, playerName string) (contract.CallResult, error)
	Register(ctx context.Context, playerName string) (contract.CallResult, error)
	CreateGameItem(ctx context.Context, p contract.CreateItemParams) (contract.CallResult, error)
	RecoverLostItem(ctx context.Context, originalItemID uint64, proof []byte, newRecipient string) (contract.CallResult, error)
	SeasonalEventReissue(ctx context.Context, eventName string, proof []byte, recipient string) (contract.CallResult, error)
	CraftItems(ctx context.Context, material1, material2, recipeID uint64) (contract.CallResult, error)
	AdvanceSeason(ctx context.Context) (contract.CallResult, error)
	ClaimItem(ctx context.Context, itemID uint64) (contract.CallResult, error)
	GetPlayerStats(ctx context.Context, player string) (game.PlayerStats, error)
	GetGameInfo(ctx context.Context) (game.GameInfo, error)
	GetRecoveryStatus(ctx context.Context, player string) (game.RecoveryStatus, error)
	IsRegistered(ctx context.Context, address string) (bool, error)
	PlayerState(ctx context.Context, address string) (game.PlayerStats, error)
}

// Guard checks account funding before fee-bearing first interactions.
type Guard interface {
	EnsureFunded(ctx context.Context, address string, minBalance uint64) error
}

// Deps are the injected collaborators for a Service.
type Deps struct {
	Deployment game.Deployment
	Account    string
	Ledger     LedgerReader
	Actions    ActionClient
	Guard      Guard
	Emitter    *telemetry.Emitter
	Clock      func() time.Time
	// MinBalance overrides the funding guard threshold in microalgos.
	// Zero means funding.DefaultMinBalance.
	MinBalance uint64
	// DetailConcurrency bounds the inventory detail fetch fan-out. Zero
	// means the default.
	DetailConcurrency uint64
}

// Service orchestrates game flows for one active account.
type Service struct {
	deployment        game.Deployment
	account           string
	ledger            LedgerReader
	actions           ActionClient
	guard             Guard
	emitter           *telemetry.Emitter
	tracer            trace.Tracer
	clock             func() time.Time
	minBalance        uint64
	detailConcurrency int

	mu sync.Mutex
	// created is the session-local item log, most recent first.
	created []game.CreatedItemRecord
	// registered latches true once registration is observed. It is never
	// reset locally.
	registered bool
}

// New creates a Service bound to one account session.
func New(deps Deps) (*Service, error) {
	if err := deps.Deployment.Validate(); err != nil {
		return nil, err
	}
	if deps.Account == "" {
		return nil, errors.New(errors.CodeInvalidArgument, "account address is required")
	}
	if deps.Ledger == nil || deps.Actions == nil || deps.Guard == nil {
		return nil, errors.New(errors.CodeInvalidArgument, "ledger, actions, and guard dependencies are required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	minBalance := deps.MinBalance
	if minBalance == 0 {
		minBalance = funding.DefaultMinBalance
	}
	concurrency := int(deps.DetailConcurrency)
	if concurrency <= 0 {
		concurrency = defaultDetailConcurrency
	}
	return &Service{
		deployment:        deps.Deployment,
		account:           deps.Account,
		ledger:            deps.Ledger,
		actions:           deps.Actions,
		guard:             deps.Guard,
		emitter:           deps.Emitter,
		tracer:            otel.Tracer("github.com/seralva/algorealm/internal/game/service"),
		clock:             clock,
		minBalance:        minBalance,
		detailConcurrency: concurrency,
	}, nil
}

// ActiveAccount returns the address this service acts for.
func (s *Service) ActiveAccount() string {
	return s.account
}

// IsGameMaster reports whether the active account is the configured game
// master. UX short-circuit only; the contract enforces this authoritatively.
func (s *Service) IsGameMaster() bool {
	return s.deployment.IsGameMaster(s.account)
}

// emit records a flow transition. Telemetry failures are swallowed; flows
// never fail because recording did.
func (s *Service) emit(ctx context.Context, flow string, state FlowState, err error) {
	event := storage.TelemetryEvent{
		Timestamp: s.clock().UTC(),
		Flow:      flow,
		State:     string(state),
		Actor:     s.account,
	}
	if err != nil {
		event.Code = string(errors.GetCode(err))
		event.Message = err.Error()
	}
	_ = s.emitter.Emit(ctx, event)
}

// startSpan opens a tracing span for one flow invocation.
func (s *Service) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name)
}

// finishSpan closes a span, recording the outcome.
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, string(errors.GetCode(err)))
	}
	span.End()
}

// markRegistered latches the monotonic registration flag.
func (s *Service) markRegistered() {
	s.mu.Lock()
	s.registered = true
	s.mu.Unlock()
}

func (s *Service) wasRegistered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registered
}

// recordCreatedItem prepends a record to the session log.
func (s *Service) recordCreatedItem(record game.CreatedItemRecord) {
	s.mu.Lock()
	s.created = append([]game.CreatedItemRecord{record}, s.created...)
	s.mu.Unlock()
}

// CreatedItems returns the session's created-item log, most recent first.
// The log is a convenience index, never a source of truth for ownership.
func (s *Service) CreatedItems() []game.CreatedItemRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]game.CreatedItemRecord, len(s.created))
	copy(out, s.created)
	return out
}
