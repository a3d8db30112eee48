package spend

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/heirloomhq/libheirloom-go/network"
	"github.com/heirloomhq/libheirloom-go/tx"
	"github.com/heirloomhq/libheirloom-go/wallet"
)

// DefaultRefreshGrace is how long after a successful broadcast the wallet
// refresh is scheduled, giving the relay network a moment to register the
// transaction before balances are re-queried.
const DefaultRefreshGrace = 5 * time.Second

// FeeSource names how the fee rate for an attempt is chosen: a recommended
// tier by name, or an explicit rate in sats/vbyte. Exactly one must be set;
// a custom rate takes precedence when both are.
type FeeSource struct {
	Tier       string
	CustomRate uint64
}

// Request describes one send attempt.
type Request struct {
	RecipientAddress string
	AmountSats       uint64
	Fee              FeeSource
}

// Receipt is the result of a successful send.
type Receipt struct {
	TxID       string
	FeeSats    uint64
	ChangeSats uint64
}

// Observer receives every state transition of a send attempt, in order, on
// the calling goroutine.
type Observer func(State)

// Config carries the orchestrator's optional collaborators.
type Config struct {
	// Observer, if set, is invoked on every state transition.
	Observer Observer

	// Refresh, if set, is scheduled RefreshGrace after a successful
	// broadcast so the wallet can re-query its balance.
	Refresh func()

	// RefreshGrace overrides DefaultRefreshGrace when positive.
	RefreshGrace time.Duration
}

// Orchestrator drives a send attempt through its states. At most one attempt
// runs at a time; concurrent calls fail fast with ErrBusy. A failed attempt
// leaves no residue: the orchestrator returns to Idle and the next call
// starts clean. There are no automatic retries.
type Orchestrator struct {
	svc     network.ChainService
	session *wallet.Session
	builder *tx.Builder
	params  *chaincfg.Params
	cfg     Config

	running atomic.Bool
	state   atomic.Int32
}

// NewOrchestrator creates an orchestrator spending from session over svc.
func NewOrchestrator(svc network.ChainService, session *wallet.Session, params *chaincfg.Params, cfg Config) *Orchestrator {
	return &Orchestrator{
		svc:     svc,
		session: session,
		builder: tx.NewBuilder(params),
		params:  params,
		cfg:     cfg,
	}
}

// State returns the current state of the orchestrator.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

func (o *Orchestrator) setState(s State) {
	o.state.Store(int32(s))
	if o.cfg.Observer != nil {
		o.cfg.Observer(s)
	}
}

// Send runs one complete send attempt and returns its receipt.
//
// Validation happens before any network traffic, fee rates are resolved
// fresh per attempt, and broadcast is the last step. On any failure the
// attempt transitions to Failed and then back to Idle; the caller decides
// whether to resubmit.
func (o *Orchestrator) Send(ctx context.Context, req Request) (*Receipt, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer o.running.Store(false)

	receipt, err := o.run(ctx, req)
	if err != nil {
		o.setState(StateFailed)
		o.setState(StateIdle)
		return nil, err
	}
	o.setState(StateSucceeded)
	o.setState(StateIdle)

	if o.cfg.Refresh != nil {
		grace := o.cfg.RefreshGrace
		if grace <= 0 {
			grace = DefaultRefreshGrace
		}
		time.AfterFunc(grace, o.cfg.Refresh)
	}
	return receipt, nil
}

func (o *Orchestrator) run(ctx context.Context, req Request) (*Receipt, error) {
	o.setState(StateValidating)
	if err := o.validate(req); err != nil {
		return nil, err
	}

	o.setState(StateFetchingUtxos)
	rate, err := o.resolveFeeRate(ctx, req.Fee)
	if err != nil {
		return nil, err
	}
	unspent, err := o.svc.ListUnspent(ctx, o.session.Address)
	if err != nil {
		return nil, fmt.Errorf("spend: list unspent: %w", err)
	}
	candidates := make([]tx.UTXO, 0, len(unspent))
	for _, u := range unspent {
		if u.Confirmed {
			candidates = append(candidates, tx.UTXO{
				TxID: u.TxID, Vout: u.Vout, Value: u.Value, Confirmed: true,
			})
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoConfirmedUTXOs
	}

	o.setState(StateSelectingCoins)
	sel, err := tx.SelectCoins(candidates, req.AmountSats, rate, tx.DefaultAssumedOutputs)
	if err != nil {
		return nil, fmt.Errorf("spend: select coins: %w", err)
	}

	o.setState(StateFetchingPrevTxs)
	inputs, err := tx.FetchPrevInputs(ctx, sel.UTXOs, tx.RawTxFetcherFunc(o.svc.RawTxHex))
	if err != nil {
		return nil, fmt.Errorf("spend: fetch previous transactions: %w", err)
	}

	o.setState(StateBuilding)
	plan, err := o.builder.BuildPlan(sel, inputs, req.RecipientAddress, req.AmountSats, o.session.Address)
	if err != nil {
		return nil, fmt.Errorf("spend: build plan: %w", err)
	}

	o.setState(StateSigning)
	final, err := tx.SignAndFinalize(plan, o.session.Signer())
	if err != nil {
		return nil, fmt.Errorf("spend: sign: %w", err)
	}

	o.setState(StateBroadcasting)
	txid, err := o.svc.BroadcastTx(ctx, final.Hex)
	if err != nil {
		return nil, fmt.Errorf("spend: broadcast: %w", err)
	}

	return &Receipt{TxID: txid, FeeSats: plan.Fee, ChangeSats: plan.ChangeValue()}, nil
}

// validate checks the request without touching the network: address first,
// then amount, then fee source. Only the tier name's syntax is checked here;
// the actual rate is resolved later, right before UTXOs are fetched.
func (o *Orchestrator) validate(req Request) error {
	addr, err := btcutil.DecodeAddress(req.RecipientAddress, o.params)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidAddress, req.RecipientAddress, err)
	}
	if !addr.IsForNet(o.params) {
		return fmt.Errorf("%w: %s: wrong network", ErrInvalidAddress, req.RecipientAddress)
	}

	if req.AmountSats == 0 {
		return ErrAmountNotPositive
	}
	if req.AmountSats < tx.DustThreshold {
		return fmt.Errorf("%w: %d sats (minimum %d)", ErrAmountBelowDust, req.AmountSats, tx.DustThreshold)
	}

	if req.Fee.CustomRate == 0 {
		if req.Fee.Tier == "" {
			return fmt.Errorf("%w: no tier or custom rate", ErrInvalidFeeRate)
		}
		if !network.KnownTier(req.Fee.Tier) {
			return fmt.Errorf("%w: unknown tier %q", ErrInvalidFeeRate, req.Fee.Tier)
		}
	}
	return nil
}

// resolveFeeRate turns the fee source into a concrete sats/vbyte rate,
// querying the recommendation endpoint when a tier is named.
func (o *Orchestrator) resolveFeeRate(ctx context.Context, src FeeSource) (uint64, error) {
	if src.CustomRate > 0 {
		return src.CustomRate, nil
	}
	tiers, err := o.svc.RecommendedFees(ctx)
	if err != nil {
		return 0, fmt.Errorf("spend: recommended fees: %w", err)
	}
	rate, ok := tiers.Rate(src.Tier)
	if !ok || rate == 0 {
		return 0, fmt.Errorf("%w: tier %q resolved to %d", ErrInvalidFeeRate, src.Tier, rate)
	}
	return rate, nil
}
