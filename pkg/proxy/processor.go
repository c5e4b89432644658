// Package proxy implements proxy_swap: it checks that the supplied accounts
// form a consistent set for one Orca whirlpool and forwards them, with the
// caller's swap parameters, to the whirlpool program's swap instruction.
//
// The relay computes nothing itself. Amounts, thresholds and price limits are
// passed through bit for bit; the whirlpool program enforces them.
package proxy

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/gtdvccc/orcacpi/pkg"
	"github.com/gtdvccc/orcacpi/pkg/pool/orca"
	"github.com/gtdvccc/orcacpi/pkg/sol"
	"go.uber.org/zap"
)

// Processor is the proxy_swap entry point. It holds no per-request state
// and is safe for concurrent use.
type Processor struct {
	invoker              pkg.Invoker
	whirlpoolProgramID   solana.PublicKey
	tickArrayDiagnostics bool
	logger               *zap.Logger
}

// Option configures a Processor
type Option func(*Processor)

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithWhirlpoolProgramID sets the program expected to own pool and tick
// array accounts. Defaults to the mainnet Orca Whirlpool program.
func WithWhirlpoolProgramID(id solana.PublicKey) Option {
	return func(p *Processor) {
		p.whirlpoolProgramID = id
	}
}

// WithTickArrayDiagnostics toggles decoding tick_array_0 for logging
func WithTickArrayDiagnostics(enabled bool) Option {
	return func(p *Processor) {
		p.tickArrayDiagnostics = enabled
	}
}

func NewProcessor(invoker pkg.Invoker, opts ...Option) *Processor {
	p := &Processor{
		invoker:              invoker,
		whirlpoolProgramID:   orca.ORCA_WHIRLPOOL_PROGRAM_ID,
		tickArrayDiagnostics: true,
		logger:               zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process decodes instruction data, loads and checks accounts, then runs the
// handler. Nothing is forwarded unless every check passes.
func (p *Processor) Process(ctx context.Context, accounts []*sol.AccountInfo, data []byte) error {
	logger := p.logger.With(zap.String("request_id", uuid.NewString()))

	args, err := DecodeProxySwapArgs(data)
	if err != nil {
		logger.Warn("rejected instruction", zap.Error(err))
		return err
	}

	accs, err := LoadProxySwapAccounts(accounts, p.whirlpoolProgramID)
	if err != nil {
		logger.Warn("rejected accounts", zap.Error(err))
		return err
	}

	return p.proxySwap(ctx, logger, accs, args)
}

// ProxySwap runs the handler on already loaded accounts.
func (p *Processor) ProxySwap(ctx context.Context, accs *ProxySwapAccounts, args ProxySwapArgs) error {
	return p.proxySwap(ctx, p.logger.With(zap.String("request_id", uuid.NewString())), accs, args)
}

func (p *Processor) proxySwap(ctx context.Context, logger *zap.Logger, accs *ProxySwapAccounts, args ProxySwapArgs) error {
	logger = logger.With(zap.Stringer("whirlpool", accs.Whirlpool.Key))

	if p.tickArrayDiagnostics {
		p.logDiagnostics(logger, accs)
	}

	logger.Info("forwarding whirlpool swap",
		zap.Stringer("program", accs.WhirlpoolProgram.Key),
		zap.Uint64("amount", args.Amount),
		zap.Uint64("other_amount_threshold", args.OtherAmountThreshold),
		zap.String("sqrt_price_limit", args.SqrtPriceLimit.String()),
		zap.Bool("amount_specified_is_input", args.AmountSpecifiedIsInput),
		zap.Bool("a_to_b", args.AToB),
	)

	if err := ForwardSwap(ctx, p.invoker, accs, args); err != nil {
		logger.Error("whirlpool swap failed", zap.Error(err))
		return err
	}
	return nil
}

// logDiagnostics reports the pool tick and the first tick array window.
// A decode failure is reported and otherwise ignored.
func (p *Processor) logDiagnostics(logger *zap.Logger, accs *ProxySwapAccounts) {
	logger.Debug("whirlpool state", zap.Int32("tick_current_index", accs.Pool.TickCurrentIndex))

	ta, err := ReadTickArray(accs.TickArray0)
	if err != nil {
		logger.Warn("tick array diagnostics unavailable", zap.Error(err))
		return
	}
	logger.Debug("tick array state", zap.Int32("start_tick_index", ta.StartTickIndex))
}

// ReadTickArray decodes a tick array account for inspection. Layout problems
// are reported as ErrDeserialization.
func ReadTickArray(acc *sol.AccountInfo) (*orca.WhirlpoolTickArray, error) {
	ta, err := orca.ReadTickArray(acc)
	if err != nil {
		return nil, ErrDeserialization.WithCause(err)
	}
	return ta, nil
}
