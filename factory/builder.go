// Package factory scripts the extrinsics produced for a benchmark: which
// call comes next and how it is built from the chain context.
package factory

import (
	"errors"
	"fmt"
	"math"

	"github.com/seehuhn/mt19937"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-txfactory/common/types"
	"github.com/spacemeshos/go-txfactory/extrinsic"
	"github.com/spacemeshos/go-txfactory/signing"
)

const (
	// DefaultUncles is the number of headers in set_uncles calls.
	DefaultUncles = 10
	// Nominations is the number of targets in nominate calls.
	Nominations = 16
	// DefaultNickName is the name used by set_name calls.
	DefaultNickName = "txfactory"
)

// Params are the chain constants the builder depends on.
type Params struct {
	MinimumBalance uint64 `mapstructure:"minimum-balance"`
	NickName       string `mapstructure:"nick-name"`
	Uncles         int    `mapstructure:"uncles"`
}

// DefaultParams returns params with the defaults of the development chain.
func DefaultParams() Params {
	return Params{
		MinimumBalance: 1_000_000_000_000,
		NickName:       DefaultNickName,
		Uncles:         DefaultUncles,
	}
}

// Validate returns an error if calls can't be built from params.
// Staking steps use twice the minimum balance, so it must not overflow.
func (p *Params) Validate() error {
	if p.MinimumBalance > math.MaxUint64/2 {
		return fmt.Errorf("minimum balance %d overflows staking amounts", p.MinimumBalance)
	}
	if p.Uncles < 0 {
		return errors.New("uncles must not be negative")
	}
	return nil
}

// Context is the chain context of a single call.
type Context struct {
	Sender      types.AccountID
	Destination types.AccountID
	Amount      uint64
	BlockNo     uint32
	GenesisHash types.Hash256
	// Entropy seeds placeholder hashes. Equal contexts build equal calls.
	Entropy uint64
}

// Opt modifies Builder.
type Opt func(*Builder)

// WithLogger sets the logger used by Builder.
func WithLogger(logger *zap.Logger) Opt {
	return func(b *Builder) {
		b.logger = logger
	}
}

// Builder builds calls for script steps.
type Builder struct {
	logger *zap.Logger
	params Params
}

// NewBuilder returns a builder for the chain described by params.
func NewBuilder(params Params, opts ...Opt) *Builder {
	b := &Builder{
		logger: zap.NewNop(),
		params: params,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.params.Uncles <= 0 {
		b.params.Uncles = DefaultUncles
	}
	return b
}

// Build returns the call for step and the step that follows it.
func (b *Builder) Build(step Step, ctx Context) (extrinsic.Call, Step, error) {
	var call extrinsic.Call
	switch step {
	case BalancesTransfer:
		call = &extrinsic.Transfer{
			Dest:  types.AddressFromID(ctx.Destination),
			Value: ctx.Amount,
		}
	case NicksSetName:
		call = &extrinsic.SetName{Nick: []byte(b.params.NickName)}
	case NicksClearName:
		call = &extrinsic.ClearName{}
	case AuthorshipSetUncles:
		call = &extrinsic.SetUncles{Uncles: b.uncles(ctx)}
	case StakingBond:
		call = &extrinsic.Bond{
			Controller: types.AddressFromID(ctx.Destination),
			Value:      ctx.Amount,
			Payee:      extrinsic.RewardController,
		}
	case StakingValidate:
		call = &extrinsic.Validate{
			Prefs: extrinsic.ValidatorPrefs{Commission: types.PerbillFromRational(1, 10)},
		}
	case StakingNominate:
		targets := make([]types.Address, Nominations)
		for i := range targets {
			targets[i] = types.AddressFromID(ctx.Destination)
		}
		call = &extrinsic.Nominate{Targets: targets}
	case StakingBondExtra:
		call = &extrinsic.BondExtra{MaxAdditional: 2 * b.params.MinimumBalance}
	case StakingUnbond:
		call = &extrinsic.Unbond{Value: 2 * b.params.MinimumBalance}
	case StakingRebond:
		call = &extrinsic.Rebond{Value: b.params.MinimumBalance}
	case StakingWithdrawUnbonded:
		call = &extrinsic.WithdrawUnbonded{}
	default:
		return nil, step, fmt.Errorf("%w: %s", ErrUnsupportedStep, step)
	}
	next := Transition(step)
	b.logger.Debug("built call",
		zap.Stringer("step", step),
		zap.Stringer("next", next),
		zap.String("call", call.Name()),
		zap.Uint32("block", ctx.BlockNo),
	)
	return call, next, nil
}

// uncles returns placeholder headers. They all link to genesis and don't
// form a chain.
func (b *Builder) uncles(ctx Context) []types.Header {
	rng := mt19937.New()
	rng.Seed(int64(ctx.Entropy))
	randomHash := func() (h types.Hash256) {
		for i := 0; i < len(h); i += 8 {
			v := rng.Uint64()
			for j := 0; j < 8; j++ {
				h[i+j] = byte(v >> (8 * j))
			}
		}
		return h
	}
	headers := make([]types.Header, b.params.Uncles)
	for i := range headers {
		headers[i] = types.Header{
			ParentHash:     ctx.GenesisHash,
			Number:         max(1, ctx.BlockNo),
			ExtrinsicsRoot: randomHash(),
			StateRoot:      randomHash(),
		}
	}
	return headers
}

// Chain identifies the chain extrinsics are signed for.
type Chain struct {
	SpecVersion    uint32
	GenesisHash    types.Hash256
	PriorBlockHash types.Hash256
}

// Additional returns data signed together with extrinsics for the chain.
func (c Chain) Additional() extrinsic.AdditionalSigned {
	return extrinsic.AdditionalSigned{
		SpecVersion: c.SpecVersion,
		GenesisHash: c.GenesisHash,
		BlockHash:   c.PriorBlockHash,
	}
}

// CreateExtrinsic builds the call for the current step of st, signs it by
// signer with the nonce of st and advances st to the next step. The nonce
// is not increased.
func (b *Builder) CreateExtrinsic(
	st *State,
	signer signing.Signer,
	destination types.AccountID,
	amount uint64,
	chain Chain,
	entropy uint64,
) (*extrinsic.UncheckedExtrinsic, error) {
	step := st.Step()
	call, next, err := b.Build(step, Context{
		Sender:      signer.AccountID(),
		Destination: destination,
		Amount:      amount,
		BlockNo:     st.BlockNo(),
		GenesisHash: chain.GenesisHash,
		Entropy:     entropy,
	})
	if err != nil {
		return nil, err
	}
	ue, err := extrinsic.Sign(extrinsic.CheckedExtrinsic{
		Signed: &extrinsic.SignedBy{
			Sender: signer.AccountID(),
			Extra:  extrinsic.NewSignedExtra(st.Index(), uint64(st.BlockNo())),
		},
		Function: call,
	}, signer, chain.Additional())
	if err != nil {
		return nil, fmt.Errorf("sign %s: %w", step, err)
	}
	st.Advance(next)
	return ue, nil
}
