package extrinsic

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-txfactory/common/types"
)

// ErrInvalidRewardDestination is returned when decoding an unknown reward destination.
var ErrInvalidRewardDestination = errors.New("invalid reward destination")

const maxNominations = 1 << 10

// RewardDestination selects where staking rewards are paid.
type RewardDestination uint8

const (
	// RewardStaked pays into the stash and increases the amount at stake.
	RewardStaked RewardDestination = iota
	// RewardStash pays into the stash without increasing the stake.
	RewardStash
	// RewardController pays into the controller account.
	RewardController
)

// String implements fmt.Stringer.
func (r RewardDestination) String() string {
	switch r {
	case RewardStaked:
		return "staked"
	case RewardStash:
		return "stash"
	case RewardController:
		return "controller"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(r))
	}
}

// EncodeScale implements scale codec interface.
func (r *RewardDestination) EncodeScale(e *scale.Encoder) (int, error) {
	if *r > RewardController {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRewardDestination, *r)
	}
	return scale.EncodeByte(e, byte(*r))
}

// DecodeScale implements scale codec interface.
func (r *RewardDestination) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeByte(d)
	if err != nil {
		return n, err
	}
	if RewardDestination(value) > RewardController {
		return n, fmt.Errorf("%w: %d", ErrInvalidRewardDestination, value)
	}
	*r = RewardDestination(value)
	return n, nil
}

// ValidatorPrefs are the preferences a validator declares.
type ValidatorPrefs struct {
	Commission types.Perbill
}

// EncodeScale implements scale codec interface.
func (p *ValidatorPrefs) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeCompact32(e, uint32(p.Commission))
}

// DecodeScale implements scale codec interface.
func (p *ValidatorPrefs) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeCompact32(d)
	if err != nil {
		return n, err
	}
	p.Commission = types.Perbill(value)
	return n, nil
}

// Bond locks Value of the stash (signer) under Controller.
type Bond struct {
	Controller types.Address
	Value      uint64
	Payee      RewardDestination
}

func (*Bond) call() {}

// Index implements Call.
func (*Bond) Index() CallIndex { return CallIndex{PalletStaking, 0} }

// Name implements Call.
func (*Bond) Name() string { return "staking.bond" }

// EncodeScale implements scale codec interface.
func (c *Bond) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := c.Controller.EncodeScale(e)
	if err != nil {
		return total, err
	}
	n, err := scale.EncodeCompact64(e, c.Value)
	total += n
	if err != nil {
		return total, err
	}
	n, err = c.Payee.EncodeScale(e)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (c *Bond) DecodeScale(d *scale.Decoder) (int, error) {
	total, err := c.Controller.DecodeScale(d)
	if err != nil {
		return total, err
	}
	value, n, err := scale.DecodeCompact64(d)
	total += n
	if err != nil {
		return total, err
	}
	c.Value = value
	n, err = c.Payee.DecodeScale(d)
	return total + n, err
}

// BondExtra adds MaxAdditional of free balance to the stake.
type BondExtra struct {
	MaxAdditional uint64
}

func (*BondExtra) call() {}

// Index implements Call.
func (*BondExtra) Index() CallIndex { return CallIndex{PalletStaking, 1} }

// Name implements Call.
func (*BondExtra) Name() string { return "staking.bond_extra" }

// EncodeScale implements scale codec interface.
func (c *BondExtra) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeCompact64(e, c.MaxAdditional)
}

// DecodeScale implements scale codec interface.
func (c *BondExtra) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeCompact64(d)
	if err != nil {
		return n, err
	}
	c.MaxAdditional = value
	return n, nil
}

// Unbond schedules Value of the stake to be unlocked.
type Unbond struct {
	Value uint64
}

func (*Unbond) call() {}

// Index implements Call.
func (*Unbond) Index() CallIndex { return CallIndex{PalletStaking, 2} }

// Name implements Call.
func (*Unbond) Name() string { return "staking.unbond" }

// EncodeScale implements scale codec interface.
func (c *Unbond) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeCompact64(e, c.Value)
}

// DecodeScale implements scale codec interface.
func (c *Unbond) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeCompact64(d)
	if err != nil {
		return n, err
	}
	c.Value = value
	return n, nil
}

// WithdrawUnbonded releases unlocked chunks of the stake.
type WithdrawUnbonded struct{}

func (*WithdrawUnbonded) call() {}

// Index implements Call.
func (*WithdrawUnbonded) Index() CallIndex { return CallIndex{PalletStaking, 3} }

// Name implements Call.
func (*WithdrawUnbonded) Name() string { return "staking.withdraw_unbonded" }

// EncodeScale implements scale codec interface.
func (*WithdrawUnbonded) EncodeScale(*scale.Encoder) (int, error) { return 0, nil }

// DecodeScale implements scale codec interface.
func (*WithdrawUnbonded) DecodeScale(*scale.Decoder) (int, error) { return 0, nil }

// Validate declares the intention to validate.
type Validate struct {
	Prefs ValidatorPrefs
}

func (*Validate) call() {}

// Index implements Call.
func (*Validate) Index() CallIndex { return CallIndex{PalletStaking, 4} }

// Name implements Call.
func (*Validate) Name() string { return "staking.validate" }

// EncodeScale implements scale codec interface.
func (c *Validate) EncodeScale(e *scale.Encoder) (int, error) {
	return c.Prefs.EncodeScale(e)
}

// DecodeScale implements scale codec interface.
func (c *Validate) DecodeScale(d *scale.Decoder) (int, error) {
	return c.Prefs.DecodeScale(d)
}

// Nominate declares the intention to nominate Targets.
type Nominate struct {
	Targets []types.Address
}

func (*Nominate) call() {}

// Index implements Call.
func (*Nominate) Index() CallIndex { return CallIndex{PalletStaking, 5} }

// Name implements Call.
func (*Nominate) Name() string { return "staking.nominate" }

// EncodeScale implements scale codec interface.
func (c *Nominate) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeStructSliceWithLimit(e, c.Targets, maxNominations)
}

// DecodeScale implements scale codec interface.
func (c *Nominate) DecodeScale(d *scale.Decoder) (int, error) {
	targets, n, err := scale.DecodeStructSliceWithLimit[types.Address](d, maxNominations)
	if err != nil {
		return n, err
	}
	if len(targets) == 0 {
		targets = nil
	}
	c.Targets = targets
	return n, nil
}

// Rebond locks Value of the unlocking chunks again.
type Rebond struct {
	Value uint64
}

func (*Rebond) call() {}

// Index implements Call.
func (*Rebond) Index() CallIndex { return CallIndex{PalletStaking, 17} }

// Name implements Call.
func (*Rebond) Name() string { return "staking.rebond" }

// EncodeScale implements scale codec interface.
func (c *Rebond) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeCompact64(e, c.Value)
}

// DecodeScale implements scale codec interface.
func (c *Rebond) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeCompact64(d)
	if err != nil {
		return n, err
	}
	c.Value = value
	return n, nil
}
