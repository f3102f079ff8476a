package factory

import (
	"errors"
	"fmt"
)

// ErrUnsupportedStep is returned for a step name or value outside of the script.
var ErrUnsupportedStep = errors.New("unsupported step")

// Step is a kind of extrinsic produced by the factory.
type Step uint8

// Zero value of Step is not a valid step.
const (
	BalancesTransfer Step = iota + 1
	NicksSetName
	NicksClearName
	AuthorshipSetUncles
	StakingBond
	StakingValidate
	StakingNominate
	StakingBondExtra
	StakingUnbond
	StakingRebond
	StakingWithdrawUnbonded
)

var stepNames = [...]string{
	BalancesTransfer:        "balances_transfer",
	NicksSetName:            "nicks_set_name",
	NicksClearName:          "nicks_clear_name",
	AuthorshipSetUncles:     "authorship_set_uncles",
	StakingBond:             "staking_bond",
	StakingValidate:         "staking_validate",
	StakingNominate:         "staking_nominate",
	StakingBondExtra:        "staking_bond_extra",
	StakingUnbond:           "staking_unbond",
	StakingRebond:           "staking_rebond",
	StakingWithdrawUnbonded: "staking_withdraw_unbonded",
}

// Steps returns all valid steps in declaration order.
func Steps() []Step {
	steps := make([]Step, 0, len(stepNames)-1)
	for s := BalancesTransfer; s <= StakingWithdrawUnbonded; s++ {
		steps = append(steps, s)
	}
	return steps
}

// ParseStep returns the step with the canonical name.
func ParseStep(name string) (Step, error) {
	for s := BalancesTransfer; s <= StakingWithdrawUnbonded; s++ {
		if stepNames[s] == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedStep, name)
}

// Valid returns true if s is one of the declared steps.
func (s Step) Valid() bool {
	return s >= BalancesTransfer && s <= StakingWithdrawUnbonded
}

// String returns the canonical name of the step.
func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("step(%d)", uint8(s))
	}
	return stepNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Step) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedStep, uint8(s))
	}
	return []byte(stepNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Step) UnmarshalText(text []byte) error {
	parsed, err := ParseStep(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// transitions is the staking lifecycle. Steps missing from the table
// transition to themselves.
var transitions = map[Step]Step{
	StakingBond:             StakingValidate,
	StakingValidate:         StakingNominate,
	StakingNominate:         StakingBondExtra,
	StakingBondExtra:        StakingUnbond,
	StakingUnbond:           StakingRebond,
	StakingRebond:           StakingWithdrawUnbonded,
	StakingWithdrawUnbonded: StakingBondExtra,
}

// Transition returns the step that follows s.
func Transition(s Step) Step {
	if next, exists := transitions[s]; exists {
		return next
	}
	return s
}
