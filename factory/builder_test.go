package factory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spacemeshos/go-txfactory/common/types"
	"github.com/spacemeshos/go-txfactory/extrinsic"
	"github.com/spacemeshos/go-txfactory/signing"
)

func testBuilder(tb testing.TB) *Builder {
	return NewBuilder(Params{MinimumBalance: 500, NickName: "nick"}, WithLogger(zaptest.NewLogger(tb)))
}

func testContext() Context {
	return Context{
		Sender:      signing.DeriveAccountID(0),
		Destination: signing.DeriveAccountID(1),
		Amount:      1000,
		BlockNo:     7,
		GenesisHash: types.Hash256{0xee},
		Entropy:     42,
	}
}

func TestStakingCycle(t *testing.T) {
	b := testBuilder(t)
	step := StakingBond
	var visited []Step
	for i := 0; i < 8; i++ {
		visited = append(visited, step)
		_, next, err := b.Build(step, testContext())
		require.NoError(t, err)
		step = next
	}
	require.Equal(t, []Step{
		StakingBond,
		StakingValidate,
		StakingNominate,
		StakingBondExtra,
		StakingUnbond,
		StakingRebond,
		StakingWithdrawUnbonded,
		StakingBondExtra,
	}, visited)
}

func TestBuildCalls(t *testing.T) {
	b := testBuilder(t)
	ctx := testContext()
	dest := types.AddressFromID(ctx.Destination)
	for _, tc := range []struct {
		step Step
		call extrinsic.Call
	}{
		{BalancesTransfer, &extrinsic.Transfer{Dest: dest, Value: 1000}},
		{NicksSetName, &extrinsic.SetName{Nick: []byte("nick")}},
		{NicksClearName, &extrinsic.ClearName{}},
		{StakingBond, &extrinsic.Bond{Controller: dest, Value: 1000, Payee: extrinsic.RewardController}},
		{StakingValidate, &extrinsic.Validate{Prefs: extrinsic.ValidatorPrefs{Commission: 100_000_000}}},
		{StakingBondExtra, &extrinsic.BondExtra{MaxAdditional: 1000}},
		{StakingUnbond, &extrinsic.Unbond{Value: 1000}},
		{StakingRebond, &extrinsic.Rebond{Value: 500}},
		{StakingWithdrawUnbonded, &extrinsic.WithdrawUnbonded{}},
	} {
		t.Run(tc.step.String(), func(t *testing.T) {
			call, _, err := b.Build(tc.step, ctx)
			require.NoError(t, err)
			require.Equal(t, tc.call, call)
		})
	}
}

func TestBuildNominate(t *testing.T) {
	b := testBuilder(t)
	for _, seed := range []uint32{1, 2, 3} {
		ctx := testContext()
		ctx.Destination = signing.DeriveAccountID(seed)
		call, _, err := b.Build(StakingNominate, ctx)
		require.NoError(t, err)
		nominate, ok := call.(*extrinsic.Nominate)
		require.True(t, ok)
		require.Len(t, nominate.Targets, Nominations)
		for _, target := range nominate.Targets {
			require.Equal(t, types.AddressFromID(ctx.Destination), target)
		}
	}
}

func TestBuildUncles(t *testing.T) {
	b := testBuilder(t)
	for _, tc := range []struct {
		block  uint32
		number uint32
	}{
		{0, 1},
		{1, 1},
		{99, 99},
	} {
		ctx := testContext()
		ctx.BlockNo = tc.block
		call, next, err := b.Build(AuthorshipSetUncles, ctx)
		require.NoError(t, err)
		require.Equal(t, AuthorshipSetUncles, next)
		uncles := call.(*extrinsic.SetUncles).Uncles
		require.Len(t, uncles, DefaultUncles)
		seen := map[types.Hash256]struct{}{}
		for _, header := range uncles {
			require.Equal(t, tc.number, header.Number)
			require.Equal(t, ctx.GenesisHash, header.ParentHash)
			require.Empty(t, header.Digest.Logs)
			require.NotEqual(t, header.StateRoot, header.ExtrinsicsRoot)
			seen[header.StateRoot] = struct{}{}
		}
		require.Len(t, seen, DefaultUncles)

		again, _, err := b.Build(AuthorshipSetUncles, ctx)
		require.NoError(t, err)
		require.Equal(t, call, again)

		ctx.Entropy++
		other, _, err := b.Build(AuthorshipSetUncles, ctx)
		require.NoError(t, err)
		require.NotEqual(t, call, other)
	}
}

func TestBuildUnsupported(t *testing.T) {
	b := testBuilder(t)
	for _, step := range []Step{0, StakingWithdrawUnbonded + 1} {
		call, _, err := b.Build(step, testContext())
		require.ErrorIs(t, err, ErrUnsupportedStep)
		require.Nil(t, call)
	}
}

func TestParamsValidate(t *testing.T) {
	params := DefaultParams()
	require.NoError(t, params.Validate())

	params.MinimumBalance = math.MaxUint64 / 2
	require.NoError(t, params.Validate())
	params.MinimumBalance++
	require.Error(t, params.Validate())

	params = DefaultParams()
	params.Uncles = -1
	require.Error(t, params.Validate())
}

func TestCreateExtrinsic(t *testing.T) {
	b := testBuilder(t)
	signer := signing.DeriveAccountSecret(0)
	chain := Chain{SpecVersion: 3, GenesisHash: types.Hash256{1}, PriorBlockHash: types.Hash256{2}}
	st := NewState(StakingBond, 8)
	st.SetBlockNo(12)

	var steps []Step
	for !st.Done() {
		steps = append(steps, st.Step())
		ue, err := b.CreateExtrinsic(st, signer, signing.DeriveAccountID(1), 1000, chain, uint64(st.Index()))
		require.NoError(t, err)
		require.True(t, extrinsic.Verify(ue, chain.Additional()))
		require.Equal(t, st.Index(), ue.Signature.Extra.Nonce)
		require.Equal(t, types.MortalEra(extrinsic.EraPeriod, 12), ue.Signature.Extra.Era)
		st.IncreaseIndex()
	}
	require.Equal(t, []Step{
		StakingBond, StakingValidate, StakingNominate, StakingBondExtra,
		StakingUnbond, StakingRebond, StakingWithdrawUnbonded, StakingBondExtra,
	}, steps)
	require.Equal(t, StakingUnbond, st.Step())
}

func TestCreateExtrinsicUnsupported(t *testing.T) {
	st := NewState(0, 1)
	_, err := testBuilder(t).CreateExtrinsic(st, signing.DeriveAccountSecret(0), types.AccountID{}, 1, Chain{}, 0)
	require.ErrorIs(t, err, ErrUnsupportedStep)
	require.Equal(t, Step(0), st.Step())
}
