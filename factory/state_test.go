package factory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateIndex(t *testing.T) {
	for _, k := range []uint32{0, 1, 7, 1000} {
		st := NewState(BalancesTransfer, k)
		for i := uint32(0); i < k; i++ {
			require.False(t, st.Done())
			require.Equal(t, i, st.Index())
			st.IncreaseIndex()
		}
		require.Equal(t, k, st.Index())
		require.True(t, st.Done())
	}
}

func TestStateAccessors(t *testing.T) {
	st := NewState(StakingBond, 10)
	require.Equal(t, StakingBond, st.Step())
	require.EqualValues(t, 10, st.Count())
	require.Zero(t, st.BlockNo())
	require.Zero(t, st.Round())
	require.Zero(t, st.BlockInRound())
	require.Zero(t, st.StartNumber())

	st.SetBlockNo(5)
	st.SetRound(2)
	st.SetBlockInRound(3)
	st.SetStartNumber(4)
	st.Advance(StakingValidate)
	require.EqualValues(t, 5, st.BlockNo())
	require.EqualValues(t, 2, st.Round())
	require.EqualValues(t, 3, st.BlockInRound())
	require.EqualValues(t, 4, st.StartNumber())
	require.Equal(t, StakingValidate, st.Step())
}
