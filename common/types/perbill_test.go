package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPerbillFromRational(t *testing.T) {
	require.Equal(t, Perbill(100_000_000), PerbillFromRational(1, 10))
	require.Equal(t, Perbill(333_333_333), PerbillFromRational(1, 3))
	require.Equal(t, Perbill(666_666_667), PerbillFromRational(2, 3))
	require.Equal(t, Perbill(PerbillAccuracy), PerbillFromRational(5, 3))
	require.Equal(t, Perbill(PerbillAccuracy), PerbillFromRational(1, 0))
	require.Equal(t, Perbill(0), PerbillFromRational(0, 7))
	require.Equal(t, "10.0000000%", PerbillFromRational(1, 10).String())
}
