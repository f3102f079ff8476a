package codec

import (
	"testing"

	"github.com/spacemeshos/go-scale"
	"github.com/stretchr/testify/require"
)

type compact uint64

func (c *compact) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeCompact64(e, uint64(*c))
}

func (c *compact) DecodeScale(d *scale.Decoder) (int, error) {
	v, n, err := scale.DecodeCompact64(d)
	*c = compact(v)
	return n, err
}

func TestEncodeDecode(t *testing.T) {
	in := compact(1 << 20)
	buf, err := Encode(&in)
	require.NoError(t, err)
	require.Equal(t, buf, MustEncode(&in))

	var out compact
	require.NoError(t, Decode(buf, &out))
	require.Equal(t, in, out)
}

func TestDecodeTrailingBytes(t *testing.T) {
	in := compact(1)
	buf := append(MustEncode(&in), 0xff)
	var out compact
	require.ErrorContains(t, Decode(buf, &out), "1 trailing bytes")
}

func TestEncodeAll(t *testing.T) {
	a, b := compact(1), compact(1<<16)
	buf, err := EncodeAll(&a, &b)
	require.NoError(t, err)
	require.Equal(t, append(MustEncode(&a), MustEncode(&b)...), buf)
}
