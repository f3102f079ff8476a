package extrinsic

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	fuzz "github.com/google/gofuzz"
	"github.com/spacemeshos/go-scale"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-txfactory/codec"
	"github.com/spacemeshos/go-txfactory/common/types"
	"github.com/spacemeshos/go-txfactory/hash"
	"github.com/spacemeshos/go-txfactory/signing"
)

func testAdditional() AdditionalSigned {
	return AdditionalSigned{
		SpecVersion: 1,
		GenesisHash: types.Hash256{1, 2, 3},
		BlockHash:   types.Hash256{4, 5, 6},
	}
}

func allCalls(dest types.AccountID) []Call {
	return []Call{
		&Transfer{Dest: types.AddressFromID(dest), Value: 1_000_000},
		&SetName{Nick: []byte("txfactory")},
		&ClearName{},
		&SetUncles{Uncles: []types.Header{{
			ParentHash: types.Hash256{7},
			Number:     1,
			StateRoot:  types.Hash256{8},
			Digest:     types.Digest{Logs: []types.DigestItem{{Other: []byte{1, 2}}}},
		}}},
		&Bond{Controller: types.AddressFromID(dest), Value: 10, Payee: RewardController},
		&Validate{Prefs: ValidatorPrefs{Commission: types.PerbillFromRational(1, 10)}},
		&Nominate{Targets: []types.Address{types.AddressFromID(dest), types.AddressFromIndex(300)}},
		&BondExtra{MaxAdditional: 20},
		&Unbond{Value: 20},
		&Rebond{Value: 10},
		&WithdrawUnbonded{},
	}
}

func fuzzer(seed int64) *fuzz.Fuzzer {
	return fuzz.NewWithSeed(seed).NilChance(0).Funcs(
		func(a *types.Address, c fuzz.Continue) {
			if c.RandBool() {
				*a = types.AddressFromIndex(c.Uint32())
				return
			}
			var id types.AccountID
			c.Fuzz(&id)
			*a = types.AddressFromID(id)
		},
		func(r *RewardDestination, c fuzz.Continue) {
			*r = RewardDestination(c.Intn(int(RewardController) + 1))
		},
		func(di *types.DigestItem, c fuzz.Continue) {
			c.Fuzz(&di.Other)
		},
	)
}

func TestCallRoundTrip(t *testing.T) {
	for _, call := range allCalls(types.AccountID{9}) {
		t.Run(call.Name(), func(t *testing.T) {
			buf, err := EncodeCallBytes(call)
			require.NoError(t, err)
			require.Equal(t, []byte{call.Index().Pallet, call.Index().Method}, buf[:2])

			decoded, n, err := DecodeCall(scale.NewDecoder(bytes.NewReader(buf)))
			require.NoError(t, err)
			require.Equal(t, len(buf), n)
			require.Empty(t, cmp.Diff(call, decoded, cmpopts.EquateEmpty()))
		})
	}
}

func TestCallRoundTripFuzzed(t *testing.T) {
	f := fuzzer(1001)
	for i := 0; i < 50; i++ {
		for _, call := range allCalls(types.AccountID{}) {
			f.Fuzz(call)
			buf, err := EncodeCallBytes(call)
			require.NoError(t, err, call.Name())

			decoded, _, err := DecodeCall(scale.NewDecoder(bytes.NewReader(buf)))
			require.NoError(t, err, call.Name())
			require.Empty(t, cmp.Diff(call, decoded, cmpopts.EquateEmpty()), call.Name())
		}
	}
}

func TestCallEncoding(t *testing.T) {
	buf, err := EncodeCallBytes(&Validate{Prefs: ValidatorPrefs{Commission: types.PerbillFromRational(1, 10)}})
	require.NoError(t, err)
	// 100_000_000 in four byte compact mode
	require.Equal(t, []byte{PalletStaking, 4, 0x02, 0x84, 0xd7, 0x17}, buf)

	buf, err = EncodeCallBytes(&Rebond{Value: 1})
	require.NoError(t, err)
	require.Equal(t, []byte{PalletStaking, 17, 0x04}, buf)

	buf, err = EncodeCallBytes(&ClearName{})
	require.NoError(t, err)
	require.Equal(t, []byte{PalletNicks, 1}, buf)

	buf, err = EncodeCallBytes(&SetName{Nick: []byte("ab")})
	require.NoError(t, err)
	require.Equal(t, []byte{PalletNicks, 0, 0x08, 'a', 'b'}, buf)

	buf, err = EncodeCallBytes(&Bond{Controller: types.AddressFromIndex(1), Value: 2, Payee: RewardController})
	require.NoError(t, err)
	require.Equal(t, []byte{PalletStaking, 0, 0x01, 0x08, 0x02}, buf)
}

func TestDecodeUnknownCall(t *testing.T) {
	_, _, err := DecodeCall(scale.NewDecoder(bytes.NewReader([]byte{PalletBalances, 99})))
	require.ErrorIs(t, err, ErrUnknownCall)

	_, _, err = DecodeCall(scale.NewDecoder(bytes.NewReader([]byte{PalletStaking, 0, 0x01, 0x08, 0x03})))
	require.ErrorIs(t, err, ErrInvalidRewardDestination)
}

func TestSignedExtraEncoding(t *testing.T) {
	extra := NewSignedExtra(5, 42)
	require.Equal(t, types.Era{Period: EraPeriod, Phase: 42}, extra.Era)

	buf, err := codec.Encode(&extra)
	require.NoError(t, err)
	require.Equal(t, []byte{0xa7, 0x02, 0x14, 0x00}, buf)

	var decoded SignedExtra
	require.NoError(t, codec.Decode(buf, &decoded))
	require.Equal(t, extra, decoded)

	additional := testAdditional()
	buf, err = codec.Encode(&additional)
	require.NoError(t, err)
	require.Len(t, buf, 4+2*types.Hash256Length)
	require.Equal(t, []byte{1, 0, 0, 0}, buf[:4])
}

func TestSignRoundTrip(t *testing.T) {
	sender := signing.DeriveAccountSecret(1)
	dest := signing.DeriveAccountID(2)
	additional := testAdditional()
	for i, call := range allCalls(dest) {
		t.Run(call.Name(), func(t *testing.T) {
			xt := CheckedExtrinsic{
				Signed:   &SignedBy{Sender: sender.AccountID(), Extra: NewSignedExtra(uint32(i), 10)},
				Function: call,
			}
			ue, err := Sign(xt, sender, additional)
			require.NoError(t, err)
			require.True(t, ue.IsSigned())
			require.Equal(t, types.AddressFromID(sender.AccountID()), ue.Signature.Address)
			require.Equal(t, types.Ed25519, ue.Signature.Signature.Kind)
			require.True(t, Verify(ue, additional))

			raw, err := codec.Encode(ue)
			require.NoError(t, err)
			var decoded UncheckedExtrinsic
			require.NoError(t, codec.Decode(raw, &decoded))
			require.Empty(t, cmp.Diff(ue, &decoded, cmpopts.EquateEmpty()))
			require.True(t, Verify(&decoded, additional))

			other := additional
			other.SpecVersion++
			require.False(t, Verify(&decoded, other))
		})
	}
}

func TestSignUnsigned(t *testing.T) {
	call := &Transfer{Dest: types.AddressFromIndex(1), Value: 1}
	ue, err := Sign(CheckedExtrinsic{Function: call}, signing.DeriveAccountSecret(1), testAdditional())
	require.NoError(t, err)
	require.False(t, ue.IsSigned())
	require.Same(t, call, ue.Function)
	require.False(t, Verify(ue, testAdditional()))

	raw, err := codec.Encode(ue)
	require.NoError(t, err)
	// length prefix, version, call index, address, value
	require.Equal(t, []byte{5 << 2, Version, PalletBalances, 0, 0x01, 0x04}, raw)

	long := &SetName{Nick: bytes.Repeat([]byte{'a'}, maxNameLength+1)}
	_, err = Sign(CheckedExtrinsic{Function: long}, signing.DeriveAccountSecret(1), testAdditional())
	require.ErrorIs(t, err, ErrCodecRoundTrip)
}

func TestSignerMismatch(t *testing.T) {
	xt := CheckedExtrinsic{
		Signed:   &SignedBy{Sender: signing.DeriveAccountID(1), Extra: NewSignedExtra(0, 0)},
		Function: &ClearName{},
	}
	_, err := Sign(xt, signing.DeriveAccountSecret(2), testAdditional())
	require.ErrorIs(t, err, ErrSignerMismatch)
}

// nameForPayload returns a SetName call whose signing payload is exactly size bytes.
func nameForPayload(tb testing.TB, extra *SignedExtra, additional *AdditionalSigned, size int) (*SetName, []byte) {
	tb.Helper()
	for length := 0; length < 2*size; length++ {
		call := &SetName{Nick: bytes.Repeat([]byte{'a'}, length)}
		payload, err := SigningPayload(call, extra, additional)
		require.NoError(tb, err)
		if len(payload) == size {
			return call, payload
		}
	}
	require.FailNow(tb, "no name produces payload", "size %d", size)
	return nil, nil
}

func TestSigningPayloadBoundary(t *testing.T) {
	signer := signing.DeriveAccountSecret(3)
	extra := NewSignedExtra(1, 1)
	additional := testAdditional()

	t.Run("raw", func(t *testing.T) {
		call, payload := nameForPayload(t, &extra, &additional, MaxRawPayload)
		require.Equal(t, payload, SigningInput(payload))

		ue, err := Sign(CheckedExtrinsic{
			Signed:   &SignedBy{Sender: signer.AccountID(), Extra: extra},
			Function: call,
		}, signer, additional)
		require.NoError(t, err)
		require.True(t, signing.Verify(signer.AccountID(), payload, ue.Signature.Signature.Data))
	})
	t.Run("hashed", func(t *testing.T) {
		call, payload := nameForPayload(t, &extra, &additional, MaxRawPayload+1)
		digest := hash.Blake2b256(payload)
		require.Equal(t, digest[:], SigningInput(payload))

		ue, err := Sign(CheckedExtrinsic{
			Signed:   &SignedBy{Sender: signer.AccountID(), Extra: extra},
			Function: call,
		}, signer, additional)
		require.NoError(t, err)
		require.True(t, signing.Verify(signer.AccountID(), digest[:], ue.Signature.Signature.Data))
		require.False(t, signing.Verify(signer.AccountID(), payload, ue.Signature.Signature.Data))
		require.True(t, Verify(ue, additional))
	})
}

func TestDecodeInvalidExtrinsic(t *testing.T) {
	for _, tc := range []struct {
		desc string
		raw  []byte
		err  error
	}{
		{"unknown version", []byte{3 << 2, 5, PalletNicks, 1}, ErrUnsupportedVersion},
		{"unknown call", []byte{3 << 2, Version, 99, 0}, ErrUnknownCall},
		{
			"bad signature kind",
			append(append([]byte{35 << 2, Version | signedBit, 0xff}, make([]byte, types.AccountIDLength)...), 7),
			types.ErrInvalidSignature,
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			var ue UncheckedExtrinsic
			require.ErrorIs(t, codec.Decode(tc.raw, &ue), tc.err)
		})
	}

	t.Run("trailing bytes", func(t *testing.T) {
		var ue UncheckedExtrinsic
		err := codec.Decode([]byte{4 << 2, Version, PalletNicks, 1, 0}, &ue)
		require.ErrorContains(t, err, "trailing")
	})
}

// lossyCall encodes like a transfer but is a different type, so decoding
// never reproduces it.
type lossyCall struct {
	Transfer
}

func TestRoundTripDetectsLossyCodec(t *testing.T) {
	signer := signing.DeriveAccountSecret(4)
	xt := CheckedExtrinsic{
		Signed:   &SignedBy{Sender: signer.AccountID(), Extra: NewSignedExtra(0, 0)},
		Function: &lossyCall{Transfer{Dest: types.AddressFromIndex(1), Value: 1}},
	}
	_, err := Sign(xt, signer, testAdditional())
	require.ErrorIs(t, err, ErrCodecRoundTrip)
}

func TestID(t *testing.T) {
	raw := []byte{3 << 2, Version, PalletNicks, 1}
	require.Equal(t, types.Hash256(hash.Sum(raw)), ID(raw))
	require.NotEqual(t, ID(raw), ID(raw[:3]))
}
