package extrinsic

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-txfactory/codec"
	"github.com/spacemeshos/go-txfactory/common/types"
	"github.com/spacemeshos/go-txfactory/hash"
	"github.com/spacemeshos/go-txfactory/metrics"
	"github.com/spacemeshos/go-txfactory/signing"
)

// MaxRawPayload is the largest signing payload that is signed as is.
// Longer payloads are signed as their blake2b-256 digest.
const MaxRawPayload = 256

var (
	// ErrCodecRoundTrip is returned when a signed extrinsic doesn't survive
	// an encode/decode round trip. It indicates a defect in the codec.
	ErrCodecRoundTrip = errors.New("codec round trip")
	// ErrSignerMismatch is returned when the signer doesn't control the sender account.
	ErrSignerMismatch = errors.New("signer doesn't match sender")
)

// SigningPayload returns the encoding of (call, extra, additional).
func SigningPayload(call Call, extra *SignedExtra, additional *AdditionalSigned) ([]byte, error) {
	return encodeWith(func(e *scale.Encoder) (int, error) {
		total, err := EncodeCall(e, call)
		if err != nil {
			return total, err
		}
		n, err := extra.EncodeScale(e)
		total += n
		if err != nil {
			return total, err
		}
		n, err = additional.EncodeScale(e)
		return total + n, err
	})
}

// SigningInput returns the bytes that are signed for the payload.
func SigningInput(payload []byte) []byte {
	if len(payload) > MaxRawPayload {
		digest := hash.Blake2b256(payload)
		return digest[:]
	}
	return payload
}

// Sign turns checked extrinsic into an unchecked one. Unsigned extrinsics
// are passed through. Signed extrinsics are signed by signer, which must
// control the sender account.
//
// The result is encoded and decoded back, any difference is reported
// as ErrCodecRoundTrip.
func Sign(xt CheckedExtrinsic, signer signing.Signer, additional AdditionalSigned) (*UncheckedExtrinsic, error) {
	if xt.Signed == nil {
		ue := &UncheckedExtrinsic{Function: xt.Function}
		if err := checkRoundTrip(ue); err != nil {
			return nil, err
		}
		return ue, nil
	}
	start := time.Now()
	defer metrics.ObserveSince(signDuration, start)

	if signer.AccountID() != xt.Signed.Sender {
		return nil, fmt.Errorf("%w: sender %s signer %s",
			ErrSignerMismatch, xt.Signed.Sender.ShortString(), signer.AccountID().ShortString())
	}
	extra := xt.Signed.Extra
	payload, err := SigningPayload(xt.Function, &extra, &additional)
	if err != nil {
		return nil, fmt.Errorf("signing payload: %w", err)
	}
	if len(payload) > MaxRawPayload {
		hashedPayloads.Inc()
	} else {
		rawPayloads.Inc()
	}
	input := SigningInput(payload)
	ue := &UncheckedExtrinsic{
		Signature: &Signature{
			Address:   types.AddressFromID(xt.Signed.Sender),
			Signature: types.NewEd25519Signature(signer.Sign(input)),
			Extra:     extra,
		},
		Function: xt.Function,
	}
	if err := checkRoundTrip(ue); err != nil {
		return nil, err
	}
	return ue, nil
}

func checkRoundTrip(ue *UncheckedExtrinsic) error {
	raw, err := codec.Encode(ue)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrCodecRoundTrip, err)
	}
	var decoded UncheckedExtrinsic
	if err := codec.Decode(raw, &decoded); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrCodecRoundTrip, err)
	}
	if diff := cmp.Diff(ue, &decoded, cmpopts.EquateEmpty()); diff != "" {
		return fmt.Errorf("%w: %s (-signed +decoded):\n%s", ErrCodecRoundTrip, ue.Function.Name(), diff)
	}
	again, err := codec.Encode(&decoded)
	if err != nil {
		return fmt.Errorf("%w: encode decoded: %w", ErrCodecRoundTrip, err)
	}
	if !bytes.Equal(raw, again) {
		return fmt.Errorf("%w: %s encodings differ", ErrCodecRoundTrip, ue.Function.Name())
	}
	return nil
}

// Verify checks the signature of a signed extrinsic against additional data.
// Unsigned extrinsics and signatures other than ed25519 are not valid.
func Verify(ue *UncheckedExtrinsic, additional AdditionalSigned) bool {
	if !ue.IsSigned() || ue.Signature.Address.IsIndex {
		return false
	}
	if ue.Signature.Signature.Kind != types.Ed25519 {
		return false
	}
	payload, err := SigningPayload(ue.Function, &ue.Signature.Extra, &additional)
	if err != nil {
		return false
	}
	return signing.Verify(ue.Signature.Address.ID, SigningInput(payload), ue.Signature.Signature.Data)
}
