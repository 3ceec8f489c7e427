// Package commitment implements Pedersen commitment arithmetic over
// secp256k1: commitment construction, homomorphic sum verification, and
// compressed-point encode/decode.
//
// Corresponds to:
// com.hedera.node.app.service.token.impl.privacy.PedersenCommitments
//
// Curve arithmetic is provided by github.com/decred/dcrd/dcrec/secp256k1/v4,
// the library the teacher repo (pkg/crypto/secp256k1.go) uses for all of
// its secp256k1 operations.
package commitment

import (
	"crypto/rand"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/hederalabs/private-token-transfer/pkg/curve"
	"github.com/hederalabs/private-token-transfer/pkg/ids"
	"github.com/hederalabs/private-token-transfer/pkg/note"
)

// ErrInvalidCommitment is returned by Decode when the given bytes do not
// decode to a valid, non-infinity secp256k1 point.
var ErrInvalidCommitment = errors.New("commitment: invalid commitment bytes")

// ErrNegativeValue is returned by NewTreasuryNote when asked to mint a
// negative amount.
var ErrNegativeValue = errors.New("commitment: value must be non-negative")

// Decode parses a 33-byte SEC-1 compressed point into a curve point.
func Decode(b []byte) (secp256k1.JacobianPoint, error) {
	var p secp256k1.JacobianPoint
	if len(b) != secp256k1.PubKeyBytesLenCompressed {
		return p, ErrInvalidCommitment
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return p, ErrInvalidCommitment
	}
	pub.AsJacobian(&p)
	return p, nil
}

// Encode serializes a curve point to its 33-byte SEC-1 compressed form.
func Encode(p secp256k1.JacobianPoint) []byte {
	p.ToAffine()
	pub := secp256k1.NewPublicKey(&p.X, &p.Y)
	return pub.SerializeCompressed()
}

// randomScalar samples a uniform non-zero scalar in [1, n-1] by rejection
// sampling: draw 32 random bytes, reduce mod n, reject zero.
func randomScalar() (secp256k1.ModNScalar, error) {
	var s secp256k1.ModNScalar
	var buf [32]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return s, err
		}
		s.SetByteSlice(buf[:])
		if !s.IsZero() {
			return s, nil
		}
	}
}

// valueScalar encodes a non-negative value as a group-order scalar.
func valueScalar(v uint64) secp256k1.ModNScalar {
	var buf [32]byte
	buf[24] = byte(v >> 56)
	buf[25] = byte(v >> 48)
	buf[26] = byte(v >> 40)
	buf[27] = byte(v >> 32)
	buf[28] = byte(v >> 24)
	buf[29] = byte(v >> 16)
	buf[30] = byte(v >> 8)
	buf[31] = byte(v)
	var s secp256k1.ModNScalar
	s.SetByteSlice(buf[:])
	return s
}

// commit computes C = v*G + r*H, normalized to affine coordinates.
func commit(ctx *curve.Context, v secp256k1.ModNScalar, r secp256k1.ModNScalar) secp256k1.JacobianPoint {
	g := ctx.G()
	h := ctx.H()

	var vG, rH, c secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&v, &g, &vG)
	secp256k1.ScalarMultNonConst(&r, &h, &rH)
	secp256k1.AddNonConst(&vG, &rH, &c)
	c.ToAffine()
	return c
}

// scalarBytes encodes a scalar as 32-byte big-endian.
func scalarBytes(s secp256k1.ModNScalar) []byte {
	b := s.Bytes()
	return b[:]
}

// NewTreasuryNote mints a known note committing to v under a freshly
// sampled blinding factor. v must be non-negative.
//
// Corresponds to: PedersenCommitments.newTreasuryNote
func NewTreasuryNote(tokenID ids.TokenID, owner ids.AccountID, v int64) (note.Note, error) {
	if v < 0 {
		return note.Note{}, ErrNegativeValue
	}

	r, err := randomScalar()
	if err != nil {
		return note.Note{}, err
	}

	ctx := curve.Default()
	c := commit(ctx, valueScalar(uint64(v)), r)

	return note.Known(tokenID, owner, Encode(c), scalarBytes(r), v)
}

// RecoverNote reconstructs a known note from a value and blinding factor
// previously extracted from a backup code (see backup.go), recomputing its
// commitment rather than trusting a stored one.
func RecoverNote(tokenID ids.TokenID, owner ids.AccountID, v int64, blinding []byte) (note.Note, error) {
	if v < 0 {
		return note.Note{}, ErrNegativeValue
	}

	var r secp256k1.ModNScalar
	if overflow := r.SetByteSlice(blinding); overflow {
		return note.Note{}, ErrInvalidCommitment
	}

	ctx := curve.Default()
	c := commit(ctx, valueScalar(uint64(v)), r)

	return note.Known(tokenID, owner, Encode(c), scalarBytes(r), v)
}

// SumsMatch reports whether the sum of the input commitments equals the sum
// of the output commitments, as curve points. An empty side sums to the
// point at infinity; SumsMatch(nil, nil) is true.
//
// Corresponds to: PedersenCommitments.sumsMatch
func SumsMatch(inputs, outputs [][]byte) (bool, error) {
	left, err := sumPoints(inputs)
	if err != nil {
		return false, err
	}
	right, err := sumPoints(outputs)
	if err != nil {
		return false, err
	}
	left.ToAffine()
	right.ToAffine()
	return left.X.Equals(&right.X) && left.Y.Equals(&right.Y) && left.Z.Equals(&right.Z), nil
}

func sumPoints(commitments [][]byte) (secp256k1.JacobianPoint, error) {
	var sum secp256k1.JacobianPoint // zero value is the point at infinity
	for _, c := range commitments {
		p, err := Decode(c)
		if err != nil {
			return sum, err
		}
		var next secp256k1.JacobianPoint
		secp256k1.AddNonConst(&sum, &p, &next)
		sum = next
	}
	sum.ToAffine()
	return sum, nil
}
