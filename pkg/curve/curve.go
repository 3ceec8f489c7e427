// Package curve derives the secp256k1 domain parameters used for Pedersen
// commitments, in particular the second generator H that is independent of
// the standard base point G.
//
// Corresponds to: com.hedera.node.app.service.token.impl.privacy.PedersenCommitments
// (static initializer block), itself built on BouncyCastle's secp256k1
// domain parameters. Here the curve arithmetic comes from
// github.com/decred/dcrd/dcrec/secp256k1/v4, the same library the teacher
// repo uses for all of its secp256k1 operations.
package curve

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Context holds the derived auxiliary generator H. It is immutable after
// construction and safe for concurrent use from every goroutine that reads
// it.
type Context struct {
	h secp256k1.JacobianPoint
}

var (
	once    sync.Once
	ctx     *Context
	initErr error
)

// Default returns the process-wide curve context, deriving H the first time
// it is requested. Subsequent calls return the same immutable value.
//
// Construction is fatal only if SHA-256 is unavailable (spec.md §4.A); the
// standard library's crypto/sha256 is always linked in, so initErr is never
// actually non-nil on a real build — the panic path exists to surface the
// "fatal at startup" contract the spec requires rather than to handle a
// condition that can occur on this platform.
func Default() *Context {
	once.Do(func() {
		ctx, initErr = newContext()
	})
	if initErr != nil {
		panic(fmt.Sprintf("curve: failed to initialize commitment generator: %v", initErr))
	}
	return ctx
}

func newContext() (*Context, error) {
	h, err := deriveH()
	if err != nil {
		return nil, err
	}
	return &Context{h: h}, nil
}

// deriveH computes H = s*G where s = SHA-256(G_compressed) mod n, remapping
// s == 0 to 1. The discrete log of H with respect to G is therefore the
// publicly known scalar s — see spec.md §9's open question on generator
// independence; this is a prototype choice inherited unchanged from the
// Java implementation being ported.
func deriveH() (secp256k1.JacobianPoint, error) {
	g := basePoint()

	gCompressed := secp256k1.NewPublicKey(&g.X, &g.Y).SerializeCompressed()
	digest := sha256.Sum256(gCompressed)

	var s secp256k1.ModNScalar
	s.SetByteSlice(digest[:])
	if s.IsZero() {
		s.SetInt(1)
	}

	var h secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s, &h)
	h.ToAffine()
	return h, nil
}

func basePoint() secp256k1.JacobianPoint {
	var g secp256k1.JacobianPoint
	one := new(secp256k1.ModNScalar).SetInt(1)
	secp256k1.ScalarBaseMultNonConst(one, &g)
	g.ToAffine()
	return g
}

// H returns the derived auxiliary generator, normalized to affine
// coordinates.
func (c *Context) H() secp256k1.JacobianPoint {
	return c.h
}

// G returns the curve's standard base point, normalized to affine
// coordinates.
func (c *Context) G() secp256k1.JacobianPoint {
	return basePoint()
}
