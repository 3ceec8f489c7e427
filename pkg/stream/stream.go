// Package stream provides the minimal record-stream builder the handler
// tags with its outcome. The full record-stream machinery (savepoint
// stacks, base builders, the rest of a transaction's side effects) lives in
// the host framework and is out of scope here (spec.md §1); this package
// is the thin slice of that builder the handler actually calls.
//
// Corresponds to: TokenBaseStreamBuilder.tokenType(...), reached via
// context.savepointStack().getBaseBuilder(...) in the original handler.
package stream

import "github.com/hederalabs/private-token-transfer/pkg/token"

// Builder accumulates the fields a completed private transfer reports on
// the emitted stream record, mirroring the Creator/Constructor/Finish()
// shape the teacher repo uses for its own role builders (pkg/roles).
type Builder struct {
	record Record
}

// Record is the finished record-stream tag for a processed transfer.
type Record struct {
	TokenType token.Type
	Digest    [32]byte
}

// NewBuilder constructs an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// TokenType sets the record's token-type tag. Spec.md §4.E step 9 always
// sets this to FungiblePrivate for a successful private transfer.
func (b *Builder) TokenType(t token.Type) *Builder {
	b.record.TokenType = t
	return b
}

// Digest sets the receipt digest described in SPEC_FULL.md §4.E.
func (b *Builder) Digest(d [32]byte) *Builder {
	b.record.Digest = d
	return b
}

// Finish returns the completed record.
func (b *Builder) Finish() Record {
	return b.record
}
