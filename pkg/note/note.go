// Package note defines the immutable note descriptor spec.md calls
// PrivateCommitmentInfo: the record associating a commitment with an owner
// and, for the minting party, the opening values (value and blinding).
//
// Corresponds to:
// com.hedera.node.app.service.token.impl.privacy.PrivateCommitmentInfo
package note

import (
	"errors"

	"github.com/hederalabs/private-token-transfer/pkg/ids"
)

// ValueUnknown is the sentinel used when the value carried by a note is not
// known to the holder of this descriptor (the external-note case).
const ValueUnknown int64 = -1

// Note is an immutable value object describing a single private
// commitment. Two variants exist: known (minted locally, blinding and
// value present) and external (adopted from an incoming transfer, blinding
// empty, value ValueUnknown).
type Note struct {
	TokenID    ids.TokenID
	Owner      ids.AccountID
	Commitment []byte
	Blinding   []byte
	Value      int64
}

// ErrInvalidNote is returned by Known/External when an invariant from
// spec.md §3 is violated (empty commitment; for Known, also a blinding that
// is not exactly 32 bytes or a negative value).
var ErrInvalidNote = errors.New("note: invalid commitment or blinding")

// Known constructs a note whose opening values (blinding, value) are
// present — produced when minting treasury notes.
func Known(tokenID ids.TokenID, owner ids.AccountID, commitment, blinding []byte, value int64) (Note, error) {
	if len(commitment) == 0 {
		return Note{}, ErrInvalidNote
	}
	if len(blinding) != 32 {
		return Note{}, ErrInvalidNote
	}
	if value < 0 {
		return Note{}, ErrInvalidNote
	}
	return Note{
		TokenID:    tokenID,
		Owner:      owner,
		Commitment: append([]byte(nil), commitment...),
		Blinding:   append([]byte(nil), blinding...),
		Value:      value,
	}, nil
}

// External constructs a note adopted from an incoming transaction, whose
// opening values are known only to the sender: blinding is empty and value
// is ValueUnknown.
func External(tokenID ids.TokenID, owner ids.AccountID, commitment []byte) (Note, error) {
	if len(commitment) == 0 {
		return Note{}, ErrInvalidNote
	}
	return Note{
		TokenID:    tokenID,
		Owner:      owner,
		Commitment: append([]byte(nil), commitment...),
		Blinding:   nil,
		Value:      ValueUnknown,
	}, nil
}

// ValueKnown reports whether the holder of this descriptor knows the
// hidden amount.
func (n Note) ValueKnown() bool {
	return n.Value >= 0
}
