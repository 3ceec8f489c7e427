package wire

import (
	"bytes"
	"fmt"

	"github.com/hederalabs/private-token-transfer/pkg/ids"
)

const transferMagic = "PTT1"

// TransferOutput is the wire shape of a single transfer output. OwnerPresent
// carries the protobuf-style field-presence bit that shard/realm/num alone
// cannot: 0.0.0 is itself a representable (if never-valid) account id, so
// the absence of an owner is a distinct wire state from owner-is-zero.
type TransferOutput struct {
	OwnerPresent bool
	OwnerShard   uint64
	OwnerRealm   uint64
	OwnerNum     uint64
	Commitment   []byte
}

// TransferBody is the wire shape of a private token transfer, matching
// handler.TransferBody field-for-field.
type TransferBody struct {
	TokenShard uint64
	TokenRealm uint64
	TokenNum   uint64
	Inputs     [][]byte
	Outputs    []TransferOutput
	ZkProof    []byte
}

// EncodeTransferBody serializes a transfer body to the wire envelope.
func EncodeTransferBody(b TransferBody) []byte {
	buf := &bytes.Buffer{}

	writeMagic(buf, transferMagic)
	writeUint64(buf, b.TokenShard)
	writeUint64(buf, b.TokenRealm)
	writeUint64(buf, b.TokenNum)

	writeUint64(buf, uint64(len(b.Inputs)))
	for _, in := range b.Inputs {
		writeBytes(buf, in)
	}

	writeUint64(buf, uint64(len(b.Outputs)))
	for _, out := range b.Outputs {
		writeBool(buf, out.OwnerPresent)
		writeUint64(buf, out.OwnerShard)
		writeUint64(buf, out.OwnerRealm)
		writeUint64(buf, out.OwnerNum)
		writeBytes(buf, out.Commitment)
	}

	writeOptionBytes(buf, b.ZkProof)

	return buf.Bytes()
}

// DecodeTransferBody parses a transfer body previously produced by
// EncodeTransferBody.
func DecodeTransferBody(data []byte) (TransferBody, error) {
	r := newReader(data)

	if err := readMagic(r, transferMagic); err != nil {
		return TransferBody{}, err
	}

	var b TransferBody
	var err error

	if b.TokenShard, err = readUint64(r); err != nil {
		return TransferBody{}, &ParseError{Message: "truncated token shard", Cause: err}
	}
	if b.TokenRealm, err = readUint64(r); err != nil {
		return TransferBody{}, &ParseError{Message: "truncated token realm", Cause: err}
	}
	if b.TokenNum, err = readUint64(r); err != nil {
		return TransferBody{}, &ParseError{Message: "truncated token num", Cause: err}
	}

	numInputs, err := readUint64(r)
	if err != nil {
		return TransferBody{}, &ParseError{Message: "truncated input count", Cause: err}
	}
	b.Inputs = make([][]byte, numInputs)
	for i := range b.Inputs {
		if b.Inputs[i], err = readBytes(r); err != nil {
			return TransferBody{}, &ParseError{Message: fmt.Sprintf("truncated input %d", i), Cause: err}
		}
	}

	numOutputs, err := readUint64(r)
	if err != nil {
		return TransferBody{}, &ParseError{Message: "truncated output count", Cause: err}
	}
	b.Outputs = make([]TransferOutput, numOutputs)
	for i := range b.Outputs {
		out := &b.Outputs[i]
		if out.OwnerPresent, err = readBool(r); err != nil {
			return TransferBody{}, &ParseError{Message: fmt.Sprintf("truncated output %d owner presence", i), Cause: err}
		}
		if out.OwnerShard, err = readUint64(r); err != nil {
			return TransferBody{}, &ParseError{Message: fmt.Sprintf("truncated output %d owner shard", i), Cause: err}
		}
		if out.OwnerRealm, err = readUint64(r); err != nil {
			return TransferBody{}, &ParseError{Message: fmt.Sprintf("truncated output %d owner realm", i), Cause: err}
		}
		if out.OwnerNum, err = readUint64(r); err != nil {
			return TransferBody{}, &ParseError{Message: fmt.Sprintf("truncated output %d owner num", i), Cause: err}
		}
		if out.Commitment, err = readBytes(r); err != nil {
			return TransferBody{}, &ParseError{Message: fmt.Sprintf("truncated output %d commitment", i), Cause: err}
		}
	}

	if b.ZkProof, err = readOptionBytes(r); err != nil {
		return TransferBody{}, &ParseError{Message: "truncated zk proof", Cause: err}
	}

	return b, nil
}

// Token reconstructs the ids.TokenID the body refers to.
func (b TransferBody) Token() ids.TokenID {
	return ids.TokenID{Shard: b.TokenShard, Realm: b.TokenRealm, Num: b.TokenNum}
}

// Owner reconstructs the ids.AccountID an output declares, and reports
// whether an owner was present at all.
func (o TransferOutput) Owner() (ids.AccountID, bool) {
	return ids.AccountID{Shard: o.OwnerShard, Realm: o.OwnerRealm, Num: o.OwnerNum}, o.OwnerPresent
}
