package handler

import (
	"github.com/hederalabs/private-token-transfer/pkg/ids"
	"github.com/hederalabs/private-token-transfer/pkg/wire"
)

// EncodeBody serializes a TransferBody to the wire envelope, for transport
// or storage ahead of Handle.
func EncodeBody(b TransferBody) []byte {
	w := wire.TransferBody{
		TokenShard: b.Token.Shard,
		TokenRealm: b.Token.Realm,
		TokenNum:   b.Token.Num,
		Inputs:     b.Inputs,
		ZkProof:    b.ZkProof,
	}
	w.Outputs = make([]wire.TransferOutput, len(b.Outputs))
	for i, out := range b.Outputs {
		wo := wire.TransferOutput{Commitment: out.Commitment}
		if out.Owner != nil {
			wo.OwnerPresent = true
			wo.OwnerShard = out.Owner.Shard
			wo.OwnerRealm = out.Owner.Realm
			wo.OwnerNum = out.Owner.Num
		}
		w.Outputs[i] = wo
	}
	return wire.EncodeTransferBody(w)
}

// DecodeBody parses a TransferBody previously produced by EncodeBody.
func DecodeBody(data []byte) (TransferBody, error) {
	w, err := wire.DecodeTransferBody(data)
	if err != nil {
		return TransferBody{}, err
	}

	b := TransferBody{
		Token:   ids.TokenID{Shard: w.TokenShard, Realm: w.TokenRealm, Num: w.TokenNum},
		Inputs:  w.Inputs,
		ZkProof: w.ZkProof,
	}
	b.Outputs = make([]TransferOutput, len(w.Outputs))
	for i, out := range w.Outputs {
		to := TransferOutput{Commitment: out.Commitment}
		if owner, present := out.Owner(); present {
			to.Owner = &owner
		}
		b.Outputs[i] = to
	}
	return b, nil
}
