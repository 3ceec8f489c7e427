package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransferBodyRoundTrip(t *testing.T) {
	body := TransferBody{
		TokenShard: 0,
		TokenRealm: 0,
		TokenNum:   100,
		Inputs:     [][]byte{{0x01, 0x02}, {0x03}},
		Outputs: []TransferOutput{
			{OwnerPresent: true, OwnerShard: 0, OwnerRealm: 0, OwnerNum: 1, Commitment: []byte{0xaa, 0xbb}},
		},
		ZkProof: []byte{0xde, 0xad},
	}

	data := EncodeTransferBody(body)
	decoded, err := DecodeTransferBody(data)
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestTransferBodyRoundTripNilZkProof(t *testing.T) {
	body := TransferBody{TokenNum: 1, Inputs: [][]byte{{0x01}}, Outputs: []TransferOutput{{Commitment: []byte{0x02}}}}

	data := EncodeTransferBody(body)
	decoded, err := DecodeTransferBody(data)
	require.NoError(t, err)
	require.Nil(t, decoded.ZkProof)
}

func TestTransferOutputOwnerReportsAbsence(t *testing.T) {
	out := TransferOutput{Commitment: []byte{0x01}}
	_, present := out.Owner()
	require.False(t, present, "OwnerPresent false must round-trip as absent, not as account 0.0.0")

	out.OwnerPresent = true
	owner, present := out.Owner()
	require.True(t, present)
	require.Equal(t, uint64(0), owner.Shard)
}

func TestDecodeTransferBodyRejectsBadMagic(t *testing.T) {
	_, err := DecodeTransferBody([]byte("nope"))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestDecodeTransferBodyRejectsTruncatedData(t *testing.T) {
	body := TransferBody{TokenNum: 1, Inputs: [][]byte{{0x01}}, Outputs: []TransferOutput{{Commitment: []byte{0x02}}}}
	data := EncodeTransferBody(body)

	_, err := DecodeTransferBody(data[:len(data)-3])
	require.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	notes := []SnapshotNote{
		{TokenNum: 1, OwnerNum: 2, Commitment: []byte{0x01}, Blinding: make([]byte, 32), Value: 10},
		{TokenNum: 1, OwnerNum: 3, Commitment: []byte{0x02}, Blinding: nil, Value: -1},
	}

	data := EncodeSnapshot(notes)
	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)
	require.Equal(t, notes, decoded)
}

func TestDecodeSnapshotRejectsBadMagic(t *testing.T) {
	_, err := DecodeSnapshot([]byte("xxxx\x01\x00\x00\x00"))
	require.Error(t, err)
}
