package wire

import "bytes"

const snapshotMagic = "PTTS"

// SnapshotNote is the wire shape of a single registry entry.
type SnapshotNote struct {
	TokenShard uint64
	TokenRealm uint64
	TokenNum   uint64
	OwnerShard uint64
	OwnerRealm uint64
	OwnerNum   uint64
	Commitment []byte
	Blinding   []byte // nil for notes of unknown value
	Value      int64  // -1 for notes of unknown value
}

// EncodeSnapshot serializes a full registry dump.
func EncodeSnapshot(notes []SnapshotNote) []byte {
	buf := &bytes.Buffer{}

	writeMagic(buf, snapshotMagic)
	writeUint64(buf, uint64(len(notes)))
	for _, n := range notes {
		writeUint64(buf, n.TokenShard)
		writeUint64(buf, n.TokenRealm)
		writeUint64(buf, n.TokenNum)
		writeUint64(buf, n.OwnerShard)
		writeUint64(buf, n.OwnerRealm)
		writeUint64(buf, n.OwnerNum)
		writeBytes(buf, n.Commitment)
		writeOptionBytes(buf, n.Blinding)
		writeInt64(buf, n.Value)
	}

	return buf.Bytes()
}

// DecodeSnapshot parses a dump previously produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) ([]SnapshotNote, error) {
	r := newReader(data)

	if err := readMagic(r, snapshotMagic); err != nil {
		return nil, err
	}

	count, err := readUint64(r)
	if err != nil {
		return nil, &ParseError{Message: "truncated note count", Cause: err}
	}

	notes := make([]SnapshotNote, count)
	for i := range notes {
		n := &notes[i]
		if n.TokenShard, err = readUint64(r); err != nil {
			return nil, &ParseError{Message: "truncated note", Cause: err}
		}
		if n.TokenRealm, err = readUint64(r); err != nil {
			return nil, &ParseError{Message: "truncated note", Cause: err}
		}
		if n.TokenNum, err = readUint64(r); err != nil {
			return nil, &ParseError{Message: "truncated note", Cause: err}
		}
		if n.OwnerShard, err = readUint64(r); err != nil {
			return nil, &ParseError{Message: "truncated note", Cause: err}
		}
		if n.OwnerRealm, err = readUint64(r); err != nil {
			return nil, &ParseError{Message: "truncated note", Cause: err}
		}
		if n.OwnerNum, err = readUint64(r); err != nil {
			return nil, &ParseError{Message: "truncated note", Cause: err}
		}
		if n.Commitment, err = readBytes(r); err != nil {
			return nil, &ParseError{Message: "truncated commitment", Cause: err}
		}
		if n.Blinding, err = readOptionBytes(r); err != nil {
			return nil, &ParseError{Message: "truncated blinding", Cause: err}
		}
		if n.Value, err = readInt64(r); err != nil {
			return nil, &ParseError{Message: "truncated value", Cause: err}
		}
	}

	return notes, nil
}
