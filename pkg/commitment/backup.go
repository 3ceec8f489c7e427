// Backup codes let a wallet export and later restore a known note's opening
// secret (value + blinding) as a single shareable string, independent of the
// registry or any transfer. They never participate in handler validation.
//
// Corresponds to: pkg/crypto/secp256k1.go's EncodeWIF/decodeWIF in the
// teacher repo, re-purposed here to wrap a commitment opening instead of an
// ECDSA private key, using the same version-byte + payload + double-SHA256
// checksum + base58 shape.
package commitment

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"github.com/btcsuite/btcutil/base58"

	"github.com/hederalabs/private-token-transfer/pkg/ids"
	"github.com/hederalabs/private-token-transfer/pkg/note"
)

// backupVersion is the version byte prefixed to every encoded backup code,
// distinguishing it from a WIF-encoded ECDSA key.
const backupVersion = 0x2B

// ErrInvalidBackupCode is returned by DecodeBackup when the string fails to
// base58-decode, fails its checksum, or has the wrong internal length.
var ErrInvalidBackupCode = errors.New("commitment: invalid backup code")

// EncodeBackup encodes a known note's opening secret as a base58check
// string: version || shard || realm || num || value || blinding ||
// checksum(4). It fails if n is not a known note (ValueKnown() == false).
func EncodeBackup(n note.Note) (string, error) {
	if !n.ValueKnown() || len(n.Blinding) != 32 {
		return "", ErrInvalidBackupCode
	}

	payload := make([]byte, 0, 1+24+8+32)
	payload = append(payload, backupVersion)
	payload = appendUint64(payload, n.TokenID.Shard)
	payload = appendUint64(payload, n.TokenID.Realm)
	payload = appendUint64(payload, n.TokenID.Num)
	payload = appendUint64(payload, uint64(n.Value))
	payload = append(payload, n.Blinding...)

	checksum := doubleSHA256(payload)
	payload = append(payload, checksum[:4]...)

	return base58.Encode(payload), nil
}

// DecodeBackup reverses EncodeBackup, returning the token id, value and
// blinding factor it encodes. No commitment bytes are returned — the caller
// must recompute (see RecoverNote) or already know the commitment, since a
// backup code alone does not carry it.
func DecodeBackup(code string) (tokenID ids.TokenID, value int64, blinding []byte, err error) {
	decoded := base58.Decode(code)
	const size = 1 + 24 + 8 + 32 + 4
	if len(decoded) != size {
		return ids.TokenID{}, 0, nil, ErrInvalidBackupCode
	}

	payload := decoded[:size-4]
	checksum := decoded[size-4:]
	want := doubleSHA256(payload)
	for i := 0; i < 4; i++ {
		if checksum[i] != want[i] {
			return ids.TokenID{}, 0, nil, ErrInvalidBackupCode
		}
	}

	if payload[0] != backupVersion {
		return ids.TokenID{}, 0, nil, ErrInvalidBackupCode
	}

	tokenID = ids.TokenID{
		Shard: binary.BigEndian.Uint64(payload[1:9]),
		Realm: binary.BigEndian.Uint64(payload[9:17]),
		Num:   binary.BigEndian.Uint64(payload[17:25]),
	}
	value = int64(binary.BigEndian.Uint64(payload[25:33]))
	blinding = append([]byte(nil), payload[33:65]...)
	return tokenID, value, blinding, nil
}

func appendUint64(b []byte, v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return append(b, buf[:]...)
}

func doubleSHA256(b []byte) [32]byte {
	h1 := sha256.Sum256(b)
	return sha256.Sum256(h1[:])
}
