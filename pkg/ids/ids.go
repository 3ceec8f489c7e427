// Package ids defines the shard.realm.num identifiers used throughout the
// private-transfer core to name tokens and accounts.
package ids

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenID identifies a token by its shard, realm and number.
type TokenID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

func (t TokenID) String() string {
	return fmt.Sprintf("%d.%d.%d", t.Shard, t.Realm, t.Num)
}

// AccountID identifies an account by its shard, realm and number.
type AccountID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

func (a AccountID) String() string {
	return fmt.Sprintf("%d.%d.%d", a.Shard, a.Realm, a.Num)
}

// ParseTokenID parses the "shard.realm.num" form produced by String.
func ParseTokenID(s string) (TokenID, error) {
	shard, realm, num, err := parseTriple(s)
	if err != nil {
		return TokenID{}, err
	}
	return TokenID{Shard: shard, Realm: realm, Num: num}, nil
}

// ParseAccountID parses the "shard.realm.num" form produced by String.
func ParseAccountID(s string) (AccountID, error) {
	shard, realm, num, err := parseTriple(s)
	if err != nil {
		return AccountID{}, err
	}
	return AccountID{Shard: shard, Realm: realm, Num: num}, nil
}

func parseTriple(s string) (shard, realm, num uint64, err error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("ids: expected shard.realm.num, got %q", s)
	}
	if shard, err = strconv.ParseUint(parts[0], 10, 64); err != nil {
		return 0, 0, 0, fmt.Errorf("ids: invalid shard in %q: %w", s, err)
	}
	if realm, err = strconv.ParseUint(parts[1], 10, 64); err != nil {
		return 0, 0, 0, fmt.Errorf("ids: invalid realm in %q: %w", s, err)
	}
	if num, err = strconv.ParseUint(parts[2], 10, 64); err != nil {
		return 0, 0, 0, fmt.Errorf("ids: invalid num in %q: %w", s, err)
	}
	return shard, realm, num, nil
}
