package capacity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// KeyDelimiter separates position and machine-id in Key.String.
const KeyDelimiter = "-"

// ErrBadKey is returned by ParseKey for strings that are not "<pos>-<id>".
var ErrBadKey = errors.New("capacity: malformed key")

// Key identifies one machine-id at one slot position.
type Key struct {
	Position  int
	MachineID string
}

// String renders the key as "<position>-<machine_id>".
func (k Key) String() string {
	return strconv.Itoa(k.Position) + KeyDelimiter + k.MachineID
}

// ParseKey is the inverse of Key.String. It splits on the first delimiter,
// so machine-ids that themselves contain '-' survive the round trip.
func ParseKey(s string) (Key, error) {
	pos, id, ok := strings.Cut(s, KeyDelimiter)
	if !ok {
		return Key{}, fmt.Errorf("%w: %q has no %q", ErrBadKey, s, KeyDelimiter)
	}
	n, err := strconv.Atoi(pos)
	if err != nil || n < 0 || pos != strconv.Itoa(n) {
		return Key{}, fmt.Errorf("%w: %q has invalid position %q", ErrBadKey, s, pos)
	}
	if id == "" {
		return Key{}, fmt.Errorf("%w: %q has empty machine id", ErrBadKey, s)
	}
	return Key{Position: n, MachineID: id}, nil
}

// less orders keys by position, then machine-id.
func (k Key) less(o Key) bool {
	if k.Position != o.Position {
		return k.Position < o.Position
	}
	return k.MachineID < o.MachineID
}
