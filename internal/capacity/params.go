package capacity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dccapacity/dccapacity/internal/topology"
)

// Default tuning constants.
const (
	// DefaultMaxGroupRPS is the throughput ceiling attributable to one group.
	DefaultMaxGroupRPS = 100.0

	// DefaultUnitWeight is added once per occurrence; weight/UnitWeight
	// recovers the occurrence count.
	DefaultUnitWeight = 1000.0

	// DefaultPresenceWeight is the near-zero seed used by VariantPresence.
	DefaultPresenceWeight = 0.0001
)

// Variant selects how the occurrence accounting is reduced to a total.
type Variant string

// Supported variants.
const (
	VariantDetailed Variant = "detailed"
	VariantPresence Variant = "presence"
	VariantSimple   Variant = "simple"
)

// ErrInvalidParams is returned when Params fail validation.
var ErrInvalidParams = errors.New("capacity: invalid parameters")

// ParseVariant maps a case-insensitive name to a Variant. The empty string
// selects VariantDetailed.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return VariantDetailed, nil
	case VariantDetailed, VariantPresence, VariantSimple:
		return v, nil
	default:
		return "", fmt.Errorf("%w: unknown variant %q", ErrInvalidParams, s)
	}
}

// Params holds the tunables for one estimate. The zero value is not usable;
// start from DefaultParams.
type Params struct {
	// MaxGroupRPS is the per-group throughput ceiling.
	MaxGroupRPS float64

	// UnitWeight is added to an occurrence key for every group that places
	// the machine-id at that position.
	UnitWeight float64

	// PresenceWeight is seeded at every position by VariantPresence.
	// Must stay below UnitWeight so floor(weight/UnitWeight) still counts
	// real occurrences.
	PresenceWeight float64

	Variant Variant

	// Limits bounds the accepted topology dimensions.
	Limits topology.Limits
}

// DefaultParams returns MaxGroupRPS 100, UnitWeight 1000, PresenceWeight
// 0.0001, VariantDetailed and 1000 × 1000 limits.
func DefaultParams() Params {
	return Params{
		MaxGroupRPS:    DefaultMaxGroupRPS,
		UnitWeight:     DefaultUnitWeight,
		PresenceWeight: DefaultPresenceWeight,
		Variant:        VariantDetailed,
		Limits:         topology.DefaultLimits(),
	}
}

// Validate checks that p can drive an estimate.
func (p Params) Validate() error {
	if p.MaxGroupRPS <= 0 {
		return fmt.Errorf("%w: max group rps must be positive", ErrInvalidParams)
	}
	if p.UnitWeight <= 0 {
		return fmt.Errorf("%w: unit weight must be positive", ErrInvalidParams)
	}
	if p.PresenceWeight < 0 || p.PresenceWeight >= p.UnitWeight {
		return fmt.Errorf("%w: presence weight must be in [0, unit weight)", ErrInvalidParams)
	}
	if _, err := ParseVariant(string(p.Variant)); err != nil {
		return err
	}
	return nil
}
