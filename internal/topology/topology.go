package topology

import (
	"errors"
	"fmt"
	"strings"
)

// Default sanity ceilings applied when no limits are configured.
const (
	DefaultMaxGroups   = 1000
	DefaultMaxMachines = 1000
)

var (
	// ErrInvalidTopology is returned when groups or machines per group are
	// non-positive or exceed the configured ceiling.
	ErrInvalidTopology = errors.New("topology: invalid dimensions")

	// ErrInvalidShape is returned when the matrix does not match the declared
	// groups × machines_per_group dimensions.
	ErrInvalidShape = errors.New("topology: matrix shape mismatch")

	// ErrMalformedInput is returned when the textual input cannot be parsed.
	ErrMalformedInput = errors.New("topology: malformed input")
)

// Topology is a fully materialised group × machine matrix.
type Topology struct {
	Groups           int        `yaml:"groups" json:"groups"`
	MachinesPerGroup int        `yaml:"machines_per_group" json:"machines_per_group"`
	Matrix           [][]string `yaml:"matrix" json:"matrix"`
}

// Limits bounds the accepted topology dimensions.
type Limits struct {
	MaxGroups   int
	MaxMachines int
}

// DefaultLimits returns the 1000 × 1000 ceiling.
func DefaultLimits() Limits {
	return Limits{MaxGroups: DefaultMaxGroups, MaxMachines: DefaultMaxMachines}
}

// Check reports ErrInvalidTopology unless groups and machines are positive
// and within l. A zero limit means unbounded. It needs no matrix, so callers
// that build one can reject bad dimensions before allocating.
func (l Limits) Check(groups, machines int) error {
	if groups <= 0 {
		return fmt.Errorf("%w: groups must be positive, got %d", ErrInvalidTopology, groups)
	}
	if machines <= 0 {
		return fmt.Errorf("%w: machines per group must be positive, got %d", ErrInvalidTopology, machines)
	}
	if l.MaxGroups > 0 && groups > l.MaxGroups {
		return fmt.Errorf("%w: groups %d exceeds limit %d", ErrInvalidTopology, groups, l.MaxGroups)
	}
	if l.MaxMachines > 0 && machines > l.MaxMachines {
		return fmt.Errorf("%w: machines per group %d exceeds limit %d", ErrInvalidTopology, machines, l.MaxMachines)
	}
	return nil
}

// Validate checks the dimensions against l and the matrix against the
// dimensions. A zero limit means unbounded.
func (t Topology) Validate(l Limits) error {
	if err := l.Check(t.Groups, t.MachinesPerGroup); err != nil {
		return err
	}

	if len(t.Matrix) != t.Groups {
		return fmt.Errorf("%w: got %d rows, want %d", ErrInvalidShape, len(t.Matrix), t.Groups)
	}
	for i, row := range t.Matrix {
		if len(row) != t.MachinesPerGroup {
			return fmt.Errorf("%w: group %d has %d machines, want %d", ErrInvalidShape, i+1, len(row), t.MachinesPerGroup)
		}
		for j, id := range row {
			if strings.TrimSpace(id) == "" {
				return fmt.Errorf("%w: group %d position %d is empty", ErrInvalidShape, i+1, j)
			}
		}
	}
	return nil
}

// MachineIDs returns the distinct machine-ids in first-seen order.
func (t Topology) MachineIDs() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range t.Matrix {
		for _, id := range row {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
