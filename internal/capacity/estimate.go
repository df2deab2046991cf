package capacity

import (
	"fmt"
	"log/slog"

	"github.com/dccapacity/dccapacity/internal/topology"
)

// Result is the outcome of one estimate. It is only produced on success.
type Result struct {
	Groups           int
	MachinesPerGroup int
	TotalRPS         float64
	SubsetCapacity   float64 // MaxGroupRPS / MachinesPerGroup

	Params      Params
	Occurrences OccurrenceMap
	Aggregates  AggregateMap
}

// Units returns floor(weight/UnitWeight) for the machine-id's aggregate.
func (r *Result) Units(machineID string) int {
	return units(r.Aggregates[machineID], r.Params.UnitWeight)
}

// Contribution returns the RPS the machine-id adds to the detailed total.
func (r *Result) Contribution(machineID string) float64 {
	return float64(r.Units(machineID)) * r.SubsetCapacity * float64(r.MachinesPerGroup)
}

// Estimate validates t and p, then tallies and aggregates t's matrix.
//
// Validation failures wrap topology.ErrInvalidTopology,
// topology.ErrInvalidShape or ErrInvalidParams; no map is built in that case.
// Each call allocates its own maps, so concurrent calls do not interact.
func Estimate(t topology.Topology, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := t.Validate(p.Limits); err != nil {
		return nil, fmt.Errorf("capacity: %w", err)
	}
	if p.Variant == "" {
		p.Variant = VariantDetailed
	}

	occ := Tally(t.Matrix, p)
	agg, total := Aggregate(occ, t.MachinesPerGroup, p)
	if p.Variant == VariantSimple {
		total = float64(t.Groups) * p.MaxGroupRPS
	}

	slog.Debug("capacity: estimate computed",
		"variant", p.Variant,
		"groups", t.Groups,
		"machines_per_group", t.MachinesPerGroup,
		"occurrence_keys", len(occ),
		"machine_ids", len(agg),
		"total_rps", total,
	)

	return &Result{
		Groups:           t.Groups,
		MachinesPerGroup: t.MachinesPerGroup,
		TotalRPS:         total,
		SubsetCapacity:   SubsetCapacity(p.MaxGroupRPS, t.MachinesPerGroup),
		Params:           p,
		Occurrences:      occ,
		Aggregates:       agg,
	}, nil
}
