package capacity

import (
	"math"
	"sort"
)

// AggregateMap holds, per machine-id, the smallest weight observed across
// the positions it appears in.
type AggregateMap map[string]float64

// IDs returns the machine-ids in lexical order.
func (m AggregateMap) IDs() []string {
	out := make([]string, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Aggregate reduces occ to an AggregateMap and the total RPS.
//
// Step 1 keeps the minimum weight per machine-id: the position where a
// machine-id is least represented limits its usable capacity.
// Step 2 sums floor(weight/UnitWeight) × subset × machinesPerGroup over the
// AggregateMap, where subset = MaxGroupRPS / machinesPerGroup.
//
// machinesPerGroup must be at least 1; Estimate guarantees this. For any
// smaller value the AggregateMap is still built but the total is 0.
func Aggregate(occ OccurrenceMap, machinesPerGroup int, p Params) (AggregateMap, float64) {
	agg := make(AggregateMap)
	for k, v := range occ {
		if cur, ok := agg[k.MachineID]; !ok || v < cur {
			agg[k.MachineID] = v
		}
	}

	if machinesPerGroup < 1 {
		return agg, 0
	}

	subset := SubsetCapacity(p.MaxGroupRPS, machinesPerGroup)
	var total float64
	// Sum in a fixed order so repeated runs produce bit-identical totals.
	for _, id := range agg.IDs() {
		total += float64(units(agg[id], p.UnitWeight)) * subset * float64(machinesPerGroup)
	}
	return agg, total
}

// SubsetCapacity is the RPS share of one machine slot within a group.
func SubsetCapacity(maxGroupRPS float64, machinesPerGroup int) float64 {
	if machinesPerGroup < 1 {
		return 0
	}
	return maxGroupRPS / float64(machinesPerGroup)
}

// unitEpsilon absorbs the rounding error of summing a non-integral
// UnitWeight, so ten additions of 0.1 still count as ten units.
const unitEpsilon = 1e-9

// units recovers the whole occurrence count encoded in weight.
func units(weight, unitWeight float64) int {
	if unitWeight <= 0 || weight <= 0 {
		return 0
	}
	return int(math.Floor(weight/unitWeight + unitEpsilon))
}
