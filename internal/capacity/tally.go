package capacity

import "sort"

// OccurrenceMap accumulates weight per (position, machine-id).
type OccurrenceMap map[Key]float64

// Count returns the number of whole occurrences recorded for k.
func (m OccurrenceMap) Count(k Key, unitWeight float64) int {
	return units(m[k], unitWeight)
}

// Keys returns the keys ordered by position, then machine-id.
func (m OccurrenceMap) Keys() []Key {
	out := make([]Key, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// Tally walks matrix position by position and returns a fresh OccurrenceMap.
//
// Every slot adds p.UnitWeight to Key{position, machine-id}. With
// VariantPresence every slot also adds p.PresenceWeight to the same
// machine-id at each position 0..len(row)-1, so every machine-id has an
// entry at every position.
//
// matrix is read only. The caller is responsible for shape validity.
func Tally(matrix [][]string, p Params) OccurrenceMap {
	occ := make(OccurrenceMap)
	for _, row := range matrix {
		for j, id := range row {
			occ[Key{Position: j, MachineID: id}] += p.UnitWeight

			if p.Variant == VariantPresence {
				for x := range row {
					occ[Key{Position: x, MachineID: id}] += p.PresenceWeight
				}
			}
		}
	}
	return occ
}
