// Package capacity turns a group × machine topology into an estimated
// requests-per-second figure.
//
// tally.go builds the OccurrenceMap: every (position, machine-id) slot adds
// UnitWeight (1000) to Key{Position, MachineID}, so weight/1000 is the number
// of groups that placed that machine-id at that position.
//
// aggregate.go min-reduces the OccurrenceMap per machine-id into an
// AggregateMap, then sums floor(weight/UnitWeight) × subset × N where
// subset = MaxGroupRPS / N.
//
// estimate.go ties both together behind Estimate, which validates the
// topology first. Every call owns its maps; there is no state between calls,
// so Estimate is safe for concurrent use.
//
// Three reductions are selectable through Params.Variant:
//   - detailed: unit weights only (default)
//   - presence: also seeds PresenceWeight at every position for each
//     occurrence; the minimum then collapses to the seed for any machine-id
//     missing from some position, which yields 0 RPS for N ≥ 2
//   - simple: groups × MaxGroupRPS, ignoring per-machine detail
package capacity
