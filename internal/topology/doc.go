// Package topology describes the data-center layout fed to the capacity core.
//
// Top-level types:
//   - Topology{Groups, MachinesPerGroup, Matrix}: one row per group, one
//     machine-id token per slot position
//   - Limits{MaxGroups, MaxMachines}: sanity ceilings (default 1000 each)
//
// Validate(Limits) returns ErrInvalidTopology for non-positive or oversized
// dimensions and ErrInvalidShape when the matrix does not match them.
//
// Read parses the line format
//
//	3 4
//	A1 B1 C1 D1
//	A2 B2 C2 D2
//	A3 B3 C3 D3
//
// ReadFile picks YAML for .yaml/.yml files and the line format otherwise.
// Prompt is Read with the interactive banner. Generate builds a synthetic
// topology in the same naming style, and Encode writes one back out.
package topology
