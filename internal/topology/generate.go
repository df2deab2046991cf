package topology

import "strconv"

// Generate returns a groups × machines topology named the way the usage
// example is: a column label followed by the 1-based group number.
//
//	Generate(2, 3) => [[A1 B1 C1] [A2 B2 C2]]
//
// Every machine-id is distinct, so each (position, machine-id) pair occurs
// exactly once. Non-positive dimensions yield an empty matrix with the
// dimensions echoed back for Validate to reject.
func Generate(groups, machines int) Topology {
	t := Topology{Groups: groups, MachinesPerGroup: machines}
	if groups <= 0 || machines <= 0 {
		return t
	}

	labels := make([]string, machines)
	for j := range labels {
		labels[j] = columnLabel(j)
	}

	t.Matrix = make([][]string, groups)
	for i := range t.Matrix {
		row := make([]string, machines)
		n := strconv.Itoa(i + 1)
		for j, l := range labels {
			row[j] = l + n
		}
		t.Matrix[i] = row
	}
	return t
}

// columnLabel maps 0, 1, ..., 25, 26, ... to A, B, ..., Z, AA, ...
func columnLabel(j int) string {
	var buf []byte
	for j++; j > 0; j = (j - 1) / 26 {
		buf = append([]byte{byte('A' + (j-1)%26)}, buf...)
	}
	return string(buf)
}
