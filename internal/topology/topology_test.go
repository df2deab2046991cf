package topology

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// --- Validate ---

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		topo Topology
		want error
	}{
		{
			name: "single slot",
			topo: Topology{Groups: 1, MachinesPerGroup: 1, Matrix: [][]string{{"A1"}}},
		},
		{
			name: "zero groups",
			topo: Topology{Groups: 0, MachinesPerGroup: 1},
			want: ErrInvalidTopology,
		},
		{
			name: "zero machines",
			topo: Topology{Groups: 1, MachinesPerGroup: 0, Matrix: [][]string{{}}},
			want: ErrInvalidTopology,
		},
		{
			name: "negative groups",
			topo: Topology{Groups: -3, MachinesPerGroup: 2},
			want: ErrInvalidTopology,
		},
		{
			name: "groups over limit",
			topo: Topology{Groups: DefaultMaxGroups + 1, MachinesPerGroup: 1},
			want: ErrInvalidTopology,
		},
		{
			name: "machines over limit",
			topo: Topology{Groups: 1, MachinesPerGroup: DefaultMaxMachines + 1},
			want: ErrInvalidTopology,
		},
		{
			name: "missing row",
			topo: Topology{Groups: 2, MachinesPerGroup: 1, Matrix: [][]string{{"A1"}}},
			want: ErrInvalidShape,
		},
		{
			name: "short row",
			topo: Topology{Groups: 2, MachinesPerGroup: 2, Matrix: [][]string{{"A1", "B1"}, {"A2"}}},
			want: ErrInvalidShape,
		},
		{
			name: "blank machine id",
			topo: Topology{Groups: 1, MachinesPerGroup: 2, Matrix: [][]string{{"A1", " "}}},
			want: ErrInvalidShape,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.topo.Validate(DefaultLimits())
			if tc.want == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("Validate() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidate_ZeroLimitsAreUnbounded(t *testing.T) {
	topo := Generate(DefaultMaxGroups+1, 1)
	if err := topo.Validate(Limits{}); err != nil {
		t.Errorf("Validate(Limits{}) = %v, want nil", err)
	}
}

func TestLimitsCheck(t *testing.T) {
	l := DefaultLimits()
	tests := []struct {
		groups, machines int
		ok               bool
	}{
		{1, 1, true},
		{DefaultMaxGroups, DefaultMaxMachines, true},
		{0, 1, false},
		{1, -1, false},
		{DefaultMaxGroups + 1, 1, false},
		{1, DefaultMaxMachines + 1, false},
		{100000, 100000, false},
	}
	for _, tc := range tests {
		err := l.Check(tc.groups, tc.machines)
		if tc.ok && err != nil {
			t.Errorf("Check(%d, %d) = %v, want nil", tc.groups, tc.machines, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidTopology) {
			t.Errorf("Check(%d, %d) = %v, want ErrInvalidTopology", tc.groups, tc.machines, err)
		}
	}
}

func TestMachineIDs_FirstSeenOrder(t *testing.T) {
	topo := Topology{Groups: 2, MachinesPerGroup: 2, Matrix: [][]string{{"B", "A"}, {"A", "C"}}}
	want := []string{"B", "A", "C"}
	if diff := cmp.Diff(want, topo.MachineIDs()); diff != "" {
		t.Errorf("MachineIDs() mismatch (-want +got):\n%s", diff)
	}
}

// --- Read ---

func TestRead_UsageExample(t *testing.T) {
	in := `3 4
A1 B1 C1 D1
A2 B2 C2 D2
A3 B3 C3 D3
`
	got, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	if diff := cmp.Diff(Generate(3, 4), got); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
	if err := got.Validate(DefaultLimits()); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestRead_SkipsBlankAndCommentLines(t *testing.T) {
	in := `
# two racks, two slots
2 2

A1   B1
# second rack
A1	B1
`
	got, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	want := [][]string{{"A1", "B1"}, {"A1", "B1"}}
	if diff := cmp.Diff(want, got.Matrix); diff != "" {
		t.Errorf("Matrix mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_IgnoresTrailingRows(t *testing.T) {
	got, err := Read(strings.NewReader("1 1\nA1\nB1\n"))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	if len(got.Matrix) != 1 {
		t.Errorf("rows = %d, want 1", len(got.Matrix))
	}
}

func TestRead_MissingRowsFailValidation(t *testing.T) {
	got, err := Read(strings.NewReader("3 1\nA1\n"))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	if err := got.Validate(DefaultLimits()); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Validate() = %v, want ErrInvalidShape", err)
	}
}

func TestRead_MalformedHeader(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"only blanks", "\n   \n"},
		{"one field", "3\n"},
		{"three fields", "3 4 5\n"},
		{"groups not int", "x 4\n"},
		{"machines not int", "3 y\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.in))
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("Read(%q) error = %v, want ErrMalformedInput", tc.in, err)
			}
		})
	}
}

func TestPrompt_WritesBanner(t *testing.T) {
	var out strings.Builder
	got, err := Prompt(strings.NewReader("1 1\nA1\n"), &out)
	if err != nil {
		t.Fatalf("Prompt() unexpected error: %v", err)
	}
	if out.String() != PromptText+"\n" {
		t.Errorf("prompt output = %q, want %q", out.String(), PromptText+"\n")
	}
	if got.Matrix[0][0] != "A1" {
		t.Errorf("Matrix[0][0] = %q, want A1", got.Matrix[0][0])
	}
}

// --- ReadFile ---

func TestReadFile_LineFormat(t *testing.T) {
	path := writeTemp(t, "topology.txt", "2 2\nA1 B1\nA1 B1\n")
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}
	if got.Groups != 2 || got.MachinesPerGroup != 2 {
		t.Errorf("dims = %dx%d, want 2x2", got.Groups, got.MachinesPerGroup)
	}
}

func TestReadFile_YAML(t *testing.T) {
	path := writeTemp(t, "topology.yaml", `
groups: 2
machines_per_group: 2
matrix:
  - [A1, B1]
  - [A2, B2]
`)
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}
	if diff := cmp.Diff(Generate(2, 2), got); diff != "" {
		t.Errorf("ReadFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFile_YAMLInfersDimensions(t *testing.T) {
	path := writeTemp(t, "topology.yml", `
matrix:
  - [A1, B1, C1]
`)
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}
	if got.Groups != 1 || got.MachinesPerGroup != 3 {
		t.Errorf("dims = %dx%d, want 1x3", got.Groups, got.MachinesPerGroup)
	}
}

func TestReadFile_YAMLInvalid(t *testing.T) {
	path := writeTemp(t, "topology.yaml", "matrix: [[A1\n")
	_, err := ReadFile(path)
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("ReadFile() error = %v, want ErrMalformedInput", err)
	}
	var typeErr *yaml.TypeError
	path = writeTemp(t, "topology.yaml", "groups: many\n")
	if _, err := ReadFile(path); !errors.As(err, &typeErr) {
		t.Errorf("ReadFile() error = %v, want wrapped *yaml.TypeError", err)
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want os.ErrNotExist", err)
	}
}

// --- Generate / Encode ---

func TestGenerate(t *testing.T) {
	got := Generate(2, 3)
	want := Topology{
		Groups:           2,
		MachinesPerGroup: 3,
		Matrix:           [][]string{{"A1", "B1", "C1"}, {"A2", "B2", "C2"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generate(2, 3) mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_NonPositive(t *testing.T) {
	got := Generate(0, 4)
	if got.Matrix != nil {
		t.Errorf("Matrix = %v, want nil", got.Matrix)
	}
	if err := got.Validate(DefaultLimits()); !errors.Is(err, ErrInvalidTopology) {
		t.Errorf("Validate() = %v, want ErrInvalidTopology", err)
	}
}

func TestColumnLabel(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "A"},
		{25, "Z"},
		{26, "AA"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tc := range tests {
		if got := columnLabel(tc.in); got != tc.want {
			t.Errorf("columnLabel(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEncode_ReadsBack(t *testing.T) {
	orig := Generate(3, 28)
	var buf strings.Builder
	if err := Encode(&buf, orig); err != nil {
		t.Fatalf("Encode() unexpected error: %v", err)
	}
	got, err := Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Errorf("Encode/Read mismatch (-want +got):\n%s", diff)
	}
}

// writeTemp writes content to name inside a fresh temp dir and returns the path.
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
