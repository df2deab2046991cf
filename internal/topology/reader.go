package topology

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// PromptText is printed before reading an interactive topology.
const PromptText = "Enter M-groups by N-machines:"

// maxLineBytes caps a single input line (1000 machine-ids of generous length).
const maxLineBytes = 1 << 20

// Read parses the line-oriented topology format from r.
//
// The first non-blank line holds "<groups> <machines_per_group>". Each of the
// next <groups> non-blank lines holds that group's machine-ids separated by
// whitespace. Lines starting with '#' are ignored. Anything after the last
// group row is not read.
//
// Read does not validate the result; rows that are short, long, or missing
// are left as-is so Validate can report them as ErrInvalidShape.
func Read(r io.Reader) (Topology, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	next := func() ([]string, bool) {
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			return strings.Fields(line), true
		}
		return nil, false
	}

	header, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return Topology{}, fmt.Errorf("topology: read header: %w", err)
		}
		return Topology{}, fmt.Errorf("%w: missing \"<groups> <machines>\" header", ErrMalformedInput)
	}
	if len(header) != 2 {
		return Topology{}, fmt.Errorf("%w: header %q must hold exactly two integers", ErrMalformedInput, strings.Join(header, " "))
	}
	groups, err := strconv.Atoi(header[0])
	if err != nil {
		return Topology{}, fmt.Errorf("%w: groups %q is not an integer", ErrMalformedInput, header[0])
	}
	machines, err := strconv.Atoi(header[1])
	if err != nil {
		return Topology{}, fmt.Errorf("%w: machines %q is not an integer", ErrMalformedInput, header[1])
	}

	t := Topology{Groups: groups, MachinesPerGroup: machines}
	for i := 0; i < groups; i++ {
		row, ok := next()
		if !ok {
			break
		}
		t.Matrix = append(t.Matrix, row)
	}
	if err := sc.Err(); err != nil {
		return Topology{}, fmt.Errorf("topology: read rows: %w", err)
	}
	return t, nil
}

// Prompt writes PromptText to out and reads a topology from in.
func Prompt(in io.Reader, out io.Writer) (Topology, error) {
	if _, err := fmt.Fprintln(out, PromptText); err != nil {
		return Topology{}, fmt.Errorf("topology: write prompt: %w", err)
	}
	return Read(in)
}

// ReadFile loads a topology from path. Files ending in .yaml or .yml are
// decoded as YAML; everything else uses the line format.
func ReadFile(path string) (Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return Topology{}, fmt.Errorf("topology: open file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return readYAML(f)
	default:
		return Read(f)
	}
}

// readYAML decodes a YAML topology document. Omitted dimensions are inferred
// from the matrix.
func readYAML(r io.Reader) (Topology, error) {
	var t Topology
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		if err == io.EOF {
			return Topology{}, fmt.Errorf("%w: empty yaml document", ErrMalformedInput)
		}
		return Topology{}, fmt.Errorf("%w: parse yaml: %w", ErrMalformedInput, err)
	}
	if t.Groups == 0 {
		t.Groups = len(t.Matrix)
	}
	if t.MachinesPerGroup == 0 && len(t.Matrix) > 0 {
		t.MachinesPerGroup = len(t.Matrix[0])
	}
	return t, nil
}

// Encode writes t in the line format accepted by Read.
func Encode(w io.Writer, t Topology) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", t.Groups, t.MachinesPerGroup)
	for _, row := range t.Matrix {
		fmt.Fprintln(bw, strings.Join(row, " "))
	}
	return bw.Flush()
}
