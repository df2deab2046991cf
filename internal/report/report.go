package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dccapacity/dccapacity/internal/capacity"
)

// Format selects a renderer.
type Format string

// Supported formats.
const (
	FormatTable      Format = "table"
	FormatDetailed   Format = "detailed"
	FormatJSON       Format = "json"
	FormatPrometheus Format = "prometheus"
)

// ErrUnknownFormat is returned by ParseFormat and Write.
var ErrUnknownFormat = errors.New("report: unknown format")

const rule = "-------------------------------------"

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatDetailed, FormatJSON, FormatPrometheus:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
	}
}

// Write renders res to w in the given format.
func Write(w io.Writer, f Format, res *capacity.Result) error {
	switch f {
	case FormatTable:
		return Summary(w, res)
	case FormatDetailed:
		return Detailed(w, res)
	case FormatJSON:
		return JSON(w, res)
	case FormatPrometheus:
		return Prometheus(w, res)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
}

// Summary writes the configuration block:
//
//	-------------------------------------
//	Data Center Configuration
//	Requests Per Second = 100
//	M-group             = 1
//	N-machines          = 1
//	-------------------------------------
func Summary(w io.Writer, res *capacity.Result) error {
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Data Center Configuration")
	fmt.Fprintf(&b, "Requests Per Second = %s\n", Number(res.TotalRPS))
	fmt.Fprintf(&b, "M-group             = %d\n", res.Groups)
	fmt.Fprintf(&b, "N-machines          = %d\n", res.MachinesPerGroup)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)
	_, err := io.WriteString(w, b.String())
	return err
}

// Detailed writes the summary followed by the estimator settings, the
// occurrence tally and the per-machine-id minimum table.
func Detailed(w io.Writer, res *capacity.Result) error {
	if err := Summary(w, res); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Variant\t%s\n", res.Params.Variant)
	fmt.Fprintf(tw, "Max group RPS\t%s\n", Number(res.Params.MaxGroupRPS))
	fmt.Fprintf(tw, "Subset capacity\t%s\n", Number(res.SubsetCapacity))
	fmt.Fprintf(tw, "Distinct machine ids\t%d\n", len(res.Aggregates))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "POSITION\tMACHINE_ID\tWEIGHT\tCOUNT")
	for _, k := range res.Occurrences.Keys() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n",
			k.Position, k.MachineID,
			Number(res.Occurrences[k]),
			res.Occurrences.Count(k, res.Params.UnitWeight),
		)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "MACHINE_ID\tMIN_WEIGHT\tUNITS\tRPS")
	for _, id := range res.Aggregates.IDs() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			id,
			Number(res.Aggregates[id]),
			res.Units(id),
			Number(res.Contribution(id)),
		)
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}

// Number formats v with at most four decimals and no trailing zeros.
func Number(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
