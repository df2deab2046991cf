package report

import (
	"fmt"
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/dccapacity/dccapacity/internal/capacity"
)

// Exposed metric names.
const (
	MetricTotalRPS         = "dccapacity_total_rps"
	MetricGroups           = "dccapacity_groups"
	MetricMachinesPerGroup = "dccapacity_machines_per_group"
	MetricSubsetCapacity   = "dccapacity_subset_capacity_rps"
	MetricMachineUnits     = "dccapacity_machine_units"
	MetricMachineRPS       = "dccapacity_machine_rps"
)

// Families converts res into Prometheus metric families, in a fixed order.
func Families(res *capacity.Result) []*dto.MetricFamily {
	variant := string(res.Params.Variant)

	fams := []*dto.MetricFamily{
		gaugeFamily(MetricTotalRPS, "Estimated aggregate requests per second.",
			gauge(res.TotalRPS, "variant", variant)),
		gaugeFamily(MetricGroups, "Number of groups in the topology.",
			gauge(float64(res.Groups))),
		gaugeFamily(MetricMachinesPerGroup, "Machine slots per group.",
			gauge(float64(res.MachinesPerGroup))),
		gaugeFamily(MetricSubsetCapacity, "Requests per second attributed to one machine slot.",
			gauge(res.SubsetCapacity)),
	}

	ids := res.Aggregates.IDs()
	units := make([]*dto.Metric, 0, len(ids))
	rps := make([]*dto.Metric, 0, len(ids))
	for _, id := range ids {
		units = append(units, gauge(float64(res.Units(id)), "machine_id", id))
		rps = append(rps, gauge(res.Contribution(id), "machine_id", id))
	}
	fams = append(fams,
		gaugeFamily(MetricMachineUnits, "Minimum occurrence count of a machine id across positions.", units...),
		gaugeFamily(MetricMachineRPS, "Requests per second contributed by a machine id.", rps...),
	)
	return fams
}

// Prometheus writes res in the Prometheus text exposition format.
func Prometheus(w io.Writer, res *capacity.Result) error {
	for _, mf := range Families(res) {
		if len(mf.GetMetric()) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("report: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func gaugeFamily(name, help string, metrics ...*dto.Metric) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: metrics,
	}
}

// gauge builds a gauge sample; labels are name/value pairs.
func gauge(v float64, labels ...string) *dto.Metric {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: proto.Float64(v)}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labels[i]),
			Value: proto.String(labels[i+1]),
		})
	}
	return m
}
