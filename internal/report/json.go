package report

import (
	"encoding/json"
	"io"

	"github.com/dccapacity/dccapacity/internal/capacity"
)

type jsonResult struct {
	TotalRPS         float64          `json:"total_rps"`
	Groups           int              `json:"groups"`
	MachinesPerGroup int              `json:"machines_per_group"`
	Variant          string           `json:"variant"`
	MaxGroupRPS      float64          `json:"max_group_rps"`
	SubsetCapacity   float64          `json:"subset_capacity"`
	Occurrences      []jsonOccurrence `json:"occurrences"`
	Machines         []jsonMachine    `json:"machines"`
}

type jsonOccurrence struct {
	Key       string  `json:"key"`
	Position  int     `json:"position"`
	MachineID string  `json:"machine_id"`
	Weight    float64 `json:"weight"`
	Count     int     `json:"count"`
}

type jsonMachine struct {
	MachineID string  `json:"machine_id"`
	MinWeight float64 `json:"min_weight"`
	Units     int     `json:"units"`
	RPS       float64 `json:"rps"`
}

// JSON writes res as an indented JSON document.
func JSON(w io.Writer, res *capacity.Result) error {
	out := jsonResult{
		TotalRPS:         res.TotalRPS,
		Groups:           res.Groups,
		MachinesPerGroup: res.MachinesPerGroup,
		Variant:          string(res.Params.Variant),
		MaxGroupRPS:      res.Params.MaxGroupRPS,
		SubsetCapacity:   res.SubsetCapacity,
		Occurrences:      make([]jsonOccurrence, 0, len(res.Occurrences)),
		Machines:         make([]jsonMachine, 0, len(res.Aggregates)),
	}
	for _, k := range res.Occurrences.Keys() {
		out.Occurrences = append(out.Occurrences, jsonOccurrence{
			Key:       k.String(),
			Position:  k.Position,
			MachineID: k.MachineID,
			Weight:    res.Occurrences[k],
			Count:     res.Occurrences.Count(k, res.Params.UnitWeight),
		})
	}
	for _, id := range res.Aggregates.IDs() {
		out.Machines = append(out.Machines, jsonMachine{
			MachineID: id,
			MinWeight: res.Aggregates[id],
			Units:     res.Units(id),
			RPS:       res.Contribution(id),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
