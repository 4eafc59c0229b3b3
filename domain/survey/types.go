// Package survey holds the result types produced by the analysis core.
// Everything here is plain request-scoped data: no external resources,
// nothing outlives the request that produced it.
package survey

import (
	"encoding/json"
	"math"
)

// Undefined is the uniform placeholder for metrics that cannot be computed
// (insufficient sample size, near-zero variance, non-finite result). It is
// rendered literally in JSON so consumers never see NaN or null.
const Undefined = "-"

// Metric is a real number or an explicit undefined marker.
type Metric struct {
	Value   float64
	Defined bool
}

// Num returns a defined metric.
func Num(v float64) Metric {
	return Metric{Value: v, Defined: true}
}

// None returns the undefined metric.
func None() Metric {
	return Metric{}
}

// MarshalJSON renders the value, or the literal "-" when undefined.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Defined || math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
		return json.Marshal(Undefined)
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts either a number or the "-" marker.
func (m *Metric) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == Undefined {
			*m = None()
			return nil
		}
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Num(v)
	return nil
}

// StatsRecord holds the descriptive statistics for one question over one row
// subset. Field names follow the report layout: AS is the arithmetic mean,
// Max D and K-S p are the Kolmogorov-Smirnov statistic and p-value.
type StatsRecord struct {
	Question string `json:"question"`
	N        int    `json:"N"`
	Mean     Metric `json:"AS"`
	StdDev   Metric `json:"SD"`
	Median   Metric `json:"Median"`
	Skewness Metric `json:"Ske"`
	Kurtosis Metric `json:"Kur"`
	KSStat   Metric `json:"Max D"`
	KSPValue Metric `json:"K-S p"`
}

// GroupingInfo describes one selected grouping column.
type GroupingInfo struct {
	Label  string   `json:"label"`
	Column string   `json:"column"`
	Values []string `json:"values"`
}

// Result is the sole output of the analysis core.
//
// Grouped maps positional group keys ("group_0", "group_1", ...) to a map
// from group value to per-question records. A group value present in the
// GroupingInfo value list may be absent from Grouped when none of its
// partitions produced a record.
type Result struct {
	Overall   []StatsRecord                       `json:"overall"`
	Grouped   map[string]map[string][]StatsRecord `json:"grouped"`
	Groupings map[string]GroupingInfo             `json:"groupings"`
}

// HasData reports whether any Likert question produced overall statistics.
func (r Result) HasData() bool {
	return len(r.Overall) > 0
}
