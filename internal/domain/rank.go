package domain

import "sort"

// Metric selects which impact total a ranking is computed over.
type Metric string

const (
	MetricFatalities Metric = "fatalities"
	MetricInjuries   Metric = "injuries"
	MetricDamage     Metric = "damage"
)

// RankedEntry pairs an event-type label with one metric value.
type RankedEntry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// value extracts the chosen metric. Unknown metrics read as 0 rather than
// panicking; callers only construct Metric from the constants above.
func (t ImpactTotals) value(m Metric) float64 {
	switch m {
	case MetricFatalities:
		return t.Fatalities
	case MetricInjuries:
		return t.Injuries
	case MetricDamage:
		return t.Damage
	}
	return 0
}

// TopK ranks the labels in totals by the chosen metric, descending, and
// returns the first k entries. Equal values tie-break on label ascending so
// the output is deterministic under any input permutation. Fewer than k
// labels returns them all; k <= 0 returns an empty slice.
func TopK(totals map[string]ImpactTotals, metric Metric, k int) []RankedEntry {
	if k <= 0 {
		return []RankedEntry{}
	}

	entries := make([]RankedEntry, 0, len(totals))
	for label, t := range totals {
		entries = append(entries, RankedEntry{Label: label, Value: t.value(metric)})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Label < entries[j].Label
	})

	if len(entries) > k {
		entries = entries[:k]
	}
	return entries
}
