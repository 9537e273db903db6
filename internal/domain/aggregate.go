package domain

// ImpactTotals holds the running sums for one event-type label.
type ImpactTotals struct {
	Fatalities float64 `json:"fatalities"`
	Injuries   float64 `json:"injuries"`
	Damage     float64 `json:"damage"`
}

// Summary is the finalized result of one aggregation pass: per-label totals,
// the anomaly tally, and the number of records consumed. It is a snapshot
// and is not affected by further Add calls on the aggregator it came from.
type Summary struct {
	Totals    map[string]ImpactTotals
	Anomalies AnomalyCounts
	Records   int64
}

// Aggregator accumulates per-label impact totals in a single pass over a
// batch of event records. Grouping is exact-string on the event-type label;
// distinctly-spelled labels are distinct groups. Addition is commutative
// over non-negative values, so the finalized totals are independent of
// record order. Not safe for concurrent use.
type Aggregator struct {
	totals    map[string]*ImpactTotals
	anomalies AnomalyCounts
	records   int64
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		totals:    make(map[string]*ImpactTotals),
		anomalies: NewAnomalyCounts(),
	}
}

// Add folds one record into the running totals. Damage magnitudes are
// normalized through the exponent table; an unmapped code contributes a
// multiplier of 0 and bumps the matching anomaly counter.
func (a *Aggregator) Add(rec EventRecord) {
	a.records++

	g := a.totals[rec.EventType]
	if g == nil {
		g = &ImpactTotals{}
		a.totals[rec.EventType] = g
	}

	propMult, ok := DamageMultiplier(rec.PropDmgExp)
	if !ok {
		a.anomalies.Bump(AnomalyUnmappedPropCode)
	}
	cropMult, ok := DamageMultiplier(rec.CropDmgExp)
	if !ok {
		a.anomalies.Bump(AnomalyUnmappedCropCode)
	}

	g.Fatalities += rec.Fatalities
	g.Injuries += rec.Injuries
	g.Damage += rec.PropDmg*propMult + rec.CropDmg*cropMult
}

// CountAnomaly records an anomaly observed outside the aggregation itself,
// such as a malformed numeric field found during parsing, so the whole
// batch shares one tally.
func (a *Aggregator) CountAnomaly(kind AnomalyKind, n int64) {
	a.anomalies.BumpN(kind, n)
}

// Finalize snapshots the current state into a read-only Summary.
func (a *Aggregator) Finalize() Summary {
	totals := make(map[string]ImpactTotals, len(a.totals))
	for label, g := range a.totals {
		totals[label] = *g
	}
	return Summary{
		Totals:    totals,
		Anomalies: NewAnomalyCounts().Merge(a.anomalies),
		Records:   a.records,
	}
}
