package domain

// AnomalyKind names a class of data-quality problem found while processing
// a batch. Kinds are stable strings so they can double as metric labels.
type AnomalyKind string

const (
	// AnomalyUnmappedPropCode counts property-damage exponent codes with no
	// entry in the multiplier table.
	AnomalyUnmappedPropCode AnomalyKind = "unmapped_property_code"
	// AnomalyUnmappedCropCode counts crop-damage exponent codes with no
	// entry in the multiplier table.
	AnomalyUnmappedCropCode AnomalyKind = "unmapped_crop_code"
	// AnomalyMalformedNumeric counts missing or unparsable numeric fields.
	AnomalyMalformedNumeric AnomalyKind = "malformed_numeric_field"
	// AnomalyShortRow counts CSV rows with too few columns to read.
	AnomalyShortRow AnomalyKind = "short_row"
)

// AnomalyCounts tallies anomalies per kind. The zero value is not usable;
// construct with make or NewAnomalyCounts.
type AnomalyCounts map[AnomalyKind]int64

// NewAnomalyCounts returns an empty, writable tally.
func NewAnomalyCounts() AnomalyCounts {
	return make(AnomalyCounts)
}

// Bump increments kind by one.
func (c AnomalyCounts) Bump(kind AnomalyKind) {
	c[kind]++
}

// BumpN increments kind by n. Non-positive n is a no-op so callers can pass
// raw counts straight through.
func (c AnomalyCounts) BumpN(kind AnomalyKind, n int64) {
	if n > 0 {
		c[kind] += n
	}
}

// Merge adds every count from other into c and returns c.
func (c AnomalyCounts) Merge(other AnomalyCounts) AnomalyCounts {
	for kind, n := range other {
		c[kind] += n
	}
	return c
}

// Total returns the sum across all kinds.
func (c AnomalyCounts) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}
