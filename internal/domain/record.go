package domain

import (
	"strconv"
	"strings"
)

// RawStormRecord holds the string fields of one StormData CSV row, exactly
// as read from the file. Column names follow the NOAA schema.
type RawStormRecord struct {
	EventType  string // EVTYPE
	Fatalities string // FATALITIES
	Injuries   string // INJURIES
	PropDmg    string // PROPDMG
	PropDmgExp string // PROPDMGEXP
	CropDmg    string // CROPDMG
	CropDmgExp string // CROPDMGEXP
}

// EventRecord is the typed representation of a storm event row. Numeric
// fields are non-negative; the exponent codes stay raw until aggregation
// resolves them through the multiplier table.
type EventRecord struct {
	EventType  string
	Fatalities float64
	Injuries   float64
	PropDmg    float64
	PropDmgExp string
	CropDmg    float64
	CropDmgExp string
}

// ParseRecord converts a raw row into a typed EventRecord. A missing or
// unparsable numeric field contributes zero and is reported in the returned
// malformed count; the record itself is still usable and still grouped.
func ParseRecord(raw RawStormRecord) (EventRecord, int) {
	var malformed int
	parse := func(s string) float64 {
		s = strings.TrimSpace(s)
		if s == "" {
			malformed++
			return 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			malformed++
			return 0
		}
		return v
	}

	rec := EventRecord{
		EventType:  raw.EventType,
		Fatalities: parse(raw.Fatalities),
		Injuries:   parse(raw.Injuries),
		PropDmg:    parse(raw.PropDmg),
		PropDmgExp: raw.PropDmgExp,
		CropDmg:    parse(raw.CropDmg),
		CropDmgExp: raw.CropDmgExp,
	}
	return rec, malformed
}
