// Package domain models NOAA Storm Events data and computes ranked
// public-health and economic impact summaries from it.
//
// # Data Source
//
// Records come from the NOAA National Weather Service storm database
// (StormData), a single CSV covering severe-weather events from 1950
// onward. Each row carries a free-text event-type label (EVTYPE),
// casualty counts (FATALITIES, INJURIES), and two damage figures
// (PROPDMG, CROPDMG) stored as a raw magnitude plus a one-character
// order-of-magnitude code (PROPDMGEXP, CROPDMGEXP).
//
// # Damage Exponent Codes
//
// The exponent columns are the messiest part of the database. The
// documented codes are K/M/B, but decades of hand entry left a wider
// set in the data. The legacy mapping, preserved exactly:
//
//	blank        0
//	+            1
//	0-8          10
//	h, H         100
//	k, K         1,000
//	m, M         1,000,000
//	b, B         1,000,000,000
//
// "-" and "?" appear in the historical data as placeholder junk. They
// normalize to 0 like any unrecognized code, but are still counted as
// anomalies so bad rows stay observable. See [DamageMultiplier].
//
// # Event-Type Labels
//
// EVTYPE is free text and inconsistently spelled ("TSTM WIND" vs
// "THUNDERSTORM WIND" vs "THUNDERSTORM WINDS"). The original pipeline
// does not canonicalize labels and neither does this package: grouping
// is exact-string, and distinctly-spelled labels are distinct
// categories. That is a known data-quality wrinkle of the dataset, not
// a bug in the aggregation.
//
// # Anomaly Accounting
//
// Data-quality problems (unmapped exponent codes, malformed numeric
// fields, short CSV rows) never abort a batch. Each one contributes
// zero to the affected total and bumps a per-kind counter in
// [AnomalyCounts], which is surfaced with the finished report.
package domain
