package domain

import "time"

// Report is the finished impact summary for one dataset: the three ranked
// sequences plus batch bookkeeping. It is the unit handed to sinks and
// serialized as the service's public output.
type Report struct {
	Dataset       string        `json:"dataset"`
	GeneratedAt   time.Time     `json:"generated_at"`
	Records       int64         `json:"records"`
	TopK          int           `json:"top_k"`
	TopFatalities []RankedEntry `json:"top_fatalities"`
	TopInjuries   []RankedEntry `json:"top_injuries"`
	TopDamage     []RankedEntry `json:"top_damage"`
	Anomalies     AnomalyCounts `json:"anomalies"`
}

// BuildReport ranks a finalized summary into a Report. The three rankings
// are computed independently, each over its own metric. GeneratedAt comes
// from the package clock so tests can freeze it.
func BuildReport(dataset string, s Summary, k int) Report {
	return Report{
		Dataset:       dataset,
		GeneratedAt:   clock.Now().UTC(),
		Records:       s.Records,
		TopK:          k,
		TopFatalities: TopK(s.Totals, MetricFatalities, k),
		TopInjuries:   TopK(s.Totals, MetricInjuries, k),
		TopDamage:     TopK(s.Totals, MetricDamage, k),
		Anomalies:     NewAnomalyCounts().Merge(s.Anomalies),
	}
}
