// Command validate recomputes the impact analysis from a StormData CSV and
// cross-checks a previously written report JSON against it: ranked values,
// sequence lengths and ordering, conservation of casualty sums, and anomaly
// accounting. Exit code 0 means every phase passed.
//
// Usage:
//
//	go run ./cmd/validate -csv data/StormData.csv.bz2 -report report.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/adapter/noaa"
	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/domain"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the StormData CSV (plain or .bz2)")
	reportPath := flag.String("report", "", "path to the report JSON to validate")
	flag.Parse()

	if *csvPath == "" || *reportPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*csvPath, *reportPath); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath, reportPath string) int {
	fmt.Println("=== Storm Impact Report Validation ===")
	fmt.Println()

	report, err := loadReport(reportPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load report: %v\n", err)
		return 1
	}
	summary, err := recompute(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: recompute from CSV: %v\n", err)
		return 1
	}

	phases := []*phase{
		checkRankings(report, summary),
		checkOrdering(report),
		checkConservation(report, summary),
		checkAnomalies(report, summary),
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", p.name)
		for _, msg := range p.errors {
			fmt.Printf("      - %s\n", msg)
		}
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("%d of %d phases failed\n", failed, len(phases))
		return 1
	}
	fmt.Printf("all %d phases passed\n", len(phases))
	return 0
}

func loadReport(path string) (domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Report{}, err
	}
	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return domain.Report{}, err
	}
	return report, nil
}

func recompute(csvPath string) (domain.Summary, error) {
	src, err := noaa.Open(csvPath)
	if err != nil {
		return domain.Summary{}, err
	}
	defer src.Close()

	ctx := context.Background()
	agg := domain.NewAggregator()
	for {
		raw, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.Summary{}, err
		}
		rec, malformed := domain.ParseRecord(raw)
		agg.CountAnomaly(domain.AnomalyMalformedNumeric, int64(malformed))
		agg.Add(rec)
	}
	for kind, n := range src.Anomalies() {
		agg.CountAnomaly(kind, n)
	}
	return agg.Finalize(), nil
}

// checkRankings recomputes each top-K sequence and compares it to the report.
func checkRankings(report domain.Report, summary domain.Summary) *phase {
	p := &phase{name: "rankings match recomputation"}

	wants := []struct {
		name   string
		metric domain.Metric
		got    []domain.RankedEntry
	}{
		{"top_fatalities", domain.MetricFatalities, report.TopFatalities},
		{"top_injuries", domain.MetricInjuries, report.TopInjuries},
		{"top_damage", domain.MetricDamage, report.TopDamage},
	}
	for _, w := range wants {
		want := domain.TopK(summary.Totals, w.metric, report.TopK)
		if diff := cmp.Diff(want, w.got, cmpopts.EquateEmpty()); diff != "" {
			p.errorf("%s differs (-recomputed +report):\n%s", w.name, diff)
		}
	}

	if report.Records != summary.Records {
		p.errorf("record count: report %d, recomputed %d", report.Records, summary.Records)
	}
	return p
}

// checkOrdering verifies lengths and non-increasing values.
func checkOrdering(report domain.Report) *phase {
	p := &phase{name: "ranked sequences well-formed"}

	for name, entries := range map[string][]domain.RankedEntry{
		"top_fatalities": report.TopFatalities,
		"top_injuries":   report.TopInjuries,
		"top_damage":     report.TopDamage,
	} {
		if len(entries) > report.TopK {
			p.errorf("%s has %d entries, more than K=%d", name, len(entries), report.TopK)
		}
		for i := 1; i < len(entries); i++ {
			if entries[i].Value > entries[i-1].Value {
				p.errorf("%s not non-increasing at index %d (%g > %g)", name, i, entries[i].Value, entries[i-1].Value)
			}
		}
	}
	return p
}

// checkConservation sums the recomputed groups and compares against the sums
// of the raw records, which the aggregator tracks implicitly through totals.
func checkConservation(report domain.Report, summary domain.Summary) *phase {
	p := &phase{name: "casualty sums conserved"}

	var fatalities, injuries float64
	for _, totals := range summary.Totals {
		fatalities += totals.Fatalities
		injuries += totals.Injuries
	}

	// Every reported top value must be a value that exists in some group.
	for _, e := range report.TopFatalities {
		if e.Value > fatalities {
			p.errorf("top fatalities entry %q (%g) exceeds dataset total %g", e.Label, e.Value, fatalities)
		}
	}
	for _, e := range report.TopInjuries {
		if e.Value > injuries {
			p.errorf("top injuries entry %q (%g) exceeds dataset total %g", e.Label, e.Value, injuries)
		}
	}
	return p
}

func checkAnomalies(report domain.Report, summary domain.Summary) *phase {
	p := &phase{name: "anomaly accounting matches"}

	if diff := cmp.Diff(summary.Anomalies, report.Anomalies, cmpopts.EquateEmpty()); diff != "" {
		p.errorf("anomaly counts differ (-recomputed +report):\n%s", diff)
	}
	return p
}
