package noaa

import (
	"bufio"
	"compress/bzip2"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/domain"
)

// Column names of the StormData CSV this adapter reads.
const (
	colEventType  = "EVTYPE"
	colFatalities = "FATALITIES"
	colInjuries   = "INJURIES"
	colPropDmg    = "PROPDMG"
	colPropDmgExp = "PROPDMGEXP"
	colCropDmg    = "CROPDMG"
	colCropDmgExp = "CROPDMGEXP"
)

// columns holds the resolved position of each required column.
type columns struct {
	eventType  int
	fatalities int
	injuries   int
	propDmg    int
	propDmgExp int
	cropDmg    int
	cropDmgExp int
	width      int // highest index + 1; shorter rows are anomalies
}

// Source streams RawStormRecords from a StormData CSV file. It implements
// pipeline.RecordSource. Files named *.bz2 are decompressed on the fly.
type Source struct {
	file      *os.File
	csv       *csv.Reader
	cols      columns
	anomalies domain.AnomalyCounts
}

// Open opens a StormData CSV (plain or bzip2-compressed, decided by file
// extension) and resolves the required columns from its header row. A
// missing required column is a setup error, not a data anomaly.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	var r io.Reader = bufio.NewReaderSize(f, 1<<20)
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(r)
	}

	cr := csv.NewReader(r)
	// The historical data has ragged rows and stray quotes; field-count
	// problems are handled here as anomalies, not by the csv package.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Source{
		file:      f,
		csv:       cr,
		cols:      cols,
		anomalies: domain.NewAnomalyCounts(),
	}, nil
}

// Next returns the next raw record, skipping rows too short to carry the
// required columns (each counted as a short-row anomaly). Returns io.EOF
// when the file is exhausted.
func (s *Source) Next(ctx context.Context) (domain.RawStormRecord, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.RawStormRecord{}, err
		}

		row, err := s.csv.Read()
		if err == io.EOF {
			return domain.RawStormRecord{}, io.EOF
		}
		if err != nil {
			return domain.RawStormRecord{}, fmt.Errorf("read row: %w", err)
		}

		if len(row) < s.cols.width {
			s.anomalies.Bump(domain.AnomalyShortRow)
			continue
		}

		return domain.RawStormRecord{
			EventType:  row[s.cols.eventType],
			Fatalities: row[s.cols.fatalities],
			Injuries:   row[s.cols.injuries],
			PropDmg:    row[s.cols.propDmg],
			PropDmgExp: row[s.cols.propDmgExp],
			CropDmg:    row[s.cols.cropDmg],
			CropDmgExp: row[s.cols.cropDmgExp],
		}, nil
	}
}

// Anomalies reports rows the source skipped. Complete once Next has
// returned io.EOF.
func (s *Source) Anomalies() domain.AnomalyCounts {
	return s.anomalies
}

// Close closes the underlying file.
func (s *Source) Close() error {
	return s.file.Close()
}

func resolveColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToUpper(strings.TrimSpace(name))] = i
	}

	var cols columns
	var missing []string
	resolve := func(name string) int {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			return 0
		}
		if i >= cols.width {
			cols.width = i + 1
		}
		return i
	}

	cols.eventType = resolve(colEventType)
	cols.fatalities = resolve(colFatalities)
	cols.injuries = resolve(colInjuries)
	cols.propDmg = resolve(colPropDmg)
	cols.propDmgExp = resolve(colPropDmgExp)
	cols.cropDmg = resolve(colCropDmg)
	cols.cropDmgExp = resolve(colCropDmgExp)

	if len(missing) > 0 {
		return columns{}, fmt.Errorf("dataset header missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}
