package noaa

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/domain"
)

func readAll(t *testing.T, src *Source) []domain.RawStormRecord {
	t.Helper()
	var records []domain.RawStormRecord
	for {
		rec, err := src.Next(context.Background())
		if err == io.EOF {
			return records
		}
		require.NoError(t, err)
		records = append(records, rec)
	}
}

func TestSource_PlainCSV(t *testing.T) {
	src, err := Open("testdata/sample.csv")
	require.NoError(t, err)
	defer src.Close()

	records := readAll(t, src)
	require.Len(t, records, 4)

	assert.Equal(t, domain.RawStormRecord{
		EventType:  "TORNADO",
		Fatalities: "5",
		Injuries:   "10",
		PropDmg:    "25",
		PropDmgExp: "K",
		CropDmg:    "0",
		CropDmgExp: "",
	}, records[0])
	assert.Equal(t, "FLOOD", records[1].EventType)
	assert.Equal(t, "?", records[2].PropDmgExp)
	assert.Equal(t, "HEAT", records[3].EventType)

	// The ragged line in the fixture is skipped and counted, not fatal.
	assert.Equal(t, int64(1), src.Anomalies()[domain.AnomalyShortRow])
}

func TestSource_Bzip2CSV(t *testing.T) {
	src, err := Open("testdata/sample_bz2.csv.bz2")
	require.NoError(t, err)
	defer src.Close()

	records := readAll(t, src)
	require.Len(t, records, 4)
	assert.Equal(t, "TORNADO", records[0].EventType)
	assert.Equal(t, int64(1), src.Anomalies()[domain.AnomalyShortRow])
}

func TestSource_FeedsAggregator(t *testing.T) {
	src, err := Open("testdata/sample.csv")
	require.NoError(t, err)
	defer src.Close()

	agg := domain.NewAggregator()
	for _, raw := range readAll(t, src) {
		rec, malformed := domain.ParseRecord(raw)
		agg.CountAnomaly(domain.AnomalyMalformedNumeric, int64(malformed))
		agg.Add(rec)
	}
	s := agg.Finalize()

	assert.Equal(t, 25_000.0, s.Totals["TORNADO"].Damage)
	assert.Equal(t, 3_001_000.0, s.Totals["FLOOD"].Damage)
	assert.Zero(t, s.Totals["HAIL"].Damage)
	assert.Equal(t, int64(1), s.Anomalies[domain.AnomalyUnmappedPropCode])
}

func TestOpen_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("EVTYPE,FATALITIES,INJURIES,PROPDMG,CROPDMG,CROPDMGEXP\n"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROPDMGEXP")
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestSource_ContextCancelled(t *testing.T) {
	src, err := Open("testdata/sample.csv")
	require.NoError(t, err)
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
