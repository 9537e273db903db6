package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankFixture() map[string]ImpactTotals {
	return map[string]ImpactTotals{
		"Tornado":   {Fatalities: 5, Injuries: 10, Damage: 25_000},
		"Flood":     {Fatalities: 1, Injuries: 2, Damage: 3_001_000},
		"Heat":      {Fatalities: 9, Injuries: 1, Damage: 0},
		"Ice Storm": {Fatalities: 0, Injuries: 7, Damage: 500},
	}
}

func TestTopK_ByMetric(t *testing.T) {
	totals := rankFixture()

	assert.Equal(t, []RankedEntry{{Label: "Heat", Value: 9}}, TopK(totals, MetricFatalities, 1))
	assert.Equal(t, []RankedEntry{{Label: "Tornado", Value: 10}}, TopK(totals, MetricInjuries, 1))
	assert.Equal(t, []RankedEntry{{Label: "Flood", Value: 3_001_000}}, TopK(totals, MetricDamage, 1))
}

func TestTopK_LengthAndOrder(t *testing.T) {
	totals := rankFixture()

	got := TopK(totals, MetricFatalities, 3)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Value, got[i].Value, "values must be non-increasing")
	}

	// Fewer labels than K returns everything, still sorted.
	got = TopK(totals, MetricDamage, 100)
	require.Len(t, got, len(totals))
	assert.Equal(t, "Flood", got[0].Label)
}

func TestTopK_KAtTheEdges(t *testing.T) {
	totals := rankFixture()

	assert.Empty(t, TopK(totals, MetricFatalities, 0))
	assert.Empty(t, TopK(totals, MetricFatalities, -5))
	assert.Empty(t, TopK(map[string]ImpactTotals{}, MetricFatalities, 10))
}

func TestTopK_DeterministicTies(t *testing.T) {
	totals := map[string]ImpactTotals{
		"B Event": {Fatalities: 4},
		"A Event": {Fatalities: 4},
		"C Event": {Fatalities: 4},
	}

	want := TopK(totals, MetricFatalities, 3)
	assert.Equal(t, []RankedEntry{
		{Label: "A Event", Value: 4},
		{Label: "B Event", Value: 4},
		{Label: "C Event", Value: 4},
	}, want)

	// Map iteration order varies between runs; the ranking must not.
	for range 20 {
		assert.Equal(t, want, TopK(totals, MetricFatalities, 3))
	}
}
