package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	band := Band{Min: 35, Max: 50}

	tests := []struct {
		name     string
		value    string
		total    string
		wantPct  float64
		expected CostStatus
	}{
		{name: "within band", value: "40", total: "100", wantPct: 40, expected: CostStatusGood},
		{name: "lower edge inclusive", value: "35", total: "100", wantPct: 35, expected: CostStatusGood},
		{name: "upper edge inclusive", value: "50", total: "100", wantPct: 50, expected: CostStatusGood},
		{name: "over", value: "60", total: "100", wantPct: 60, expected: CostStatusOver},
		{name: "under", value: "10", total: "100", wantPct: 10, expected: CostStatusUnder},
		{name: "just above upper edge", value: "500000.40", total: "1000000.00", wantPct: 50, expected: CostStatusOver},
		{name: "just below lower edge", value: "349999.60", total: "1000000.00", wantPct: 35, expected: CostStatusUnder},
		{name: "no total", value: "10", total: "0", wantPct: 0, expected: CostStatusNoData},
		{name: "no total no value", value: "0", total: "0", wantPct: 0, expected: CostStatusNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(dec(tt.value), dec(tt.total), band)
			assert.Equal(t, tt.expected, got.Status)
			assert.Equal(t, tt.wantPct, got.Percentage)
			assert.Equal(t, band, got.Band)
		})
	}
}

func TestEvaluateCategories(t *testing.T) {
	fin := ProjectFinancials{
		ExpectedRevenue: dec("1000"),
		Costs:           CostBreakdown{Material: dec("600"), Labor: dec("200"), Other: dec("10")},
	}

	cc := EvaluateCategories(fin, DefaultBands)

	assert.Equal(t, CostStatusOver, cc.Material.Status)
	assert.Equal(t, CostStatusGood, cc.Labor.Status)
	assert.Equal(t, CostStatusUnder, cc.Other.Status)
	assert.Equal(t, []string{"material"}, cc.Over())
}

func TestParseBand(t *testing.T) {
	b, err := ParseBand(" 15 , 25 ")
	require.NoError(t, err)
	assert.Equal(t, Band{Min: 15, Max: 25}, b)

	for _, bad := range []string{"", "15", "a,b", "30,10", "1,2,3"} {
		_, err := ParseBand(bad)
		assert.Errorf(t, err, "input %q", bad)
	}
}
