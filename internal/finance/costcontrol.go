package finance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CostStatus classifies a cost category against its healthy band.
type CostStatus string

const (
	CostStatusNoData CostStatus = "NO_DATA"
	CostStatusGood   CostStatus = "GOOD"
	CostStatusOver   CostStatus = "OVER"
	CostStatusUnder  CostStatus = "UNDER"
)

// Band is a healthy range of cost as a percentage of expected revenue, inclusive.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ParseBand reads a band written as "min,max".
func ParseBand(s string) (Band, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Band{}, fmt.Errorf("band %q: want \"min,max\"", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Band{}, fmt.Errorf("band %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Band{}, fmt.Errorf("band %q: %w", s, err)
	}
	if lo > hi {
		return Band{}, fmt.Errorf("band %q: min greater than max", s)
	}
	return Band{Min: lo, Max: hi}, nil
}

// Bands holds one band per cost category.
type Bands struct {
	Material Band `json:"material"`
	Labor    Band `json:"labor"`
	Other    Band `json:"other"`
}

// DefaultBands are used when configuration does not override them.
var DefaultBands = Bands{
	Material: Band{Min: 35, Max: 50},
	Labor:    Band{Min: 15, Max: 25},
	Other:    Band{Min: 5, Max: 15},
}

// CostControl is the evaluation of one cost value against a band.
type CostControl struct {
	Value      decimal.Decimal `json:"value"`
	Percentage float64         `json:"percentage"`
	Band       Band            `json:"band"`
	Status     CostStatus      `json:"status"`
}

// Evaluate compares value as a share of total against band.
func Evaluate(value, total decimal.Decimal, band Band) CostControl {
	cc := CostControl{Value: value, Band: band}
	if !total.IsPositive() {
		cc.Status = CostStatusNoData
		return cc
	}

	// Classify on the exact share; only the reported percentage is rounded.
	exact := value.Div(total).Mul(hundred)
	cc.Percentage = roundPercent(exact)
	switch {
	case exact.GreaterThan(decimal.NewFromFloat(band.Max)):
		cc.Status = CostStatusOver
	case exact.LessThan(decimal.NewFromFloat(band.Min)):
		cc.Status = CostStatusUnder
	default:
		cc.Status = CostStatusGood
	}
	return cc
}

// CategoryControl is the cost-control view of a whole project.
type CategoryControl struct {
	Material CostControl `json:"material"`
	Labor    CostControl `json:"labor"`
	Other    CostControl `json:"other"`
}

// Over lists the categories whose cost is above their band.
func (cc CategoryControl) Over() []string {
	var out []string
	if cc.Material.Status == CostStatusOver {
		out = append(out, "material")
	}
	if cc.Labor.Status == CostStatusOver {
		out = append(out, "labor")
	}
	if cc.Other.Status == CostStatusOver {
		out = append(out, "other")
	}
	return out
}

// EvaluateCategories runs Evaluate for each cost category against expected revenue.
func EvaluateCategories(fin ProjectFinancials, bands Bands) CategoryControl {
	return CategoryControl{
		Material: Evaluate(fin.Costs.Material, fin.ExpectedRevenue, bands.Material),
		Labor:    Evaluate(fin.Costs.Labor, fin.ExpectedRevenue, bands.Labor),
		Other:    Evaluate(fin.Costs.Other, fin.ExpectedRevenue, bands.Other),
	}
}
