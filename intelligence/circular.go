package intelligence

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"go-wastegrid/types"
)

// WasteEconomics is the unit-economics row for one waste type. Money columns
// are quoted in currency units per tonne; every computation scales by /1000
// to per-kg, uniformly. Environmental columns are already per kg.
type WasteEconomics struct {
	CollectionCost       int     // per tonne
	ProcessingCost       int     // per tonne
	SalePrice            int     // per tonne
	CO2SavedKg           float64 // per kg processed
	WaterSavedL          float64 // per kg
	EnergySavedKWh       float64 // per kg
	RecyclablePercentage int
}

var wasteEconomicsTable = map[types.WasteType]WasteEconomics{
	types.Plastic:      {CollectionCost: 150, ProcessingCost: 650, SalePrice: 4500, CO2SavedKg: 0.95, WaterSavedL: 650, EnergySavedKWh: 78, RecyclablePercentage: 95},
	types.Organic:      {CollectionCost: 100, ProcessingCost: 420, SalePrice: 2800, CO2SavedKg: 1.2, WaterSavedL: 450, EnergySavedKWh: 45, RecyclablePercentage: 85},
	types.EWaste:       {CollectionCost: 500, ProcessingCost: 2100, SalePrice: 8500, CO2SavedKg: 2.1, WaterSavedL: 200, EnergySavedKWh: 125, RecyclablePercentage: 78},
	types.Construction: {CollectionCost: 200, ProcessingCost: 800, SalePrice: 3200, CO2SavedKg: 0.5, WaterSavedL: 300, EnergySavedKWh: 35, RecyclablePercentage: 60},
	types.Metal:        {CollectionCost: 250, ProcessingCost: 900, SalePrice: 6200, CO2SavedKg: 1.8, WaterSavedL: 380, EnergySavedKWh: 110, RecyclablePercentage: 92},
	types.Mixed:        {CollectionCost: 180, ProcessingCost: 720, SalePrice: 2100, CO2SavedKg: 0.4, WaterSavedL: 220, EnergySavedKWh: 28, RecyclablePercentage: 45},
	types.Glass:        {CollectionCost: 120, ProcessingCost: 480, SalePrice: 1900, CO2SavedKg: 0.3, WaterSavedL: 180, EnergySavedKWh: 42, RecyclablePercentage: 90},
	types.Hazardous:    {CollectionCost: 700, ProcessingCost: 3200, SalePrice: 3600, CO2SavedKg: 0.6, WaterSavedL: 150, EnergySavedKWh: 20, RecyclablePercentage: 35},
}

const kgPerJob = 50.0

type Processor struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distanceKm"`
	CapacityKg float64 `json:"capacityKg"`
	RatePct    int     `json:"ratePct"`
}

// The processor directory is static reference data for the pilot city.
var localProcessors = []Processor{
	{ID: 1, Name: "Madurai Recycling Hub", DistanceKm: 2.1, CapacityKg: 150, RatePct: 85},
	{ID: 2, Name: "Green Earth Processing", DistanceKm: 4.5, CapacityKg: 200, RatePct: 75},
	{ID: 3, Name: "Eco Industries Tamil Nadu", DistanceKm: 6.2, CapacityKg: 100, RatePct: 95},
}

type RevenueBreakdown struct {
	Collection decimal.Decimal `json:"collection"`
	Sale       decimal.Decimal `json:"sale"`
	Processing decimal.Decimal `json:"processing"`
	Net        decimal.Decimal `json:"net"`
}

type EnvironmentalImpact struct {
	CO2SavedKg     float64 `json:"co2SavedKg"`
	WaterSavedL    float64 `json:"waterSavedL"`
	EnergySavedKWh float64 `json:"energySavedKWh"`
}

type CircularValue struct {
	WasteType     types.WasteType     `json:"wasteType"`
	WeightKg      float64             `json:"weightKg"`
	Revenue       RevenueBreakdown    `json:"revenue"`
	Environmental EnvironmentalImpact `json:"environmental"`
	Processors    []Processor         `json:"processors"`
	JobsEstimate  int                 `json:"jobsEstimate"`
	RecyclablePct int                 `json:"recyclablePct"`
}

// CalculateCircularValue converts a weight of one waste type into revenue,
// environmental and employment estimates. Unknown types fall back to the
// plastic row, the densest stream in the pilot data.
func CalculateCircularValue(wasteType types.WasteType, weightKg float64) CircularValue {
	model, ok := wasteEconomicsTable[wasteType]
	if !ok {
		model = wasteEconomicsTable[types.Plastic]
	}

	weight := decimal.NewFromFloat(weightKg)
	perKg := func(perTonne int) decimal.Decimal {
		return weight.Mul(decimal.NewFromInt(int64(perTonne))).Div(decimal.NewFromInt(1000))
	}

	collection := perKg(model.CollectionCost)
	sale := perKg(model.SalePrice)
	processing := perKg(model.ProcessingCost)
	net := collection.Add(sale).Sub(processing)

	return CircularValue{
		WasteType: wasteType,
		WeightKg:  weightKg,
		Revenue: RevenueBreakdown{
			Collection: collection.Round(2),
			Sale:       sale.Round(2),
			Processing: processing.Round(2),
			Net:        net.Round(2),
		},
		Environmental: EnvironmentalImpact{
			CO2SavedKg:     weightKg * model.CO2SavedKg,
			WaterSavedL:    weightKg * model.WaterSavedL,
			EnergySavedKWh: weightKg * model.EnergySavedKWh,
		},
		Processors:    FindProcessors(weightKg),
		JobsEstimate:  int(math.Ceil(weightKg / kgPerJob)),
		RecyclablePct: model.RecyclablePercentage,
	}
}

// FindProcessors returns processors able to take the load, nearest first.
func FindProcessors(weightKg float64) []Processor {
	var out []Processor
	for _, p := range localProcessors {
		if p.CapacityKg >= weightKg {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out
}
