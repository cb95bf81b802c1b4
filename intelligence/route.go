package intelligence

import (
	"math"

	"github.com/golang/geo/s2"

	"go-wastegrid/types"
)

const (
	earthRadiusKM = 6371.0

	avgSpeedKmh        = 30.0
	fuelEfficiencyKmPL = 4.0   // unoptimized baseline
	optimizedFactor    = 0.75  // 25% improvement over baseline
	fuelPricePerLiter  = 100.0 // currency units
	co2KgPerLiter      = 2.3
)

type OptimizedRoute struct {
	TruckID          string          `json:"truckId"`
	Route            []types.Hotspot `json:"route"`
	TotalDistanceKm  float64         `json:"totalDistanceKm"`
	EstimatedMinutes float64         `json:"estimatedMinutes"`
	FuelRequiredL    float64         `json:"fuelRequiredL"`
	FuelSavingsL     float64         `json:"fuelSavingsL"`
	CostSavings      float64         `json:"costSavings"`
	CO2ReducedKg     float64         `json:"co2ReducedKg"`
}

// OptimizeRoute orders hotspots into a single-vehicle visiting sequence with
// a nearest-neighbor pass, then closes the loop back to the start. O(n^2),
// which is fine for the tens of hotspots a truck run actually sees; a spatial
// index or 2-opt refinement would only pay off far beyond that scale.
func OptimizeRoute(truckID string, hotspots []types.Hotspot) *OptimizedRoute {
	if len(hotspots) == 0 {
		return nil
	}

	route := []types.Hotspot{hotspots[0]}
	remaining := make([]types.Hotspot, len(hotspots)-1)
	copy(remaining, hotspots[1:])

	var totalDistance float64
	for len(remaining) > 0 {
		last := route[len(route)-1]
		nearestIdx := 0
		minDist := math.Inf(1)
		for i, spot := range remaining {
			if d := HaversineKm(last.Latitude, last.Longitude, spot.Latitude, spot.Longitude); d < minDist {
				minDist = d
				nearestIdx = i
			}
		}
		route = append(route, remaining[nearestIdx])
		totalDistance += minDist
		remaining = append(remaining[:nearestIdx], remaining[nearestIdx+1:]...)
	}

	// Return leg to the starting hotspot.
	first, last := route[0], route[len(route)-1]
	totalDistance += HaversineKm(last.Latitude, last.Longitude, first.Latitude, first.Longitude)

	baseFuel := totalDistance / fuelEfficiencyKmPL
	optimizedFuel := baseFuel * optimizedFactor
	fuelSavings := baseFuel - optimizedFuel

	return &OptimizedRoute{
		TruckID:          truckID,
		Route:            route,
		TotalDistanceKm:  totalDistance,
		EstimatedMinutes: totalDistance / avgSpeedKmh * 60,
		FuelRequiredL:    optimizedFuel,
		FuelSavingsL:     fuelSavings,
		CostSavings:      fuelSavings * fuelPricePerLiter,
		CO2ReducedKg:     fuelSavings * co2KgPerLiter,
	}
}

// HaversineKm is the great-circle distance between two coordinates. s2's
// angular distance is the haversine arc; scaling by the Earth radius gives
// kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians() * earthRadiusKM
}
